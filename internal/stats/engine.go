package stats

import (
	"fmt"
	"math"
	"time"

	"flightlog/internal/model"
)

// Compute 将规范化记录折叠为统计汇总
// 纯函数：同一输入序列得到同一结果，航线并列时取先出现者
func Compute(records []*model.FlightRecord) *model.FlightStats {
	stats := emptyStats()
	if len(records) == 0 {
		// 空输入是独立的基础情形，不走折叠
		return stats
	}

	totalMinutes := 0
	routeOrder := make([]string, 0)

	var minDate, maxDate time.Time
	hasDate := false

	for _, r := range records {
		m := r.CumulativeMinutes()
		totalMinutes += m
		stats.TotalCycles += r.TotalCycles

		// 航线分组，记录首次出现顺序供并列裁决
		route := r.Route()
		rs, ok := stats.RouteStats[route]
		if !ok {
			rs = &model.RouteStat{}
			stats.RouteStats[route] = rs
			routeOrder = append(routeOrder, route)
		}
		rs.Count++
		rs.TotalTime += m

		// 日期不可解析的记录只排除在月度与天数统计之外
		day, ok := parseDate(r.Date)
		if !ok {
			continue
		}

		month := day.Format("2006-01")
		ms, ok := stats.MonthlyStats[month]
		if !ok {
			ms = &model.MonthlyStat{}
			stats.MonthlyStats[month] = ms
		}
		ms.Minutes += m
		ms.Flights++
		ms.Cycles += r.TotalCycles

		if !hasDate {
			minDate, maxDate = day, day
			hasDate = true
			continue
		}
		if day.Before(minDate) {
			minDate = day
		}
		if day.After(maxDate) {
			maxDate = day
		}
	}

	stats.TotalFlights = len(records)
	stats.TotalFlightTime = FormatTime(totalMinutes)
	stats.AverageFlightTime = FormatTime(int(math.Round(float64(totalMinutes) / float64(len(records)))))
	stats.MostFrequentRoute = mostFrequent(routeOrder, stats.RouteStats)

	if hasDate {
		// 含首尾两端，单日数据集记 1 天
		span := maxDate.Sub(minDate)
		stats.TotalDays = int(math.Ceil(span.Hours()/24)) + 1
		stats.AverageFlightsPerDay = round2(float64(stats.TotalFlights) / float64(stats.TotalDays))
	}

	return stats
}

func emptyStats() *model.FlightStats {
	return &model.FlightStats{
		TotalFlightTime:   "0:00",
		AverageFlightTime: "0:00",
		MostFrequentRoute: "N/A",
		MonthlyStats:      make(map[string]*model.MonthlyStat),
		RouteStats:        make(map[string]*model.RouteStat),
	}
}

// FormatTime 分钟数 → "H:MM"
func FormatTime(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}

// mostFrequent 按首次出现顺序扫描，严格大于才替换
func mostFrequent(routeOrder []string, routeStats map[string]*model.RouteStat) string {
	best := "N/A"
	bestCount := 0
	for _, route := range routeOrder {
		if c := routeStats[route].Count; c > bestCount {
			best = route
			bestCount = c
		}
	}
	return best
}

// dateLayouts 表格来源常见的日期显示格式
// 依次尝试：ISO、日-月名、excelize 默认的 m-d-yy 及斜杠变体
var dateLayouts = []string{
	"2006-1-2",
	"2-Jan-2006",
	"2-Jan-06",
	"1-2-2006",
	"1-2-06",
	"2006/1/2",
	"1/2/2006",
	"1/2/06",
}

// parseDate 解析记录日期并归一化到 UTC 零点
// 归一化保证偶发携带时刻的输入不会扰动含首尾的天数计算
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
