package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"flightlog/internal/model"
	"flightlog/internal/stats"
)

// ReportSummary 报告摘要块
type ReportSummary struct {
	TotalFlightHours     string  `json:"totalFlightHours"`
	TotalCycles          int     `json:"totalCycles"`
	TotalFlights         int     `json:"totalFlights"`
	AverageFlightTime    string  `json:"averageFlightTime"`
	MostFrequentRoute    string  `json:"mostFrequentRoute"`
	AverageFlightsPerDay float64 `json:"averageFlightsPerDay"`
}

// Report 导出报告：摘要 + 完整的月度与航线统计
type Report struct {
	GeneratedAt  string                        `json:"generatedAt"`
	SourceFile   string                        `json:"sourceFile,omitempty"`
	Summary      ReportSummary                 `json:"summary"`
	MonthlyStats map[string]*model.MonthlyStat `json:"monthlyStats"`
	RouteStats   map[string]*model.RouteStat   `json:"routeStats"`
}

// BuildReport 由当前统计构建报告
func BuildReport(st *model.FlightStats, sourceFile string, now time.Time) *Report {
	return &Report{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		SourceFile:  sourceFile,
		Summary: ReportSummary{
			TotalFlightHours:     st.TotalFlightTime,
			TotalCycles:          st.TotalCycles,
			TotalFlights:         st.TotalFlights,
			AverageFlightTime:    st.AverageFlightTime,
			MostFrequentRoute:    st.MostFrequentRoute,
			AverageFlightsPerDay: st.AverageFlightsPerDay,
		},
		MonthlyStats: st.MonthlyStats,
		RouteStats:   st.RouteStats,
	}
}

// FileName 导出文件名，携带当前日期
func FileName(format string, now time.Time) string {
	return fmt.Sprintf("flight-stats-%s.%s", now.Format("2006-01-02"), format)
}

// WriteJSON 报告写为 JSON 文件
func WriteJSON(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// WriteXLSX 报告写为工作簿：摘要、月度、航线各一个工作表
func WriteXLSX(report *Report, path string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	const summarySheet = "Summary"
	wb.SetSheetName("Sheet1", summarySheet)

	summaryRows := [][]interface{}{
		{"Total Flight Hours", report.Summary.TotalFlightHours},
		{"Total Cycles", report.Summary.TotalCycles},
		{"Total Flights", report.Summary.TotalFlights},
		{"Average Flight Time", report.Summary.AverageFlightTime},
		{"Most Frequent Route", report.Summary.MostFrequentRoute},
		{"Average Flights Per Day", report.Summary.AverageFlightsPerDay},
	}
	for i, row := range summaryRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := wb.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	if err := writeMonthlySheet(wb, report); err != nil {
		return err
	}
	if err := writeRouteSheet(wb, report); err != nil {
		return err
	}

	return wb.SaveAs(path)
}

func writeMonthlySheet(wb *excelize.File, report *Report) error {
	const sheet = "Monthly"
	if _, err := wb.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Month", "Flight Time", "Flights", "Cycles"}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	months := make([]string, 0, len(report.MonthlyStats))
	for m := range report.MonthlyStats {
		months = append(months, m)
	}
	sort.Strings(months)

	for i, m := range months {
		ms := report.MonthlyStats[m]
		row := []interface{}{m, stats.FormatTime(ms.Minutes), ms.Flights, ms.Cycles}
		cell := fmt.Sprintf("A%d", i+2)
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeRouteSheet(wb *excelize.File, report *Report) error {
	const sheet = "Routes"
	if _, err := wb.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Route", "Flights", "Total Time"}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	routes := make([]string, 0, len(report.RouteStats))
	for r := range report.RouteStats {
		routes = append(routes, r)
	}
	// 航班数降序，数量相同按航线名稳定排序
	sort.SliceStable(routes, func(i, j int) bool {
		a, b := report.RouteStats[routes[i]], report.RouteStats[routes[j]]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return routes[i] < routes[j]
	})

	for i, r := range routes {
		rs := report.RouteStats[r]
		row := []interface{}{r, rs.Count, stats.FormatTime(rs.TotalTime)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
