package model

// RouteStat 单条航线的分组统计
type RouteStat struct {
	Count     int `json:"count"`     // 航班数
	TotalTime int `json:"totalTime"` // 累计分钟数
}

// MonthlyStat 月度分桶统计，键为 "YYYY-MM"（UTC）
type MonthlyStat struct {
	Minutes int `json:"minutes"`
	Flights int `json:"flights"`
	Cycles  int `json:"cycles"`
}

// FlightStats 统计汇总。由当前记录集整体推导，数据集替换时整体重建
type FlightStats struct {
	TotalFlightTime      string  `json:"totalFlightTime"`   // "H:MM"
	TotalCycles          int     `json:"totalCycles"`
	TotalFlights         int     `json:"totalFlights"`
	AverageFlightTime    string  `json:"averageFlightTime"` // "H:MM"
	MostFrequentRoute    string  `json:"mostFrequentRoute"` // 无数据时为 "N/A"
	TotalDays            int     `json:"totalDays"`
	AverageFlightsPerDay float64 `json:"averageFlightsPerDay"`

	MonthlyStats map[string]*MonthlyStat `json:"monthlyStats"`
	RouteStats   map[string]*RouteStat   `json:"routeStats"`
}
