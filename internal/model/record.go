package model

// FlightRecord 规范化后的单条飞行记录（表格一行 = 一个航段）
// 构造完成后只读，不做增量修改
type FlightRecord struct {
	Serial string `json:"serial"` // 序号，缺失时回退为行号
	Date   string `json:"date"`   // 保留源格式，仅聚合时临时解析
	From   string `json:"from"`
	To     string `json:"to"`

	// 本航段时间分量
	TakeoffHours   int `json:"takeoffHours"`
	TakeoffMinutes int `json:"takeoffMinutes"`
	LandingHours   int `json:"landingHours"`
	LandingMinutes int `json:"landingMinutes"`
	FlightHours    int `json:"flightHours"`
	FlightMinutes  int `json:"flightMinutes"`
	Cycles         int `json:"cycles"`

	// 截至本行的累计口径
	TotalFlightHours   int `json:"totalFlightHours"`
	TotalFlightMinutes int `json:"totalFlightMinutes"`
	TotalCycles        int `json:"totalCycles"`

	// 随行携带的跟踪字段，不参与聚合
	TLBNumber string `json:"tlbNumber"`
	LastDate  string `json:"lastDate"`

	// 补充累计/月均字段，保留供后续报表使用
	TotalHours     int `json:"totalHours"`
	TotalMinutes   int `json:"totalMinutes"`
	TotalCyclesSum int `json:"totalCyclesSum"`
	HoursPerMonth  int `json:"hoursPerMonth"`
	CyclesPerMonth int `json:"cyclesPerMonth"`
}

// Route 航线分组键 "{from}-{to}"
func (r *FlightRecord) Route() string {
	return r.From + "-" + r.To
}

// CumulativeMinutes 截至本行的累计飞行分钟数（防御性钳制为非负）
func (r *FlightRecord) CumulativeMinutes() int {
	m := r.TotalFlightHours*60 + r.TotalFlightMinutes
	if m < 0 {
		return 0
	}
	return m
}

// IsValid 记录有效性：序号与日期均非空才参与聚合
func (r *FlightRecord) IsValid() bool {
	return r.Serial != "" && r.Date != ""
}
