package parser

import "flightlog/internal/model"

// RequiredHeaders 必需表头（字面值，与源表格一致，区分大小写与反斜杠）
var RequiredHeaders = []string{"Date", "From", "To", `Total F\H`, "Total Cyc"}

// 累计飞行时间列的规范化键
const (
	keyTotalFH  = "TotalFH"  // "Total F\H"，可能为 "HH:MM" 形式
	keyTotalHrs = "TOTALHRS" // "TOTAL HRS"，纯小时数兜底
)

// TotalTimeSource 累计飞行时间的取值来源
type TotalTimeSource int

const (
	// SourceColon 冒号编码 "HH:MM"，优先
	SourceColon TotalTimeSource = iota
	// SourcePlainHours 纯小时数兜底，分钟隐式为 0
	SourcePlainHours
)

// TotalTime 累计飞行时间的带标签取值，每行解析一次
type TotalTime struct {
	Source  TotalTimeSource
	Hours   int
	Minutes int
}

// stringFields 字符串字段映射表：规范化表头键 → 赋值目标
// 固定枚举，不做运行时字符串反查
var stringFields = map[string]func(*model.FlightRecord, string){
	"Ser":      func(r *model.FlightRecord, v string) { r.Serial = v },
	"Date":     func(r *model.FlightRecord, v string) { r.Date = v },
	"From":     func(r *model.FlightRecord, v string) { r.From = v },
	"To":       func(r *model.FlightRecord, v string) { r.To = v },
	"TLBNo":    func(r *model.FlightRecord, v string) { r.TLBNumber = v },
	"LastDate": func(r *model.FlightRecord, v string) { r.LastDate = v },
}

// intFields 整数字段映射表：解析失败或缺失时保持 0
var intFields = map[string]func(*model.FlightRecord, int){
	"TOHrs":        func(r *model.FlightRecord, v int) { r.TakeoffHours = v },
	"TOMin":        func(r *model.FlightRecord, v int) { r.TakeoffMinutes = v },
	"LDGHrs":       func(r *model.FlightRecord, v int) { r.LandingHours = v },
	"LDGMin":       func(r *model.FlightRecord, v int) { r.LandingMinutes = v },
	"FLTHrs":       func(r *model.FlightRecord, v int) { r.FlightHours = v },
	"FLTMin":       func(r *model.FlightRecord, v int) { r.FlightMinutes = v },
	"Cyc":          func(r *model.FlightRecord, v int) { r.Cycles = v },
	"TotalCyc":     func(r *model.FlightRecord, v int) { r.TotalCycles = v },
	"TotalHours":   func(r *model.FlightRecord, v int) { r.TotalHours = v },
	"TotalMinutes": func(r *model.FlightRecord, v int) { r.TotalMinutes = v },
	"TotalCycles":  func(r *model.FlightRecord, v int) { r.TotalCyclesSum = v },
	"HoursMonth":   func(r *model.FlightRecord, v int) { r.HoursPerMonth = v },
	"CyclesMonth":  func(r *model.FlightRecord, v int) { r.CyclesPerMonth = v },
}
