package parser

import (
	"errors"
	"testing"
)

// testHeader 与源表格一致的表头（字面值，含反斜杠与空格）
var testHeader = []string{
	"Ser", "Date", "TLB No", "From", "To",
	`T\O Hrs`, `T\O Min`, "LDG Hrs", "LDG Min", "FLT Hrs", "FLT Min",
	"Cyc", `Total F\H`, "TOTAL HRS", "Total Cyc", "Last Date",
}

func testRow(overrides map[string]string) []string {
	base := map[string]string{
		"Ser": "1", "Date": "2024-01-15", "TLB No": "TLB-001",
		"From": "CAI", "To": "DXB",
		`T\O Hrs`: "8", `T\O Min`: "30", "LDG Hrs": "12", "LDG Min": "05",
		"FLT Hrs": "3", "FLT Min": "35", "Cyc": "1",
		`Total F\H`: "120:45", "TOTAL HRS": "", "Total Cyc": "350",
		"Last Date": "2024-01-10",
	}
	for k, v := range overrides {
		base[k] = v
	}

	row := make([]string, len(testHeader))
	for i, h := range testHeader {
		row[i] = base[h]
	}
	return row
}

// TestNormalizeBasic 测试完整行的规范化
func TestNormalizeBasic(t *testing.T) {
	records, err := Normalize(testHeader, [][]string{testRow(nil)})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	r := records[0]
	if r.Serial != "1" || r.Date != "2024-01-15" {
		t.Errorf("Serial/Date = %q/%q", r.Serial, r.Date)
	}
	if r.From != "CAI" || r.To != "DXB" {
		t.Errorf("From/To = %q/%q", r.From, r.To)
	}
	if r.Route() != "CAI-DXB" {
		t.Errorf("Route() = %q, want CAI-DXB", r.Route())
	}
	if r.TakeoffHours != 8 || r.TakeoffMinutes != 30 {
		t.Errorf("Takeoff = %d:%d", r.TakeoffHours, r.TakeoffMinutes)
	}
	if r.LandingHours != 12 || r.LandingMinutes != 5 {
		t.Errorf("Landing = %d:%d", r.LandingHours, r.LandingMinutes)
	}
	if r.FlightHours != 3 || r.FlightMinutes != 35 {
		t.Errorf("Flight = %d:%d", r.FlightHours, r.FlightMinutes)
	}
	if r.TotalFlightHours != 120 || r.TotalFlightMinutes != 45 {
		t.Errorf("TotalFlight = %d:%d, want 120:45", r.TotalFlightHours, r.TotalFlightMinutes)
	}
	if r.TotalCycles != 350 {
		t.Errorf("TotalCycles = %d, want 350", r.TotalCycles)
	}
	if r.TLBNumber != "TLB-001" || r.LastDate != "2024-01-10" {
		t.Errorf("TLBNumber/LastDate = %q/%q", r.TLBNumber, r.LastDate)
	}
	if r.CumulativeMinutes() != 120*60+45 {
		t.Errorf("CumulativeMinutes = %d", r.CumulativeMinutes())
	}
}

// TestNormalizeMissingHeaders 缺少必需表头时整体失败，错误中列出缺失项
func TestNormalizeMissingHeaders(t *testing.T) {
	header := []string{"Ser", "Date", "From", "To"} // 缺 Total F\H 与 Total Cyc

	_, err := Normalize(header, [][]string{{"1", "2024-01-15", "CAI", "DXB"}})
	if err == nil {
		t.Fatal("Normalize should fail on missing headers")
	}

	var missingErr *MissingHeadersError
	if !errors.As(err, &missingErr) {
		t.Fatalf("error type = %T, want *MissingHeadersError", err)
	}
	if len(missingErr.Missing) != 2 {
		t.Fatalf("Missing = %v, want 2 entries", missingErr.Missing)
	}
	if missingErr.Missing[0] != `Total F\H` || missingErr.Missing[1] != "Total Cyc" {
		t.Errorf("Missing = %v", missingErr.Missing)
	}
}

// TestNormalizeDualSource 累计飞行时间双来源：冒号形式优先，否则回退纯小时数
func TestNormalizeDualSource(t *testing.T) {
	// 两个来源都有值时冒号形式生效
	records, err := Normalize(testHeader, [][]string{
		testRow(map[string]string{`Total F\H`: "3:30", "TOTAL HRS": "10"}),
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if r := records[0]; r.TotalFlightHours != 3 || r.TotalFlightMinutes != 30 {
		t.Errorf("colon form: TotalFlight = %d:%d, want 3:30", r.TotalFlightHours, r.TotalFlightMinutes)
	}

	// 冒号来源为空时回退，分钟隐式为 0
	records, err = Normalize(testHeader, [][]string{
		testRow(map[string]string{`Total F\H`: "", "TOTAL HRS": "10"}),
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if r := records[0]; r.TotalFlightHours != 10 || r.TotalFlightMinutes != 0 {
		t.Errorf("fallback: TotalFlight = %d:%d, want 10:0", r.TotalFlightHours, r.TotalFlightMinutes)
	}
}

// TestNormalizeDefaults 单元格不合法时退化为默认值而不是整行失败
func TestNormalizeDefaults(t *testing.T) {
	records, err := Normalize(testHeader, [][]string{
		testRow(map[string]string{
			"Cyc": "abc", `T\O Hrs`: "", "Total Cyc": "x:y",
			`Total F\H`: "bad:stuff", "TLB No": "",
		}),
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	r := records[0]
	if r.Cycles != 0 || r.TakeoffHours != 0 || r.TotalCycles != 0 {
		t.Errorf("invalid ints should default to 0, got Cyc=%d TO=%d TotalCyc=%d",
			r.Cycles, r.TakeoffHours, r.TotalCycles)
	}
	// 含冒号但不可解析：冒号来源仍然优先，分量取默认 0
	if r.TotalFlightHours != 0 || r.TotalFlightMinutes != 0 {
		t.Errorf("TotalFlight = %d:%d, want 0:0", r.TotalFlightHours, r.TotalFlightMinutes)
	}
	if r.TLBNumber != "" {
		t.Errorf("TLBNumber = %q, want empty", r.TLBNumber)
	}
}

// TestNormalizeSerialFallback 序号为空时回退为 1 起始的行号
func TestNormalizeSerialFallback(t *testing.T) {
	records, err := Normalize(testHeader, [][]string{
		testRow(map[string]string{"Ser": ""}),
		testRow(map[string]string{"Ser": "A42"}),
		testRow(map[string]string{"Ser": ""}),
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	if records[0].Serial != "1" {
		t.Errorf("row 1 Serial = %q, want 1", records[0].Serial)
	}
	if records[1].Serial != "A42" {
		t.Errorf("row 2 Serial = %q, want A42", records[1].Serial)
	}
	if records[2].Serial != "3" {
		t.Errorf("row 3 Serial = %q, want 3", records[2].Serial)
	}
}

// TestNormalizeValidityFilter 日期为空的记录被丢弃（序号有行号兜底，日期没有）
func TestNormalizeValidityFilter(t *testing.T) {
	records, err := Normalize(testHeader, [][]string{
		testRow(nil),
		testRow(map[string]string{"Date": ""}),
		testRow(map[string]string{"Ser": "", "Date": ""}),
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}

// TestNormalizeNoValidData 全部行被过滤时返回 ErrNoValidData
func TestNormalizeNoValidData(t *testing.T) {
	_, err := Normalize(testHeader, [][]string{
		testRow(map[string]string{"Date": ""}),
		testRow(map[string]string{"Date": ""}),
	})
	if !errors.Is(err, ErrNoValidData) {
		t.Fatalf("err = %v, want ErrNoValidData", err)
	}

	// 没有任何数据行同样视为无有效数据
	_, err = Normalize(testHeader, nil)
	if !errors.Is(err, ErrNoValidData) {
		t.Fatalf("err = %v, want ErrNoValidData", err)
	}
}

// TestResolveTotalTime 双来源裁决的标签正确
func TestResolveTotalTime(t *testing.T) {
	tt := resolveTotalTime("3:30", "10")
	if tt.Source != SourceColon || tt.Hours != 3 || tt.Minutes != 30 {
		t.Errorf("resolveTotalTime colon = %+v", tt)
	}

	tt = resolveTotalTime("", "10")
	if tt.Source != SourcePlainHours || tt.Hours != 10 || tt.Minutes != 0 {
		t.Errorf("resolveTotalTime fallback = %+v", tt)
	}

	tt = resolveTotalTime("120", "10")
	if tt.Source != SourcePlainHours || tt.Hours != 10 {
		t.Errorf("non-colon Total F\\H should fall back, got %+v", tt)
	}
}
