package parser

import (
	"errors"
	"strconv"
	"strings"

	"flightlog/internal/model"
)

// ErrNoValidData 所有行都被有效性过滤丢弃
var ErrNoValidData = errors.New("no valid data found")

// MissingHeadersError 缺少必需表头，整个导入失败
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return "missing required headers: " + strings.Join(e.Missing, ", ")
}

// Normalize 将表头 + 原始数据行规范化为 FlightRecord 序列
// 规则：
//   - 表头先做统一规范化，再检查必需表头；缺失则整体失败，不做部分处理
//   - 单元格级别不报错：数字解析失败取 0，字符串缺失取空串
//   - 序号为空时回退为 1 起始的行号
//   - 序号或日期为空的记录被丢弃；全部丢弃时返回 ErrNoValidData
func Normalize(header []string, rows [][]string) ([]*model.FlightRecord, error) {
	colIndex := buildColumnIndex(header)

	if missing := missingRequired(colIndex); len(missing) > 0 {
		return nil, &MissingHeadersError{Missing: missing}
	}

	records := make([]*model.FlightRecord, 0, len(rows))
	for i, row := range rows {
		rec := normalizeRow(row, colIndex, i+1)
		if !rec.IsValid() {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoValidData
	}
	return records, nil
}

// buildColumnIndex 规范化表头键 → 列索引，重复列取首个
func buildColumnIndex(header []string) map[string]int {
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		key := NormalizeHeaderKey(col)
		if key == "" {
			continue
		}
		if _, ok := colIndex[key]; !ok {
			colIndex[key] = i
		}
	}
	return colIndex
}

// missingRequired 必需表头检查，与行字典使用同一规范化
func missingRequired(colIndex map[string]int) []string {
	var missing []string
	for _, h := range RequiredHeaders {
		if _, ok := colIndex[NormalizeHeaderKey(h)]; !ok {
			missing = append(missing, h)
		}
	}
	return missing
}

// normalizeRow 规范化单行，rowPos 为 1 起始的数据行号
func normalizeRow(row []string, colIndex map[string]int, rowPos int) *model.FlightRecord {
	cell := func(key string) string {
		idx, ok := colIndex[key]
		if !ok {
			return ""
		}
		return getCell(row, idx)
	}

	rec := &model.FlightRecord{}

	for key, assign := range stringFields {
		assign(rec, cell(key))
	}
	for key, assign := range intFields {
		assign(rec, parseInt(cell(key)))
	}

	tt := resolveTotalTime(cell(keyTotalFH), cell(keyTotalHrs))
	rec.TotalFlightHours = tt.Hours
	rec.TotalFlightMinutes = tt.Minutes

	if rec.Serial == "" {
		rec.Serial = strconv.Itoa(rowPos)
	}

	return rec
}

// resolveTotalTime 累计飞行时间双来源裁决：
// "Total F\H" 含冒号时按 "HH:MM" 拆分，优先生效；
// 否则回退为 "TOTAL HRS" 纯小时数，分钟为 0
func resolveTotalTime(totalFH, totalHrs string) TotalTime {
	if strings.Contains(totalFH, ":") {
		parts := strings.SplitN(totalFH, ":", 2)
		return TotalTime{
			Source:  SourceColon,
			Hours:   parseInt(parts[0]),
			Minutes: parseInt(parts[1]),
		}
	}
	return TotalTime{
		Source: SourcePlainHours,
		Hours:  parseInt(totalHrs),
	}
}
