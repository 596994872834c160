package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var wsRun = regexp.MustCompile(`\s+`)

// NormalizeHeaderKey 规范化表头为查找键：去掉反斜杠与所有空白/换行
// 例如 "Total F\H" → "TotalFH"，"TLB No" → "TLBNo"
// 构建行字典与必需表头检查必须使用同一函数
func NormalizeHeaderKey(name string) string {
	name = strings.ReplaceAll(name, `\`, "")
	return wsRun.ReplaceAllString(name, "")
}

// parseInt 十进制整数解析：失败或为空返回 0，负数钳制为 0
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// getCell 按列索引取单元格文本，越界返回空串
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
