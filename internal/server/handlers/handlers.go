package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"flightlog/internal/config"
	"flightlog/internal/excel"
	"flightlog/internal/exporter"
	"flightlog/internal/parser"
	"flightlog/internal/stats"
	"flightlog/internal/store"
)

// Handlers API处理器
type Handlers struct {
	store *store.MemoryStore
	cfg   *config.AppConfig

	// 导出文件下载令牌
	downloads *downloadStore

	// 串行处理上传：两次上传的中间结果绝不交叉
	uploadMu sync.Mutex
}

// NewHandlers 创建处理器
func NewHandlers(store *store.MemoryStore, cfg *config.AppConfig) *Handlers {
	return &Handlers{
		store:     store,
		cfg:       cfg,
		downloads: newDownloadStore(),
	}
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// UploadFile 上传飞行记录工作簿并完成整条流水线：
// 解码 → 规范化 → 聚合 → 整体替换当前数据集
// 任何一步失败都不触碰已有结果
func (h *Handlers) UploadFile(c *gin.Context) {
	h.uploadMu.Lock()
	defer h.uploadMu.Unlock()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "请上传文件")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxUploadBytes() {
		errorResponse(c, 1003, "文件过大，最大支持"+strconv.Itoa(h.cfg.Upload.MaxSizeMB)+"MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		errorResponse(c, 1002, "仅支持 .xlsx 和 .xls 格式")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1002, "读取文件失败")
		return
	}

	reader := excel.NewReader()
	if err := reader.Load(bytes.NewReader(content)); err != nil {
		errorResponse(c, 2001, "文件解析失败: "+err.Error())
		return
	}
	defer reader.Close()

	headerRow, rows, err := reader.FirstSheetRows()
	if err != nil {
		errorResponse(c, 2001, "读取工作表失败: "+err.Error())
		return
	}

	records, err := parser.Normalize(headerRow, rows)
	if err != nil {
		var missingErr *parser.MissingHeadersError
		switch {
		case errors.As(err, &missingErr):
			errorResponse(c, 3001, "缺少必需表头: "+strings.Join(missingErr.Missing, ", "))
		case errors.Is(err, parser.ErrNoValidData):
			errorResponse(c, 3002, "未找到有效数据")
		default:
			errorResponse(c, 3000, "数据规范化失败: "+err.Error())
		}
		return
	}

	result := stats.Compute(records)

	// 新结果整体生效
	h.store.Replace(header.Filename, records, result)

	success(c, gin.H{
		"fileId":       reader.FileID(),
		"fileName":     header.Filename,
		"totalRows":    len(rows),
		"importedRows": len(records),
		"droppedRows":  len(rows) - len(records),
		"stats":        result,
	})
}

// GetStats 获取当前统计
func (h *Handlers) GetStats(c *gin.Context) {
	result, ok := h.store.Stats()
	if !ok {
		errorResponse(c, 4001, "尚未导入数据")
		return
	}

	fileName, uploadedAt, _ := h.store.Meta()
	success(c, gin.H{
		"fileName":   fileName,
		"uploadedAt": uploadedAt,
		"stats":      result,
	})
}

// ListRecords 获取规范化记录（表格预览用，分页）
func (h *Handlers) ListRecords(c *gin.Context) {
	if _, ok := h.store.Stats(); !ok {
		errorResponse(c, 4001, "尚未导入数据")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	records := h.store.Records()
	total := len(records)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	success(c, gin.H{
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
		"items":    records[start:end],
	})
}

// Export 生成报告文件并返回一次性下载地址
// 默认 JSON，format=xlsx 时导出工作簿
func (h *Handlers) Export(c *gin.Context) {
	result, ok := h.store.Stats()
	if !ok {
		errorResponse(c, 4001, "尚未导入数据")
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "json"))
	if format != "json" && format != "xlsx" {
		errorResponse(c, 1001, "不支持的导出格式: "+format)
		return
	}

	sourceFile, _, _ := h.store.Meta()
	now := time.Now()
	report := exporter.BuildReport(result, sourceFile, now)

	fileName := exporter.FileName(format, now)
	filePath := config.GetDataPath(h.cfg, "exports", fileName)

	var writeErr error
	switch format {
	case "xlsx":
		writeErr = exporter.WriteXLSX(report, filePath)
	default:
		writeErr = exporter.WriteJSON(report, filePath)
	}
	if writeErr != nil {
		errorResponse(c, 5001, "写入导出文件失败: "+writeErr.Error())
		return
	}

	token := h.downloads.put(filePath, fileName, 10*time.Minute)

	success(c, gin.H{
		"fileName":    fileName,
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 下载导出文件（一次性链接）
func (h *Handlers) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		errorResponse(c, 1001, "缺少 token")
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		errorResponse(c, 4002, "下载链接已失效")
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		errorResponse(c, 4003, "导出文件不存在")
		return
	}

	contentType := "application/json"
	if strings.HasSuffix(item.fileName, ".xlsx") {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.Header("Content-Disposition", `attachment; filename="`+item.fileName+`"`)
	c.Header("Content-Type", contentType)
	c.File(item.filePath)

	h.downloads.delete(token)
}

// Health 健康检查
func (h *Handlers) Health(c *gin.Context) {
	success(c, gin.H{
		"status":  "ok",
		"records": h.store.Count(),
	})
}
