package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Reader 工作簿解码器：外部协作方，只负责把二进制工作簿变成表头 + 数据行
type Reader struct {
	file   *excelize.File
	fileID string
}

// NewReader 创建解码器
func NewReader() *Reader {
	return &Reader{
		fileID: uuid.New().String(),
	}
}

// FileID 本次上传的文件ID
func (r *Reader) FileID() string {
	return r.fileID
}

// Load 加载工作簿字节流
func (r *Reader) Load(src io.Reader) error {
	file, err := excelize.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	r.file = file
	return nil
}

// FirstSheetRows 读取第一个工作表，返回表头行与数据行
// 只读首个 sheet，其余忽略
func (r *Reader) FirstSheetRows() (header []string, rows [][]string, err error) {
	if r.file == nil {
		return nil, nil, errors.New("no file loaded")
	}

	sheets := r.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	all, err := r.file.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return []string{}, [][]string{}, nil
	}

	return all[0], all[1:], nil
}

// Close 关闭工作簿
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
