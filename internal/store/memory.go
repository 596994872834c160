package store

import (
	"sync"
	"time"

	"flightlog/internal/model"
)

// MemoryStore 会话内存存储
// 当前记录集与统计作为一个整体替换，不做部分更新；
// 导入失败时调用方不触碰存储，上一份结果保持可见
type MemoryStore struct {
	mu sync.RWMutex

	fileName   string
	uploadedAt time.Time
	records    []*model.FlightRecord
	stats      *model.FlightStats
}

// NewMemoryStore 创建空存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace 原子替换当前数据集与统计
func (s *MemoryStore) Replace(fileName string, records []*model.FlightRecord, stats *model.FlightStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fileName = fileName
	s.uploadedAt = time.Now()
	s.records = records
	s.stats = stats
}

// Stats 当前统计，尚未导入时 ok 为 false
func (s *MemoryStore) Stats() (*model.FlightStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stats == nil {
		return nil, false
	}
	return s.stats, true
}

// Records 当前记录集快照（副本切片，调用方可安全遍历）
func (s *MemoryStore) Records() []*model.FlightRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.FlightRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Count 当前记录数
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Meta 当前数据集元信息
func (s *MemoryStore) Meta() (fileName string, uploadedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stats == nil {
		return "", time.Time{}, false
	}
	return s.fileName, s.uploadedAt, true
}
