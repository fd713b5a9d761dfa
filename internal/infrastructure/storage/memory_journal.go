package storage

import (
	"context"
	"sync"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// MemoryJournal in-memory журнал проверок
type MemoryJournal struct {
	mu      sync.RWMutex
	records []entity.InspectionRecord
	limit   int
}

// NewMemoryJournal создаёт журнал, хранящий не больше limit последних записей (0: без ограничения)
func NewMemoryJournal(limit int) *MemoryJournal {
	return &MemoryJournal{limit: limit}
}

// Append добавляет запись о цикле
func (j *MemoryJournal) Append(ctx context.Context, record entity.InspectionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.records = append(j.records, record)
	if j.limit > 0 && len(j.records) > j.limit {
		j.records = append([]entity.InspectionRecord(nil), j.records[len(j.records)-j.limit:]...)
	}
	return nil
}

// Recent возвращает последние записи, новые первыми
func (j *MemoryJournal) Recent(ctx context.Context, limit int) ([]entity.InspectionRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if limit <= 0 || limit > len(j.records) {
		limit = len(j.records)
	}
	out := make([]entity.InspectionRecord, 0, limit)
	for i := len(j.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.records[i])
	}
	return out, nil
}

// Проверка реализации интерфейса
var _ port.InspectionJournal = (*MemoryJournal)(nil)
