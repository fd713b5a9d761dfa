package entity

import "sync"

// History счётчики годных и бракованных плат за время жизни процесса.
// Владелец создаёт его сам и передаёт инспектору явно.
type History struct {
	mu   sync.RWMutex
	good int
	bad  int
}

// HistorySnapshot неизменяемый срез счётчиков
type HistorySnapshot struct {
	Good int
	Bad  int
}

// Total возвращает общее число проверенных плат
func (s HistorySnapshot) Total() int {
	return s.Good + s.Bad
}

// NewHistory создаёт счётчики с нулевыми значениями
func NewHistory() *History {
	return &History{}
}

// RecordAccept увеличивает счётчик годных
func (h *History) RecordAccept() HistorySnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.good++
	return HistorySnapshot{Good: h.good, Bad: h.bad}
}

// RecordReject увеличивает счётчик брака
func (h *History) RecordReject() HistorySnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bad++
	return HistorySnapshot{Good: h.good, Bad: h.bad}
}

// Snapshot возвращает текущие значения
func (h *History) Snapshot() HistorySnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return HistorySnapshot{Good: h.good, Bad: h.bad}
}
