package entity

import "time"

// StationState состояние станции контроля
type StationState string

const (
	StateWaitingForBoard   StationState = "waiting_for_board"   // Оснастка пуста
	StateSettling          StationState = "settling"            // Плата появилась, ждём успокоения кадра
	StateClassifying       StationState = "classifying"         // Определение цвета
	StateCalibrating       StationState = "calibrating"         // Подбор выдержки
	StateInspecting        StationState = "inspecting"          // Проверка компонентов
	StateWaitingForRemoval StationState = "waiting_for_removal" // Ждём, пока плату уберут
)

// InspectionRecord запись журнала об одном цикле проверки
type InspectionRecord struct {
	ID            string
	InspectedAt   time.Time
	Color         BoardColor
	ColorFallback bool
	ExposureUs    int
	Accepted      bool
	ComponentID   int
	Phase         int // фаза отказа, 0 для годной платы
	PercentChange float64
	Good          int
	Bad           int
}

// NewInspectionRecord собирает запись журнала из итогов цикла
func NewInspectionRecord(id string, at time.Time, color BoardColor, fallback bool, exposureUs int, v Verdict, h HistorySnapshot) InspectionRecord {
	return InspectionRecord{
		ID:            id,
		InspectedAt:   at,
		Color:         color,
		ColorFallback: fallback,
		ExposureUs:    exposureUs,
		Accepted:      v.Accepted,
		ComponentID:   v.ComponentID,
		Phase:         v.Phase,
		PercentChange: v.PercentChange,
		Good:          h.Good,
		Bad:           h.Bad,
	}
}
