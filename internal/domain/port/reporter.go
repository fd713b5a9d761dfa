package port

import (
	"context"

	"qc-station/internal/domain/entity"
)

// CycleReport итоги одного цикла проверки для вывода
type CycleReport struct {
	Record  entity.InspectionRecord
	Verdict entity.Verdict
}

// VerdictReporter интерфейс вывода результатов проверки
type VerdictReporter interface {
	// ReportVerdict выводит вердикт и счётчики
	ReportVerdict(ctx context.Context, report CycleReport) error

	// ReportFailure сообщает о прерванном цикле
	ReportFailure(ctx context.Context, cycleID string, err error) error
}

// InspectionJournal интерфейс журнала проверок
type InspectionJournal interface {
	// Append добавляет запись о цикле
	Append(ctx context.Context, record entity.InspectionRecord) error

	// Recent возвращает последние записи, новые первыми
	Recent(ctx context.Context, limit int) ([]entity.InspectionRecord, error)
}
