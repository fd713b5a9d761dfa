package port

import (
	"context"

	"qc-station/internal/domain/entity"
)

// Camera интерфейс источника изображений станции
type Camera interface {
	// Reset сбрасывает сенсор в исходное состояние
	Reset(ctx context.Context) error

	// Configure применяет полный режим сенсора
	Configure(ctx context.Context, mode entity.SensorMode) error

	// SetExposure включает фиксированную выдержку в микросекундах
	SetExposure(ctx context.Context, exposureUs int) error

	// Snapshot снимает один кадр. Вызывающий обязан закрыть кадр.
	Snapshot(ctx context.Context) (Frame, error)
}

// Frame снятый кадр и операции над его областями
type Frame interface {
	// Statistics возвращает min/max/mean яркости области
	Statistics(roi entity.ROI) (entity.RegionStats, error)

	// LabStatistics возвращает средние каналов LAB области
	LabStatistics(roi entity.ROI) (entity.LabStats, error)

	// Binary бинаризует весь кадр: пиксели внутри порога становятся белыми, остальные чёрными
	Binary(threshold entity.Threshold) error

	// FindBlobs ищет связные области внутри roi, попавшие в порог
	FindBlobs(threshold entity.Threshold, roi entity.ROI, opts entity.BlobOptions) ([]entity.Blob, error)

	Close() error
}
