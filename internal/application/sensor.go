package app

import (
	"context"
	"time"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// Sensor переключает режимы камеры
type Sensor struct {
	camera  port.Camera
	sleeper port.Sleeper
	catalog entity.Catalog
}

func NewSensor(camera port.Camera, sleeper port.Sleeper, catalog entity.Catalog) *Sensor {
	return &Sensor{camera: camera, sleeper: sleeper, catalog: catalog}
}

// Init сбрасывает сенсор в режим проверки (оттенки серого, VGA)
func (s *Sensor) Init(ctx context.Context) error {
	return s.Apply(ctx, s.catalog.InspectionMode(), s.catalog.Tuning.InitSettle)
}

// Apply сбрасывает сенсор, применяет режим и ждёт, пока настройки вступят в силу
func (s *Sensor) Apply(ctx context.Context, mode entity.SensorMode, settle time.Duration) error {
	if err := s.camera.Reset(ctx); err != nil {
		return hardware("reset", err)
	}
	if err := s.camera.Configure(ctx, mode); err != nil {
		return hardware("configure", err)
	}
	return s.sleeper.Sleep(ctx, settle)
}
