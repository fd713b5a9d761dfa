package app

import (
	"context"
	"math"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// PresenceSensor определяет, пуста ли оснастка и успокоился ли кадр
type PresenceSensor struct {
	probe   *Probe
	sleeper port.Sleeper
	roi     entity.ROI
	tuning  entity.Tuning
}

func NewPresenceSensor(probe *Probe, sleeper port.Sleeper, catalog entity.Catalog) *PresenceSensor {
	return &PresenceSensor{
		probe:   probe,
		sleeper: sleeper,
		roi:     catalog.TriggerROI,
		tuning:  catalog.Tuning,
	}
}

// IsEmpty возвращает true, если в области видна светлая пустая подложка
func (p *PresenceSensor) IsEmpty(ctx context.Context) (bool, error) {
	mean, err := p.probe.Mean(ctx, p.roi)
	if err != nil {
		return false, err
	}
	return mean > p.tuning.EmptyBrightness, nil
}

// IsStable замеряет среднюю яркость раз в интервал и возвращает true, как только
// два соседних замера отличаются меньше допуска. Первый замер сравнивается с нулём.
func (p *PresenceSensor) IsStable(ctx context.Context) (bool, error) {
	previous := 0.0
	for probe := 0; probe < p.tuning.StabilityProbes; probe++ {
		mean, err := p.probe.Mean(ctx, p.roi)
		if err != nil {
			return false, err
		}
		if math.Abs(mean-previous) < p.tuning.StableDelta {
			return true, nil
		}
		previous = mean
		if err := p.sleeper.Sleep(ctx, p.tuning.ProbeInterval); err != nil {
			return false, err
		}
	}
	return false, nil
}

// WaitForRemoval ждёт, пока плату уберут из оснастки
func (p *PresenceSensor) WaitForRemoval(ctx context.Context) error {
	for {
		empty, err := p.IsEmpty(ctx)
		if err != nil {
			return err
		}
		if empty {
			return nil
		}
		if err := p.sleeper.Sleep(ctx, p.tuning.ProbeInterval); err != nil {
			return err
		}
	}
}
