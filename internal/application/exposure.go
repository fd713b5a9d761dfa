package app

import (
	"context"
	"fmt"
	"log"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// ExposureResult итог подбора выдержки
type ExposureResult struct {
	Microseconds int
	Found        bool // false: перебор исчерпан
	Attempts     int
}

// ExposureCalibrator подбирает выдержку, при которой пустая эталонная область имеет заданную яркость
type ExposureCalibrator struct {
	camera  port.Camera
	probe   *Probe
	sleeper port.Sleeper
	catalog entity.Catalog
}

func NewExposureCalibrator(camera port.Camera, probe *Probe, sleeper port.Sleeper, catalog entity.Catalog) *ExposureCalibrator {
	return &ExposureCalibrator{camera: camera, probe: probe, sleeper: sleeper, catalog: catalog}
}

// ExposureCandidates возвращает порядок перебора: середина диапазона, затем от минимума до максимума с шагом step.
func ExposureCandidates(r entity.ExposureRange, step int) []int {
	candidates := make([]int, 0, (r.MaxUs-r.MinUs)/step+2)
	candidates = append(candidates, r.Midpoint())
	for us := r.MinUs; us <= r.MaxUs; us += step {
		candidates = append(candidates, us)
	}
	return candidates
}

// Calibrate перебирает выдержки для цвета и возвращает первую, попавшую в целевое окно яркости.
func (e *ExposureCalibrator) Calibrate(ctx context.Context, color entity.BoardColor) (ExposureResult, error) {
	rng, ok := e.catalog.ExposureRanges[color]
	if !ok {
		return ExposureResult{}, fmt.Errorf("%w: %s", ErrUnknownColor, color)
	}

	t := e.catalog.Tuning
	candidates := ExposureCandidates(rng, t.ExposureStepUs)
	for i, us := range candidates {
		brightness, err := e.test(ctx, us)
		if err != nil {
			return ExposureResult{Attempts: i + 1}, err
		}
		if brightness >= t.ExposureTargetMin && brightness <= t.ExposureTargetMax {
			return ExposureResult{Microseconds: us, Found: true, Attempts: i + 1}, nil
		}
	}

	log.Printf("Exposure search for %s exhausted after %d attempts", color, len(candidates))
	return ExposureResult{Attempts: len(candidates)}, nil
}

// test применяет выдержку и возвращает максимум яркости эталонной области
func (e *ExposureCalibrator) test(ctx context.Context, exposureUs int) (float64, error) {
	if err := e.camera.SetExposure(ctx, exposureUs); err != nil {
		return 0, hardware("set exposure", err)
	}
	if err := e.sleeper.Sleep(ctx, e.catalog.Tuning.ExposureSettle); err != nil {
		return 0, err
	}
	return e.probe.Max(ctx, e.catalog.ExposureROI)
}
