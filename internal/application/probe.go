package app

import (
	"context"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// Probe снимает кадр и отвечает на вопросы о статистике одной области
type Probe struct {
	camera port.Camera
}

func NewProbe(camera port.Camera) *Probe {
	return &Probe{camera: camera}
}

// Stats возвращает min/max/mean яркости области на свежем кадре
func (p *Probe) Stats(ctx context.Context, roi entity.ROI) (entity.RegionStats, error) {
	frame, err := p.camera.Snapshot(ctx)
	if err != nil {
		return entity.RegionStats{}, hardware("snapshot", err)
	}
	defer frame.Close()

	stats, err := frame.Statistics(roi)
	if err != nil {
		return entity.RegionStats{}, hardware("region statistics", err)
	}
	return stats, nil
}

// Mean возвращает среднюю яркость области
func (p *Probe) Mean(ctx context.Context, roi entity.ROI) (float64, error) {
	stats, err := p.Stats(ctx, roi)
	return stats.Mean, err
}

// Max возвращает максимальную яркость области
func (p *Probe) Max(ctx context.Context, roi entity.ROI) (float64, error) {
	stats, err := p.Stats(ctx, roi)
	return stats.Max, err
}

// Lab возвращает средние LAB области на свежем кадре
func (p *Probe) Lab(ctx context.Context, roi entity.ROI) (entity.LabStats, error) {
	frame, err := p.camera.Snapshot(ctx)
	if err != nil {
		return entity.LabStats{}, hardware("snapshot", err)
	}
	defer frame.Close()

	lab, err := frame.LabStatistics(roi)
	if err != nil {
		return entity.LabStats{}, hardware("lab statistics", err)
	}
	return lab, nil
}
