package app

import (
	"context"
	"errors"
	"time"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// fakeFrame отдаёт заранее заданную статистику и считает обращения
type fakeFrame struct {
	stats     entity.RegionStats
	lab       entity.LabStats
	counts    map[entity.ROI]int
	binary    []entity.Threshold
	blobCalls []entity.ROI
	closed    bool
}

func (f *fakeFrame) Statistics(roi entity.ROI) (entity.RegionStats, error) {
	return f.stats, nil
}

func (f *fakeFrame) LabStatistics(roi entity.ROI) (entity.LabStats, error) {
	return f.lab, nil
}

func (f *fakeFrame) Binary(threshold entity.Threshold) error {
	f.binary = append(f.binary, threshold)
	return nil
}

func (f *fakeFrame) FindBlobs(threshold entity.Threshold, roi entity.ROI, opts entity.BlobOptions) ([]entity.Blob, error) {
	f.blobCalls = append(f.blobCalls, roi)
	count := f.counts[roi]
	if count == 0 {
		return nil, nil
	}
	return []entity.Blob{{X: roi.X, Y: roi.Y, Width: roi.W, Height: roi.H, Pixels: count}}, nil
}

func (f *fakeFrame) Close() error {
	f.closed = true
	return nil
}

// fakeCamera выдаёт кадры из функции next, зная текущую выдержку
type fakeCamera struct {
	next        func(n int, exposureUs int) *fakeFrame
	frames      []*fakeFrame
	exposures   []int
	modes       []entity.SensorMode
	resets      int
	snapshotErr error
	failWhen    func(c *fakeCamera) error // ошибка снимка в зависимости от состояния камеры
}

func (c *fakeCamera) Reset(ctx context.Context) error {
	c.resets++
	return nil
}

func (c *fakeCamera) Configure(ctx context.Context, mode entity.SensorMode) error {
	c.modes = append(c.modes, mode)
	return nil
}

func (c *fakeCamera) SetExposure(ctx context.Context, exposureUs int) error {
	c.exposures = append(c.exposures, exposureUs)
	return nil
}

func (c *fakeCamera) Snapshot(ctx context.Context) (port.Frame, error) {
	if c.snapshotErr != nil {
		return nil, c.snapshotErr
	}
	if c.failWhen != nil {
		if err := c.failWhen(c); err != nil {
			return nil, err
		}
	}
	exposure := 0
	if len(c.exposures) > 0 {
		exposure = c.exposures[len(c.exposures)-1]
	}
	f := c.next(len(c.frames), exposure)
	c.frames = append(c.frames, f)
	return f, nil
}

func (c *fakeCamera) lastMode() entity.SensorMode {
	return c.modes[len(c.modes)-1]
}

// fakeSleeper не спит, а запоминает задержки
type fakeSleeper struct {
	sleeps []time.Duration
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.sleeps = append(s.sleeps, d)
	return nil
}

// fakeReporter запоминает отчёты
type fakeReporter struct {
	verdicts []port.CycleReport
	failures []error
}

func (r *fakeReporter) ReportVerdict(ctx context.Context, report port.CycleReport) error {
	r.verdicts = append(r.verdicts, report)
	return nil
}

func (r *fakeReporter) ReportFailure(ctx context.Context, cycleID string, err error) error {
	r.failures = append(r.failures, err)
	return nil
}

var errCameraUnplugged = errors.New("camera unplugged")

// meansFrames возвращает генератор кадров с заданной последовательностью средних яркостей;
// последний элемент повторяется
func meansFrames(means ...float64) func(n int, exposureUs int) *fakeFrame {
	return func(n int, exposureUs int) *fakeFrame {
		if n >= len(means) {
			n = len(means) - 1
		}
		return &fakeFrame{stats: entity.RegionStats{Mean: means[n]}}
	}
}

// countsFor строит числа пикселей по всем областям каталога через функцию от эталона
func countsFor(catalog entity.Catalog, color entity.BoardColor, measure func(id, ref int) int) map[entity.ROI]int {
	counts := make(map[entity.ROI]int)
	for _, phase := range catalog.Phases {
		for _, comp := range phase {
			counts[comp.ROI] = measure(comp.ID, catalog.References[color][comp.ID])
		}
	}
	return counts
}
