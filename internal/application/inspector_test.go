package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"qc-station/config"
	"qc-station/internal/domain/entity"
)

func newInspector(catalog entity.Catalog, counts map[entity.ROI]int) (*BoardInspector, *fakeCamera) {
	cam := &fakeCamera{next: func(n, exposure int) *fakeFrame { return &fakeFrame{counts: counts} }}
	return NewBoardInspector(cam, catalog), cam
}

func blobCalls(cam *fakeCamera) int {
	total := 0
	for _, f := range cam.frames {
		total += len(f.blobCalls)
	}
	return total
}

func TestBoardInspector_GrayMissingFirstComponent(t *testing.T) {
	catalog := config.DefaultCatalog()
	counts := countsFor(catalog, entity.ColorGray, func(id, ref int) int {
		if id == 1 {
			return 250
		}
		return ref
	})
	inspector, cam := newInspector(catalog, counts)
	history := entity.NewHistory()

	verdict, err := inspector.Inspect(context.Background(), entity.ColorGray, history)
	require.NoError(t, err)

	require.False(t, verdict.Accepted)
	require.Equal(t, 1, verdict.ComponentID)
	require.Equal(t, 1, verdict.Phase)
	require.InDelta(t, (250.0-3021.0)/3021.0, verdict.PercentChange, 1e-9)
	require.Equal(t, entity.HistorySnapshot{Good: 0, Bad: 1}, history.Snapshot())

	// фаза 2 не запускалась, остальные области фазы 1 не оценивались
	require.Len(t, cam.frames, 1)
	require.Equal(t, 1, blobCalls(cam))
	require.True(t, cam.frames[0].closed)
}

func TestBoardInspector_BlueAllPresent(t *testing.T) {
	catalog := config.DefaultCatalog()
	counts := countsFor(catalog, entity.ColorBlue, func(id, ref int) int {
		if id%2 == 0 {
			return ref * 95 / 100
		}
		return ref * 105 / 100
	})
	inspector, cam := newInspector(catalog, counts)
	history := entity.NewHistory()

	verdict, err := inspector.Inspect(context.Background(), entity.ColorBlue, history)
	require.NoError(t, err)

	require.True(t, verdict.Accepted)
	require.Len(t, verdict.Measured, 44)
	require.Equal(t, entity.HistorySnapshot{Good: 1, Bad: 0}, history.Snapshot())

	// один кадр на фазу, свой порог бинаризации на каждую фазу
	require.Len(t, cam.frames, 2)
	require.Equal(t, []entity.Threshold{{Min: 110, Max: 255}}, cam.frames[0].binary)
	require.Equal(t, []entity.Threshold{{Min: 155, Max: 255}}, cam.frames[1].binary)
	require.Len(t, cam.frames[0].blobCalls, 21)
	require.Len(t, cam.frames[1].blobCalls, 24)
}

func TestBoardInspector_RejectInSecondPhase(t *testing.T) {
	catalog := config.DefaultCatalog()
	counts := countsFor(catalog, entity.ColorRed, func(id, ref int) int {
		if id == 22 {
			return 0
		}
		return ref
	})
	inspector, cam := newInspector(catalog, counts)
	history := entity.NewHistory()

	verdict, err := inspector.Inspect(context.Background(), entity.ColorRed, history)
	require.NoError(t, err)
	require.False(t, verdict.Accepted)
	require.Equal(t, 22, verdict.ComponentID)
	require.Equal(t, 2, verdict.Phase)
	require.Equal(t, -1.0, verdict.PercentChange)
	require.Len(t, cam.frames, 2)
}

func TestBoardInspector_ExcessPixelsAccepted(t *testing.T) {
	catalog := config.DefaultCatalog()
	counts := countsFor(catalog, entity.ColorYellow, func(id, ref int) int { return ref * 3 })
	inspector, _ := newInspector(catalog, counts)

	verdict, err := inspector.Inspect(context.Background(), entity.ColorYellow, entity.NewHistory())
	require.NoError(t, err)
	require.True(t, verdict.Accepted)
}

func singleComponentCatalog(ref int) entity.Catalog {
	catalog := config.DefaultCatalog()
	roi := entity.ROI{X: 10, Y: 10, W: 20, H: 20}
	catalog.Phases = [][]entity.ComponentROI{{{ID: 1, ROI: roi}}}
	catalog.References[entity.ColorGray] = map[int]int{1: ref}
	return catalog
}

func TestBoardInspector_LossLimitIsStrict(t *testing.T) {
	roi := entity.ROI{X: 10, Y: 10, W: 20, H: 20}

	// ровно −90% не бракуется
	inspector, _ := newInspector(singleComponentCatalog(1000), map[entity.ROI]int{roi: 100})
	verdict, err := inspector.Inspect(context.Background(), entity.ColorGray, entity.NewHistory())
	require.NoError(t, err)
	require.True(t, verdict.Accepted)

	// −90.01% бракуется
	inspector, _ = newInspector(singleComponentCatalog(10000), map[entity.ROI]int{roi: 999})
	verdict, err = inspector.Inspect(context.Background(), entity.ColorGray, entity.NewHistory())
	require.NoError(t, err)
	require.False(t, verdict.Accepted)
	require.InDelta(t, -0.9001, verdict.PercentChange, 1e-9)
}

func TestBoardInspector_Idempotent(t *testing.T) {
	catalog := config.DefaultCatalog()
	counts := countsFor(catalog, entity.ColorGray, func(id, ref int) int {
		if id == 30 {
			return 5
		}
		return ref
	})
	inspector, _ := newInspector(catalog, counts)
	history := entity.NewHistory()

	first, err := inspector.Inspect(context.Background(), entity.ColorGray, history)
	require.NoError(t, err)
	afterFirst := history.Snapshot()

	second, err := inspector.Inspect(context.Background(), entity.ColorGray, history)
	require.NoError(t, err)
	afterSecond := history.Snapshot()

	require.Equal(t, first, second)
	require.Equal(t, afterFirst.Bad, afterSecond.Bad-afterFirst.Bad)
	require.Equal(t, afterFirst.Good, afterSecond.Good-afterFirst.Good)
}

func TestBoardInspector_UnknownColor(t *testing.T) {
	inspector, cam := newInspector(config.DefaultCatalog(), nil)
	history := entity.NewHistory()

	_, err := inspector.Inspect(context.Background(), "green", history)
	require.ErrorIs(t, err, ErrUnknownColor)
	require.Empty(t, cam.frames)
	require.Equal(t, entity.HistorySnapshot{}, history.Snapshot())
}

func TestBoardInspector_MissingReference(t *testing.T) {
	catalog := singleComponentCatalog(1000)
	delete(catalog.References[entity.ColorGray], 1)
	inspector, _ := newInspector(catalog, nil)
	history := entity.NewHistory()

	_, err := inspector.Inspect(context.Background(), entity.ColorGray, history)
	require.ErrorIs(t, err, ErrMissingReference)
	require.Equal(t, entity.HistorySnapshot{}, history.Snapshot())
}

func TestBoardInspector_SnapshotFailure(t *testing.T) {
	inspector, cam := newInspector(config.DefaultCatalog(), nil)
	cam.snapshotErr = errCameraUnplugged
	history := entity.NewHistory()

	_, err := inspector.Inspect(context.Background(), entity.ColorGray, history)
	require.ErrorIs(t, err, ErrHardwareFault)
	require.Equal(t, entity.HistorySnapshot{}, history.Snapshot())
}
