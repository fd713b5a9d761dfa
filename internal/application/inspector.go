package app

import (
	"context"
	"fmt"
	"log"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// BoardInspector проверяет наличие компонентов в две фазы: сначала периметр, затем внутреннюю часть платы
type BoardInspector struct {
	camera  port.Camera
	catalog entity.Catalog
}

func NewBoardInspector(camera port.Camera, catalog entity.Catalog) *BoardInspector {
	return &BoardInspector{camera: camera, catalog: catalog}
}

// Inspect выносит вердикт по плате и обновляет счётчики history.
// Первый отказ завершает проверку: оставшиеся области и фазы не оцениваются.
func (i *BoardInspector) Inspect(ctx context.Context, color entity.BoardColor, history *entity.History) (entity.Verdict, error) {
	thresholds, ok := i.catalog.BinaryThresholds[color]
	refs, hasRefs := i.catalog.References[color]
	if !ok || !hasRefs || len(thresholds) < len(i.catalog.Phases) {
		return entity.Verdict{}, fmt.Errorf("%w: %s", ErrUnknownColor, color)
	}

	measured := make(map[int]int)
	for phase, components := range i.catalog.Phases {
		verdict, rejected, err := i.inspectPhase(ctx, phase, components, thresholds[phase], refs, measured)
		if err != nil {
			return entity.Verdict{}, err
		}
		if rejected {
			counters := history.RecordReject()
			log.Printf("Pixel count change %.2f%% in ROI %d (phase %d): REJECT, good=%d bad=%d",
				verdict.PercentChange*100, verdict.ComponentID, verdict.Phase, counters.Good, counters.Bad)
			return verdict, nil
		}
	}

	counters := history.RecordAccept()
	log.Printf("All components present: ACCEPT, good=%d bad=%d", counters.Good, counters.Bad)
	return entity.Accept(measured), nil
}

// inspectPhase снимает один кадр на фазу и сравнивает каждую область с эталоном
func (i *BoardInspector) inspectPhase(
	ctx context.Context,
	phase int,
	components []entity.ComponentROI,
	threshold entity.Threshold,
	refs map[int]int,
	measured map[int]int,
) (entity.Verdict, bool, error) {
	frame, err := i.camera.Snapshot(ctx)
	if err != nil {
		return entity.Verdict{}, false, hardware("snapshot", err)
	}
	defer frame.Close()

	if err := frame.Binary(threshold); err != nil {
		return entity.Verdict{}, false, hardware("binary threshold", err)
	}

	t := i.catalog.Tuning
	for _, comp := range components {
		ref := refs[comp.ID]
		if ref <= 0 {
			return entity.Verdict{}, false, fmt.Errorf("component %d: %w", comp.ID, ErrMissingReference)
		}

		blobs, err := frame.FindBlobs(i.catalog.BlackThreshold, comp.ROI, t.Blobs)
		if err != nil {
			return entity.Verdict{}, false, hardware("find blobs", err)
		}
		count := entity.SumPixels(blobs)
		measured[comp.ID] = count

		// отказ только при нехватке пикселей; избыток не проверяется
		change := entity.PercentChange(count, ref)
		if change < t.PixelLossLimit {
			return entity.Reject(comp.ID, phase+1, change, measured), true, nil
		}
	}
	return entity.Verdict{}, false, nil
}
