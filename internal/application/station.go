package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// Station внешний цикл станции: ожидание платы, определение цвета, подбор выдержки, проверка, ожидание снятия.
type Station struct {
	camera     port.Camera
	sleeper    port.Sleeper
	catalog    entity.Catalog
	history    *entity.History
	reporter   port.VerdictReporter
	journal    port.InspectionJournal
	sensor     *Sensor
	presence   *PresenceSensor
	classifier *ColorClassifier
	calibrator *ExposureCalibrator
	inspector  *BoardInspector

	newID func() string
	now   func() time.Time

	mu    sync.RWMutex
	state entity.StationState
}

// NewStation собирает станцию. journal может быть nil.
func NewStation(
	camera port.Camera,
	sleeper port.Sleeper,
	catalog entity.Catalog,
	history *entity.History,
	reporter port.VerdictReporter,
	journal port.InspectionJournal,
) *Station {
	sensor := NewSensor(camera, sleeper, catalog)
	probe := NewProbe(camera)
	return &Station{
		camera:     camera,
		sleeper:    sleeper,
		catalog:    catalog,
		history:    history,
		reporter:   reporter,
		journal:    journal,
		sensor:     sensor,
		presence:   NewPresenceSensor(probe, sleeper, catalog),
		classifier: NewColorClassifier(sensor, probe, catalog),
		calibrator: NewExposureCalibrator(camera, probe, sleeper, catalog),
		inspector:  NewBoardInspector(camera, catalog),
		newID:      uuid.NewString,
		now:        time.Now,
		state:      entity.StateWaitingForBoard,
	}
}

// State возвращает текущее состояние станции
func (s *Station) State() entity.StationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Station) setState(state entity.StationState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Run крутит цикл станции до отмены контекста.
// Ошибки цикла не останавливают станцию: сенсор переинициализируется, станция ждёт пустую оснастку.
func (s *Station) Run(ctx context.Context) error {
	if err := s.sensor.Init(ctx); err != nil {
		return fmt.Errorf("init sensor: %w", err)
	}

	log.Println("Station is running...")
	for ctx.Err() == nil {
		if err := s.step(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("Station error: %v", err)
			s.resetAfterFailure(ctx)
		}
	}

	log.Println("Station stopped")
	return nil
}

// step одна итерация опроса оснастки
func (s *Station) step(ctx context.Context) error {
	s.setState(entity.StateWaitingForBoard)
	empty, err := s.presence.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if empty {
		return s.sleeper.Sleep(ctx, s.catalog.Tuning.ProbeInterval)
	}

	// плата на месте, ждём, пока из кадра уйдут посторонние предметы
	s.setState(entity.StateSettling)
	stable, err := s.presence.IsStable(ctx)
	if err != nil || !stable {
		return err
	}
	if err := s.sleeper.Sleep(ctx, s.catalog.Tuning.PreShotDelay); err != nil {
		return err
	}

	_, err = s.RunCycle(ctx)
	return err
}

// RunCycle проверяет плату, которая уже лежит в оснастке, и ждёт её снятия.
func (s *Station) RunCycle(ctx context.Context) (*port.CycleReport, error) {
	id := s.newID()
	report, err := s.inspect(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			if rerr := s.reporter.ReportFailure(ctx, id, err); rerr != nil {
				log.Printf("Error reporting failure: %v", rerr)
			}
		}
		return nil, err
	}

	if s.journal != nil {
		if err := s.journal.Append(ctx, report.Record); err != nil {
			log.Printf("Error writing journal: %v", err)
		}
	}
	if err := s.reporter.ReportVerdict(ctx, *report); err != nil {
		log.Printf("Error reporting verdict: %v", err)
	}

	s.setState(entity.StateWaitingForRemoval)
	if err := s.presence.WaitForRemoval(ctx); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Station) inspect(ctx context.Context, id string) (*port.CycleReport, error) {
	s.setState(entity.StateClassifying)
	color, err := s.classifier.Classify(ctx)
	if err != nil {
		return nil, fmt.Errorf("classify color: %w", err)
	}

	s.setState(entity.StateCalibrating)
	exposure, err := s.calibrator.Calibrate(ctx, color.Color)
	if err != nil {
		return nil, fmt.Errorf("calibrate exposure: %w", err)
	}
	if !exposure.Found {
		// чаще всего в кадр попала рука: сбрасываем сенсор и пробуем ещё раз
		log.Printf("Retrying exposure search for %s after sensor reset", color.Color)
		if err := s.sensor.Init(ctx); err != nil {
			return nil, err
		}
		exposure, err = s.calibrator.Calibrate(ctx, color.Color)
		if err != nil {
			return nil, fmt.Errorf("calibrate exposure: %w", err)
		}
		if !exposure.Found {
			return nil, fmt.Errorf("%w: color %s, %d attempts", ErrExposureNotFound, color.Color, exposure.Attempts)
		}
	}
	log.Printf("Board color: %s, optimal exposure: %d us", color.Color, exposure.Microseconds)

	if err := s.camera.SetExposure(ctx, exposure.Microseconds); err != nil {
		return nil, hardware("set exposure", err)
	}
	if err := s.sleeper.Sleep(ctx, s.catalog.Tuning.ApplySettle); err != nil {
		return nil, err
	}

	s.setState(entity.StateInspecting)
	verdict, err := s.inspector.Inspect(ctx, color.Color, s.history)
	if err != nil {
		return nil, fmt.Errorf("inspect board: %w", err)
	}

	record := entity.NewInspectionRecord(id, s.now(), color.Color, color.Fallback, exposure.Microseconds, verdict, s.history.Snapshot())
	return &port.CycleReport{Record: record, Verdict: verdict}, nil
}

// resetAfterFailure возвращает станцию в ожидание пустой оснастки после прерванного цикла
func (s *Station) resetAfterFailure(ctx context.Context) {
	if err := s.sensor.Init(ctx); err != nil {
		log.Printf("Error re-initializing sensor: %v", err)
		_ = s.sleeper.Sleep(ctx, s.catalog.Tuning.ProbeInterval)
		return
	}
	s.setState(entity.StateWaitingForRemoval)
	if err := s.presence.WaitForRemoval(ctx); err != nil {
		log.Printf("Error waiting for removal: %v", err)
	}
}
