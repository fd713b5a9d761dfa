package entity

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Tuning именованные пороги и задержки станции
type Tuning struct {
	ColorTolerance        float64       // допуск по каналу RGB при сравнении цвета
	ColorExposureUs       int           // фиксированная выдержка снимка цвета
	ColorAutoWhiteBalance bool          // баланс белого при снимке цвета
	EmptyBrightness       float64       // средняя яркость пустой оснастки (строго больше)
	StableDelta           float64       // допустимое изменение средней яркости между замерами
	StabilityProbes       int           // число замеров при ожидании успокоения
	PixelLossLimit        float64       // порог потери пикселей (строго меньше ⇒ брак)
	ExposureTargetMin     float64       // нижняя граница окна яркости эталонной области
	ExposureTargetMax     float64       // верхняя граница окна яркости эталонной области
	ExposureStepUs        int           // шаг перебора выдержки
	ProbeInterval         time.Duration // пауза между замерами присутствия
	ExposureSettle        time.Duration // пауза после смены выдержки при подборе
	ColorSettle           time.Duration // пауза после переключения в цветной режим
	InitSettle            time.Duration // пауза после инициализации сенсора
	PreShotDelay          time.Duration // пауза перед определением цвета
	ApplySettle           time.Duration // пауза после применения найденной выдержки
	Blobs                 BlobOptions
}

// Catalog полная конфигурация станции: цвета, диапазоны, пороги, области и эталоны
type Catalog struct {
	Profiles         []ColorProfile
	Fallback         BoardColor
	ExposureRanges   map[BoardColor]ExposureRange
	BinaryThresholds map[BoardColor][]Threshold // по одному порогу на фазу
	BlackThreshold   Threshold
	ColorROI         ROI
	ExposureROI      ROI
	TriggerROI       ROI
	Phases           [][]ComponentROI // фаза 1: периметр, фаза 2: внутренние компоненты
	References       map[BoardColor]map[int]int
	Tuning           Tuning
}

// InspectionMode режим сенсора для проверки и датчика присутствия
func (c Catalog) InspectionMode() SensorMode {
	return SensorMode{
		Format:           PixelFormatGrayscale,
		Size:             FrameSizeVGA,
		AutoGain:         false,
		AutoWhiteBalance: true,
		AutoExposure:     true,
	}
}

// ColorMode режим сенсора для определения цвета
func (c Catalog) ColorMode() SensorMode {
	return SensorMode{
		Format:           PixelFormatRGB565,
		Size:             FrameSizeQVGA,
		AutoGain:         false,
		AutoWhiteBalance: c.Tuning.ColorAutoWhiteBalance,
		AutoExposure:     false,
		ExposureUs:       c.Tuning.ColorExposureUs,
	}
}

// Colors возвращает цвета профилей в порядке сравнения
func (c Catalog) Colors() []BoardColor {
	colors := make([]BoardColor, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		colors = append(colors, p.Color)
	}
	return colors
}

// ComponentIDs возвращает отсортированное объединение идентификаторов всех фаз
func (c Catalog) ComponentIDs() []int {
	seen := make(map[int]struct{})
	for _, phase := range c.Phases {
		for _, comp := range phase {
			seen[comp.ID] = struct{}{}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Validate проверяет целостность каталога и возвращает все найденные нарушения
func (c Catalog) Validate() error {
	var errs []error

	if len(c.Profiles) == 0 {
		errs = append(errs, errors.New("no color profiles configured"))
	}
	if len(c.Phases) == 0 {
		errs = append(errs, errors.New("no inspection phases configured"))
	}

	known := make(map[BoardColor]bool, len(c.Profiles))
	for _, p := range c.Profiles {
		if known[p.Color] {
			errs = append(errs, fmt.Errorf("duplicate color profile %q", p.Color))
		}
		known[p.Color] = true
	}
	if !known[c.Fallback] {
		errs = append(errs, fmt.Errorf("fallback color %q has no profile", c.Fallback))
	}

	ids := c.ComponentIDs()
	for _, color := range c.Colors() {
		if r, ok := c.ExposureRanges[color]; !ok || !r.Valid() {
			errs = append(errs, fmt.Errorf("color %q: invalid exposure range %+v", color, r))
		}
		if got := len(c.BinaryThresholds[color]); got != len(c.Phases) {
			errs = append(errs, fmt.Errorf("color %q: %d binary thresholds for %d phases", color, got, len(c.Phases)))
		}
		refs := c.References[color]
		for _, id := range ids {
			if refs[id] <= 0 {
				errs = append(errs, fmt.Errorf("color %q: component %d has no positive reference count", color, id))
			}
		}
	}

	for name, roi := range map[string]ROI{"trigger": c.TriggerROI, "exposure": c.ExposureROI} {
		if !roi.Within(FrameSizeVGA) {
			errs = append(errs, fmt.Errorf("%s roi %s is outside the frame", name, roi))
		}
	}
	if !c.ColorROI.Within(FrameSizeQVGA) {
		errs = append(errs, fmt.Errorf("color roi %s is outside the frame", c.ColorROI))
	}
	for i, phase := range c.Phases {
		for _, comp := range phase {
			if !comp.ROI.Within(FrameSizeVGA) {
				errs = append(errs, fmt.Errorf("phase %d: component %d roi %s is outside the frame", i+1, comp.ID, comp.ROI))
			}
		}
	}

	t := c.Tuning
	if t.ExposureStepUs <= 0 {
		errs = append(errs, errors.New("exposure step must be positive"))
	}
	if t.StabilityProbes <= 0 {
		errs = append(errs, errors.New("stability probes must be positive"))
	}
	if t.ExposureTargetMin > t.ExposureTargetMax {
		errs = append(errs, errors.New("exposure target window is inverted"))
	}

	return errors.Join(errs...)
}
