package app

import (
	"context"
	"log"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"qc-station/internal/domain/entity"
)

// ColorResult итог определения цвета платы
type ColorResult struct {
	Color    entity.BoardColor
	Measured entity.RGB
	Fallback bool // ни один профиль не совпал, выбран цвет по умолчанию
}

// ColorClassifier определяет цвет платы по эталонной области кадра
type ColorClassifier struct {
	sensor  *Sensor
	probe   *Probe
	catalog entity.Catalog
}

func NewColorClassifier(sensor *Sensor, probe *Probe, catalog entity.Catalog) *ColorClassifier {
	return &ColorClassifier{sensor: sensor, probe: probe, catalog: catalog}
}

// Classify снимает цветной кадр, определяет цвет и возвращает сенсор в режим проверки.
func (c *ColorClassifier) Classify(ctx context.Context) (ColorResult, error) {
	if err := c.sensor.Apply(ctx, c.catalog.ColorMode(), c.catalog.Tuning.ColorSettle); err != nil {
		return ColorResult{}, err
	}

	lab, err := c.probe.Lab(ctx, c.catalog.ColorROI)
	if err != nil {
		return ColorResult{}, err
	}

	result := MatchColor(c.catalog.Profiles, LabToRGB(lab), c.catalog.Tuning.ColorTolerance, c.catalog.Fallback)
	if result.Fallback {
		log.Printf("Color classification missed: measured %s matches no profile, falling back to %s", result.Measured, result.Color)
	} else {
		log.Printf("Color classified: %s (measured %s)", result.Color, result.Measured)
	}

	if err := c.sensor.Init(ctx); err != nil {
		return ColorResult{}, err
	}
	return result, nil
}

// MatchColor возвращает первый профиль, у которого все три канала отличаются меньше допуска.
// Пересечение окон допуска разных профилей не разрешается: выигрывает порядок списка.
func MatchColor(profiles []entity.ColorProfile, measured entity.RGB, tolerance float64, fallback entity.BoardColor) ColorResult {
	got := measured.Channels()
	for _, p := range profiles {
		ref := p.Reference.Channels()
		matched := true
		for i := range ref {
			if math.Abs(ref[i]-got[i]) >= tolerance {
				matched = false
				break
			}
		}
		if matched {
			return ColorResult{Color: p.Color, Measured: measured}
		}
	}
	return ColorResult{Color: fallback, Measured: measured, Fallback: true}
}

// LabToRGB переводит средние LAB (L 0–100, A и B −128..127) в RGB 0–255
func LabToRGB(lab entity.LabStats) entity.RGB {
	r, g, b := colorful.Lab(lab.L/100, lab.A/100, lab.B/100).Clamped().RGB255()
	return entity.RGB{R: float64(r), G: float64(g), B: float64(b)}
}
