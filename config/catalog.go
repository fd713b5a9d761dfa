package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"qc-station/internal/domain/entity"
)

// FileCatalog TOML-представление каталога станции.
// Отсутствующие в файле поля берутся из DefaultCatalog.
type FileCatalog struct {
	Fallback       *string                   `toml:"fallback"`
	ColorROI       *[4]int                   `toml:"color_roi"`
	ExposureROI    *[4]int                   `toml:"exposure_roi"`
	TriggerROI     *[4]int                   `toml:"trigger_roi"`
	BlackThreshold *[2]uint8                 `toml:"black_threshold"`
	Colors         []FileColor               `toml:"colors"`
	Phases         []FilePhase               `toml:"phases"`
	References     map[string]map[string]int `toml:"references"`
	Tuning         FileTuning                `toml:"tuning"`
}

// FileColor профиль цвета вместе с его диапазоном выдержки и порогами фаз
type FileColor struct {
	Name       string     `toml:"name"`
	Reference  [3]float64 `toml:"reference"`
	Exposure   [2]int     `toml:"exposure"`
	Thresholds [][2]uint8 `toml:"thresholds"`
}

// FilePhase набор областей одной фазы проверки
type FilePhase struct {
	Name       string          `toml:"name"`
	Components []FileComponent `toml:"components"`
}

// FileComponent область одного компонента
type FileComponent struct {
	ID  int    `toml:"id"`
	ROI [4]int `toml:"roi"`
}

// FileTuning переопределения порогов и задержек
type FileTuning struct {
	ColorTolerance        *float64  `toml:"color_tolerance"`
	ColorExposureUs       *int      `toml:"color_exposure_us"`
	ColorAutoWhiteBalance *bool     `toml:"color_auto_white_balance"`
	EmptyBrightness       *float64  `toml:"empty_brightness"`
	StableDelta           *float64  `toml:"stable_delta"`
	StabilityProbes       *int      `toml:"stability_probes"`
	PixelLossLimit        *float64  `toml:"pixel_loss_limit"`
	ExposureTargetMin     *float64  `toml:"exposure_target_min"`
	ExposureTargetMax     *float64  `toml:"exposure_target_max"`
	ExposureStepUs        *int      `toml:"exposure_step_us"`
	ProbeInterval         *Duration `toml:"probe_interval"`
	ExposureSettle        *Duration `toml:"exposure_settle"`
	ColorSettle           *Duration `toml:"color_settle"`
	InitSettle            *Duration `toml:"init_settle"`
	PreShotDelay          *Duration `toml:"pre_shot_delay"`
	ApplySettle           *Duration `toml:"apply_settle"`
}

// Duration длительность в формате time.ParseDuration ("1s", "100ms")
type Duration struct {
	time.Duration
}

// UnmarshalText разбирает строку длительности
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// LoadCatalog читает каталог из TOML-файла и проверяет его целостность.
// Пустой путь или отсутствующий файл означают штатный каталог.
func LoadCatalog(path string) (entity.Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, catalog.Validate()
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return catalog, catalog.Validate()
		}
		return entity.Catalog{}, fmt.Errorf("failed to stat catalog: %w", err)
	}

	var file FileCatalog
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return entity.Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := file.apply(&catalog); err != nil {
		return entity.Catalog{}, err
	}
	if err := catalog.Validate(); err != nil {
		return entity.Catalog{}, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog, nil
}

func (f FileCatalog) apply(c *entity.Catalog) error {
	if f.Fallback != nil {
		c.Fallback = entity.BoardColor(*f.Fallback)
	}
	if f.ColorROI != nil {
		c.ColorROI = roiFrom(*f.ColorROI)
	}
	if f.ExposureROI != nil {
		c.ExposureROI = roiFrom(*f.ExposureROI)
	}
	if f.TriggerROI != nil {
		c.TriggerROI = roiFrom(*f.TriggerROI)
	}
	if f.BlackThreshold != nil {
		c.BlackThreshold = entity.Threshold{Min: f.BlackThreshold[0], Max: f.BlackThreshold[1]}
	}

	// список цветов заменяется целиком, чтобы порядок сравнения задавался файлом
	if len(f.Colors) > 0 {
		c.Profiles = make([]entity.ColorProfile, 0, len(f.Colors))
		c.ExposureRanges = make(map[entity.BoardColor]entity.ExposureRange, len(f.Colors))
		c.BinaryThresholds = make(map[entity.BoardColor][]entity.Threshold, len(f.Colors))
		for _, fc := range f.Colors {
			color := entity.BoardColor(fc.Name)
			c.Profiles = append(c.Profiles, entity.ColorProfile{
				Color:     color,
				Reference: entity.RGB{R: fc.Reference[0], G: fc.Reference[1], B: fc.Reference[2]},
			})
			c.ExposureRanges[color] = entity.ExposureRange{MinUs: fc.Exposure[0], MaxUs: fc.Exposure[1]}
			thresholds := make([]entity.Threshold, 0, len(fc.Thresholds))
			for _, th := range fc.Thresholds {
				thresholds = append(thresholds, entity.Threshold{Min: th[0], Max: th[1]})
			}
			c.BinaryThresholds[color] = thresholds
		}
	}

	if len(f.Phases) > 0 {
		c.Phases = make([][]entity.ComponentROI, 0, len(f.Phases))
		for _, fp := range f.Phases {
			components := make([]entity.ComponentROI, 0, len(fp.Components))
			for _, comp := range fp.Components {
				components = append(components, entity.ComponentROI{ID: comp.ID, ROI: roiFrom(comp.ROI)})
			}
			c.Phases = append(c.Phases, components)
		}
	}

	for name, counts := range f.References {
		color := entity.BoardColor(name)
		refs := make(map[int]int, len(c.References[color])+len(counts))
		for id, count := range c.References[color] {
			refs[id] = count
		}
		for key, count := range counts {
			id, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("references.%s: component id %q is not a number", name, key)
			}
			refs[id] = count
		}
		c.References[color] = refs
	}

	f.Tuning.apply(&c.Tuning)
	return nil
}

func (f FileTuning) apply(t *entity.Tuning) {
	setFloat(&t.ColorTolerance, f.ColorTolerance)
	setInt(&t.ColorExposureUs, f.ColorExposureUs)
	if f.ColorAutoWhiteBalance != nil {
		t.ColorAutoWhiteBalance = *f.ColorAutoWhiteBalance
	}
	setFloat(&t.EmptyBrightness, f.EmptyBrightness)
	setFloat(&t.StableDelta, f.StableDelta)
	setInt(&t.StabilityProbes, f.StabilityProbes)
	setFloat(&t.PixelLossLimit, f.PixelLossLimit)
	setFloat(&t.ExposureTargetMin, f.ExposureTargetMin)
	setFloat(&t.ExposureTargetMax, f.ExposureTargetMax)
	setInt(&t.ExposureStepUs, f.ExposureStepUs)
	setDuration(&t.ProbeInterval, f.ProbeInterval)
	setDuration(&t.ExposureSettle, f.ExposureSettle)
	setDuration(&t.ColorSettle, f.ColorSettle)
	setDuration(&t.InitSettle, f.InitSettle)
	setDuration(&t.PreShotDelay, f.PreShotDelay)
	setDuration(&t.ApplySettle, f.ApplySettle)
}

func roiFrom(v [4]int) entity.ROI {
	return entity.ROI{X: v[0], Y: v[1], W: v[2], H: v[3]}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
