package config

import (
	"time"

	"qc-station/internal/domain/entity"
)

// Значения ниже измерены вручную на эталонных платах при выдержке 40000 мкс.
// Эталонные числа пикселей получены по малой выборке; в следующей ревизии станции
// их нужно усреднять по большему набору плат.

// DefaultTuning возвращает штатные пороги и задержки станции
func DefaultTuning() entity.Tuning {
	return entity.Tuning{
		ColorTolerance:        40,
		ColorExposureUs:       40000,
		ColorAutoWhiteBalance: true,
		EmptyBrightness:       190,
		StableDelta:           25,
		StabilityProbes:       5,
		PixelLossLimit:        -0.90,
		ExposureTargetMin:     200,
		ExposureTargetMax:     220,
		ExposureStepUs:        1000,
		ProbeInterval:         time.Second,
		ExposureSettle:        100 * time.Millisecond,
		ColorSettle:           2 * time.Second,
		InitSettle:            time.Second,
		PreShotDelay:          time.Second,
		ApplySettle:           time.Second,
		Blobs: entity.BlobOptions{
			PixelsThreshold: 1,
			AreaThreshold:   1,
			Merge:           true,
		},
	}
}

// DefaultCatalog возвращает каталог станции с четырьмя цветами плат
func DefaultCatalog() entity.Catalog {
	return entity.Catalog{
		// порядок важен: первый полностью совпавший профиль выигрывает
		Profiles: []entity.ColorProfile{
			{Color: entity.ColorYellow, Reference: entity.RGB{R: 247, G: 255, B: 123}},
			{Color: entity.ColorBlue, Reference: entity.RGB{R: 110, G: 255, B: 255}},
			{Color: entity.ColorRed, Reference: entity.RGB{R: 255, G: 203, B: 115}},
			{Color: entity.ColorGray, Reference: entity.RGB{R: 74, G: 215, B: 115}},
		},
		// серые платы сложнее всего классифицировать, поэтому при промахе считаем плату серой
		Fallback: entity.ColorGray,
		ExposureRanges: map[entity.BoardColor]entity.ExposureRange{
			entity.ColorBlue:   {MinUs: 10000, MaxUs: 50000},
			entity.ColorYellow: {MinUs: 8000, MaxUs: 36000},
			entity.ColorRed:    {MinUs: 60000, MaxUs: 130000},
			entity.ColorGray:   {MinUs: 80000, MaxUs: 250000},
		},
		// периметр бинаризуется хуже внутренней части, поэтому у цветных плат два порога
		BinaryThresholds: map[entity.BoardColor][]entity.Threshold{
			entity.ColorGray:   {{Min: 80, Max: 255}, {Min: 80, Max: 255}},
			entity.ColorRed:    {{Min: 150, Max: 255}, {Min: 170, Max: 255}},
			entity.ColorBlue:   {{Min: 110, Max: 255}, {Min: 155, Max: 255}},
			entity.ColorYellow: {{Min: 120, Max: 255}, {Min: 160, Max: 255}},
		},
		BlackThreshold: entity.Threshold{Min: 0, Max: 25},
		ColorROI:       entity.ROI{X: 162, Y: 27, W: 17, H: 22},
		ExposureROI:    entity.ROI{X: 382, Y: 314, W: 21, H: 37},
		TriggerROI:     entity.ROI{X: 255, Y: 76, W: 214, H: 328},
		Phases:         [][]entity.ComponentROI{perimeterROIs(), innerROIs()},
		References:     defaultReferences(),
		Tuning:         DefaultTuning(),
	}
}

func perimeterROIs() []entity.ComponentROI {
	return []entity.ComponentROI{
		{ID: 1, ROI: entity.ROI{X: 252, Y: 49, W: 53, H: 57}},
		{ID: 2, ROI: entity.ROI{X: 365, Y: 51, W: 20, H: 52}},
		{ID: 3, ROI: entity.ROI{X: 382, Y: 50, W: 21, H: 51}},
		{ID: 4, ROI: entity.ROI{X: 402, Y: 50, W: 23, H: 53}},
		{ID: 5, ROI: entity.ROI{X: 441, Y: 53, W: 49, H: 57}},
		{ID: 13, ROI: entity.ROI{X: 450, Y: 129, W: 42, H: 47}},
		{ID: 14, ROI: entity.ROI{X: 238, Y: 192, W: 33, H: 24}},
		{ID: 15, ROI: entity.ROI{X: 239, Y: 216, W: 31, H: 22}},
		{ID: 19, ROI: entity.ROI{X: 452, Y: 184, W: 37, H: 44}},
		{ID: 25, ROI: entity.ROI{X: 451, Y: 233, W: 40, H: 48}},
		{ID: 26, ROI: entity.ROI{X: 233, Y: 298, W: 21, H: 20}},
		{ID: 27, ROI: entity.ROI{X: 233, Y: 317, W: 21, H: 18}},
		{ID: 28, ROI: entity.ROI{X: 234, Y: 332, W: 21, H: 20}},
		{ID: 34, ROI: entity.ROI{X: 454, Y: 289, W: 21, H: 24}},
		{ID: 37, ROI: entity.ROI{X: 296, Y: 411, W: 46, H: 21}},
		{ID: 39, ROI: entity.ROI{X: 354, Y: 406, W: 22, H: 25}},
		{ID: 40, ROI: entity.ROI{X: 384, Y: 414, W: 10, H: 14}},
		{ID: 41, ROI: entity.ROI{X: 399, Y: 413, W: 10, H: 14}},
		{ID: 42, ROI: entity.ROI{X: 414, Y: 421, W: 12, H: 10}},
		{ID: 43, ROI: entity.ROI{X: 415, Y: 331, W: 34, H: 78}},
		{ID: 44, ROI: entity.ROI{X: 458, Y: 335, W: 26, H: 77}},
	}
}

func innerROIs() []entity.ComponentROI {
	return []entity.ComponentROI{
		{ID: 6, ROI: entity.ROI{X: 316, Y: 100, W: 20, H: 28}},
		{ID: 7, ROI: entity.ROI{X: 332, Y: 100, W: 20, H: 28}},
		{ID: 8, ROI: entity.ROI{X: 349, Y: 100, W: 20, H: 28}},
		{ID: 9, ROI: entity.ROI{X: 263, Y: 146, W: 28, H: 30}},
		{ID: 10, ROI: entity.ROI{X: 324, Y: 146, W: 45, H: 47}},
		{ID: 11, ROI: entity.ROI{X: 385, Y: 133, W: 31, H: 23}},
		{ID: 12, ROI: entity.ROI{X: 386, Y: 157, W: 30, H: 24}},
		{ID: 15, ROI: entity.ROI{X: 239, Y: 216, W: 31, H: 22}},
		{ID: 16, ROI: entity.ROI{X: 320, Y: 214, W: 51, H: 21}},
		{ID: 17, ROI: entity.ROI{X: 385, Y: 184, W: 31, H: 20}},
		{ID: 18, ROI: entity.ROI{X: 386, Y: 208, W: 30, H: 20}},
		{ID: 20, ROI: entity.ROI{X: 265, Y: 245, W: 21, H: 34}},
		{ID: 21, ROI: entity.ROI{X: 295, Y: 245, W: 20, H: 34}},
		{ID: 22, ROI: entity.ROI{X: 331, Y: 252, W: 51, H: 45}},
		{ID: 23, ROI: entity.ROI{X: 385, Y: 233, W: 33, H: 21}},
		{ID: 24, ROI: entity.ROI{X: 385, Y: 257, W: 31, H: 21}},
		{ID: 29, ROI: entity.ROI{X: 277, Y: 306, W: 47, H: 45}},
		{ID: 30, ROI: entity.ROI{X: 339, Y: 299, W: 22, H: 20}},
		{ID: 31, ROI: entity.ROI{X: 339, Y: 316, W: 22, H: 20}},
		{ID: 32, ROI: entity.ROI{X: 339, Y: 334, W: 23, H: 18}},
		{ID: 33, ROI: entity.ROI{X: 425, Y: 293, W: 27, H: 22}},
		{ID: 35, ROI: entity.ROI{X: 264, Y: 376, W: 28, H: 28}},
		{ID: 36, ROI: entity.ROI{X: 296, Y: 393, W: 48, H: 20}},
		{ID: 38, ROI: entity.ROI{X: 354, Y: 375, W: 23, H: 27}},
	}
}

func defaultReferences() map[entity.BoardColor]map[int]int {
	return map[entity.BoardColor]map[int]int{
		entity.ColorGray: {
			1: 3021, 2: 435, 3: 463, 4: 487, 5: 2765, 6: 147, 7: 164, 8: 156, 9: 430,
			10: 2111, 11: 414, 12: 424, 13: 1492, 14: 447, 15: 438, 16: 503, 17: 428,
			18: 422, 19: 1422, 20: 422, 21: 448, 22: 1458, 23: 453, 24: 419, 25: 1479,
			26: 160, 27: 153, 28: 170, 29: 2112, 30: 152, 31: 168, 32: 164, 33: 403,
			34: 360, 35: 442, 36: 541, 37: 558, 38: 416, 39: 379, 40: 106, 41: 92,
			42: 78, 43: 2462, 44: 2002,
		},
		entity.ColorRed: {
			1: 2967, 2: 445, 3: 434, 4: 443, 5: 2793, 6: 137, 7: 154, 8: 154, 9: 432,
			10: 2035, 11: 434, 12: 411, 13: 971, 14: 410, 15: 454, 16: 366, 17: 378,
			18: 353, 19: 938, 20: 428, 21: 429, 22: 824, 23: 410, 24: 356, 25: 964,
			26: 142, 27: 151, 28: 172, 29: 1988, 30: 119, 31: 173, 32: 164, 33: 361,
			34: 312, 35: 457, 36: 527, 37: 551, 38: 400, 39: 347, 40: 87, 41: 70,
			42: 94, 43: 2370, 44: 2002,
		},
		entity.ColorBlue: {
			1: 2865, 2: 393, 3: 396, 4: 408, 5: 2785, 6: 141, 7: 145, 8: 140, 9: 428,
			10: 2106, 11: 436, 12: 422, 13: 896, 14: 312, 15: 442, 16: 392, 17: 413,
			18: 389, 19: 868, 20: 439, 21: 447, 22: 881, 23: 426, 24: 389, 25: 845,
			26: 27, 27: 19, 28: 34, 29: 2107, 30: 131, 31: 154, 32: 146, 33: 396,
			34: 317, 35: 432, 36: 535, 37: 488, 38: 415, 39: 340, 40: 47, 41: 43,
			42: 87, 43: 2378, 44: 2002,
		},
		entity.ColorYellow: {
			1: 2523, 2: 498, 3: 481, 4: 502, 5: 2558, 6: 200, 7: 217, 8: 222, 9: 543,
			10: 2014, 11: 469, 12: 457, 13: 1002, 14: 454, 15: 506, 16: 582, 17: 459,
			18: 444, 19: 905, 20: 493, 21: 499, 22: 942, 23: 497, 24: 441, 25: 955,
			26: 180, 27: 182, 28: 220, 29: 1988, 30: 213, 31: 258, 32: 229, 33: 459,
			34: 345, 35: 572, 36: 639, 37: 564, 38: 453, 39: 367, 40: 97, 41: 79,
			42: 94, 43: 2288, 44: 1921,
		},
	}
}
