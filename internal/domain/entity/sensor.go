package entity

// PixelFormat формат пикселей сенсора
type PixelFormat string

const (
	PixelFormatGrayscale PixelFormat = "grayscale"
	PixelFormatRGB565    PixelFormat = "rgb565"
)

// FrameSize разрешение кадра
type FrameSize string

const (
	FrameSizeQVGA FrameSize = "qvga" // 320x240
	FrameSizeVGA  FrameSize = "vga"  // 640x480
)

// Dimensions возвращает ширину и высоту кадра
func (s FrameSize) Dimensions() (width, height int) {
	switch s {
	case FrameSizeQVGA:
		return 320, 240
	case FrameSizeVGA:
		return 640, 480
	default:
		return 0, 0
	}
}

// SensorMode полный набор аппаратных настроек сенсора.
// Ни один шаг не полагается на режим, оставленный предыдущим шагом.
type SensorMode struct {
	Format           PixelFormat
	Size             FrameSize
	AutoGain         bool
	AutoWhiteBalance bool
	AutoExposure     bool
	ExposureUs       int // используется только при AutoExposure == false
}

// RegionStats статистика яркости области
type RegionStats struct {
	Min  float64
	Max  float64
	Mean float64
}

// LabStats средние значения каналов LAB (L 0–100, A и B −128..127)
type LabStats struct {
	L float64
	A float64
	B float64
}
