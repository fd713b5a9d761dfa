//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// GoCVCamera камера станции через OpenCV VideoCapture
type GoCVCamera struct {
	mu      sync.Mutex
	device  int
	capture *gocv.VideoCapture
	mode    entity.SensorMode
}

// NewGoCVCamera открывает устройство захвата
func NewGoCVCamera(device int) (*GoCVCamera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	return &GoCVCamera{device: device, capture: capture}, nil
}

// Reset переоткрывает устройство, сбрасывая все настройки драйвера
func (c *GoCVCamera) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture != nil {
		c.capture.Close()
	}
	capture, err := gocv.OpenVideoCapture(c.device)
	if err != nil {
		c.capture = nil
		return fmt.Errorf("reopen camera %d: %w", c.device, err)
	}
	c.capture = capture
	c.mode = entity.SensorMode{}
	return nil
}

func (c *GoCVCamera) Configure(ctx context.Context, mode entity.SensorMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return errors.New("camera is not open")
	}
	if w, _ := mode.Size.Dimensions(); w == 0 {
		return fmt.Errorf("unsupported frame size %q", mode.Size)
	}
	for _, setting := range modeSettings(mode, c.capture.Get(gocv.VideoCaptureGain)) {
		c.capture.Set(setting.prop, setting.value)
	}
	c.mode = mode
	return nil
}

func (c *GoCVCamera) SetExposure(ctx context.Context, exposureUs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return errors.New("camera is not open")
	}
	c.capture.Set(gocv.VideoCaptureAutoExposure, v4l2AutoExposureOff)
	c.capture.Set(gocv.VideoCaptureExposure, exposureProp(exposureUs))
	c.mode.AutoExposure = false
	c.mode.ExposureUs = exposureUs
	return nil
}

// Snapshot читает кадр и приводит его к формату и размеру текущего режима
func (c *GoCVCamera) Snapshot(ctx context.Context) (port.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil, errors.New("camera is not open")
	}
	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, errors.New("failed to read frame")
	}

	if w, h := c.mode.Size.Dimensions(); w > 0 && (mat.Cols() != w || mat.Rows() != h) {
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}
	if c.mode.Format == entity.PixelFormatGrayscale && mat.Channels() > 1 {
		gray := gocv.NewMat()
		gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
		mat.Close()
		mat = gray
	}
	return &gocvFrame{mat: mat}, nil
}

// Close освобождает устройство
func (c *GoCVCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capture == nil {
		return nil
	}
	err := c.capture.Close()
	c.capture = nil
	return err
}

type captureSetting struct {
	prop  gocv.VideoCaptureProperties
	value float64
}

// modeSettings переводит режим сенсора в свойства VideoCapture.
// У OpenCV нет свойства автоусиления: после Reset драйвер стоит в автоусилении по умолчанию,
// а при AutoGain == false усиление фиксируется на текущем значении gain, что отключает автоусиление в V4L2.
func modeSettings(mode entity.SensorMode, gain float64) []captureSetting {
	w, h := mode.Size.Dimensions()
	settings := []captureSetting{
		{gocv.VideoCaptureFrameWidth, float64(w)},
		{gocv.VideoCaptureFrameHeight, float64(h)},
		{gocv.VideoCaptureAutoWB, boolProp(mode.AutoWhiteBalance)},
	}
	if !mode.AutoGain {
		settings = append(settings, captureSetting{gocv.VideoCaptureGain, gain})
	}
	if mode.AutoExposure {
		return append(settings, captureSetting{gocv.VideoCaptureAutoExposure, v4l2AutoExposureOn})
	}
	return append(settings,
		captureSetting{gocv.VideoCaptureAutoExposure, v4l2AutoExposureOff},
		captureSetting{gocv.VideoCaptureExposure, exposureProp(mode.ExposureUs)},
	)
}

// Значения свойства CAP_PROP_AUTO_EXPOSURE для V4L2
const (
	v4l2AutoExposureOn  = 0.75
	v4l2AutoExposureOff = 0.25
)

// exposureProp переводит микросекунды в единицы V4L2 exposure_absolute (100 мкс)
func exposureProp(us int) float64 {
	return float64(us) / 100
}

func boolProp(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// gocvFrame кадр OpenCV
type gocvFrame struct {
	mat gocv.Mat
}

func (f *gocvFrame) region(roi entity.ROI) (gocv.Mat, error) {
	r := roi.Rect()
	if r.Empty() || !r.In(image.Rect(0, 0, f.mat.Cols(), f.mat.Rows())) {
		return gocv.Mat{}, fmt.Errorf("roi %s is outside the %dx%d frame", roi, f.mat.Cols(), f.mat.Rows())
	}
	return f.mat.Region(r), nil
}

// grayRegion возвращает копию области в оттенках серого
func (f *gocvFrame) grayRegion(roi entity.ROI) (gocv.Mat, error) {
	region, err := f.region(roi)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer region.Close()

	gray := gocv.NewMat()
	if region.Channels() > 1 {
		gocv.CvtColor(region, &gray, gocv.ColorBGRToGray)
	} else {
		region.CopyTo(&gray)
	}
	return gray, nil
}

func (f *gocvFrame) Statistics(roi entity.ROI) (entity.RegionStats, error) {
	gray, err := f.grayRegion(roi)
	if err != nil {
		return entity.RegionStats{}, err
	}
	defer gray.Close()

	minVal, maxVal, _, _ := gocv.MinMaxLoc(gray)
	return entity.RegionStats{
		Min:  float64(minVal),
		Max:  float64(maxVal),
		Mean: gray.Mean().Val1,
	}, nil
}

// LabStatistics переводит 8-битный LAB OpenCV (L·255/100, A+128, B+128) в обычные единицы
func (f *gocvFrame) LabStatistics(roi entity.ROI) (entity.LabStats, error) {
	region, err := f.region(roi)
	if err != nil {
		return entity.LabStats{}, err
	}
	defer region.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	if region.Channels() == 1 {
		gocv.CvtColor(region, &bgr, gocv.ColorGrayToBGR)
	} else {
		region.CopyTo(&bgr)
	}

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(bgr, &lab, gocv.ColorBGRToLab)

	mean := lab.Mean()
	return entity.LabStats{
		L: mean.Val1 * 100 / 255,
		A: mean.Val2 - 128,
		B: mean.Val3 - 128,
	}, nil
}

func (f *gocvFrame) Binary(threshold entity.Threshold) error {
	gray := gocv.NewMat()
	if f.mat.Channels() > 1 {
		gocv.CvtColor(f.mat, &gray, gocv.ColorBGRToGray)
	} else {
		f.mat.CopyTo(&gray)
	}
	defer gray.Close()

	mask := gocv.NewMat()
	gocv.InRangeWithScalar(gray, thresholdScalar(threshold.Min), thresholdScalar(threshold.Max), &mask)
	f.mat.Close()
	f.mat = mask
	return nil
}

func (f *gocvFrame) FindBlobs(threshold entity.Threshold, roi entity.ROI, opts entity.BlobOptions) ([]entity.Blob, error) {
	gray, err := f.grayRegion(roi)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(gray, thresholdScalar(threshold.Min), thresholdScalar(threshold.Max), &mask)

	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()

	n := gocv.ConnectedComponentsWithStats(mask, &labels, &stats, &centroids)
	blobs := make([]entity.Blob, 0, n)
	// метка 0: фон
	for i := 1; i < n; i++ {
		blobs = append(blobs, entity.Blob{
			X:      roi.X + int(stats.GetIntAt(i, 0)),
			Y:      roi.Y + int(stats.GetIntAt(i, 1)),
			Width:  int(stats.GetIntAt(i, 2)),
			Height: int(stats.GetIntAt(i, 3)),
			Pixels: int(stats.GetIntAt(i, 4)),
		})
	}
	return entity.FilterBlobs(blobs, opts), nil
}

func (f *gocvFrame) Close() error {
	return f.mat.Close()
}

func thresholdScalar(v uint8) gocv.Scalar {
	return gocv.NewScalar(float64(v), 0, 0, 0)
}

var (
	_ port.Camera = (*GoCVCamera)(nil)
	_ port.Frame  = (*gocvFrame)(nil)
)
