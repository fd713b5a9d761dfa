package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

var replayExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// ReplayCamera отдаёт кадры из каталога файлов по кругу в порядке имён.
// Кадр масштабируется до разрешения текущего режима; остальные настройки сенсора только запоминаются.
type ReplayCamera struct {
	mu         sync.Mutex
	paths      []string
	next       int
	mode       entity.SensorMode
	exposureUs int
}

// NewReplayCamera находит изображения в каталоге dir
func NewReplayCamera(dir string) (*ReplayCamera, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read replay dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !replayExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames found in %s", dir)
	}
	sort.Strings(paths)

	return &ReplayCamera{paths: paths}, nil
}

func (c *ReplayCamera) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = entity.SensorMode{}
	c.exposureUs = 0
	return nil
}

func (c *ReplayCamera) Configure(ctx context.Context, mode entity.SensorMode) error {
	if mode.Size == "" {
		return errors.New("frame size is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.exposureUs = mode.ExposureUs
	return nil
}

func (c *ReplayCamera) SetExposure(ctx context.Context, exposureUs int) error {
	if exposureUs <= 0 {
		return fmt.Errorf("invalid exposure %d us", exposureUs)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode.AutoExposure = false
	c.exposureUs = exposureUs
	return nil
}

// Snapshot декодирует следующий файл
func (c *ReplayCamera) Snapshot(ctx context.Context) (port.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	path := c.paths[c.next%len(c.paths)]
	c.next++
	size := c.mode.Size
	c.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return NewRasterFrame(scaleTo(img, size)), nil
}

// scaleTo приводит кадр к разрешению режима, как это делает драйвер камеры
func scaleTo(img image.Image, size entity.FrameSize) image.Image {
	w, h := size.Dimensions()
	b := img.Bounds()
	if w == 0 || (b.Dx() == w && b.Dy() == h) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Mode возвращает последний применённый режим и выдержку
func (c *ReplayCamera) Mode() (entity.SensorMode, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode, c.exposureUs
}

var _ port.Camera = (*ReplayCamera)(nil)
