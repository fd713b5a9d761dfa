package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// RasterFrame кадр в памяти без OpenCV: яркость в *image.Gray плюс исходный цвет для LAB.
type RasterFrame struct {
	gray  *image.Gray
	color image.Image // nil после бинаризации
}

// NewRasterFrame оборачивает изображение в кадр
func NewRasterFrame(img image.Image) *RasterFrame {
	gray, ok := img.(*image.Gray)
	if !ok || gray.Bounds().Min != (image.Point{}) {
		b := img.Bounds()
		gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				gray.Set(x, y, color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)))
			}
		}
	}
	return &RasterFrame{gray: gray, color: img}
}

func (f *RasterFrame) region(roi entity.ROI) (image.Rectangle, error) {
	r := roi.Rect()
	if r.Empty() || !r.In(f.gray.Bounds()) {
		return image.Rectangle{}, fmt.Errorf("roi %s is outside the %dx%d frame", roi, f.gray.Bounds().Dx(), f.gray.Bounds().Dy())
	}
	return r, nil
}

// Statistics возвращает min/max/mean яркости области
func (f *RasterFrame) Statistics(roi entity.ROI) (entity.RegionStats, error) {
	r, err := f.region(roi)
	if err != nil {
		return entity.RegionStats{}, err
	}

	values := make([]float64, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			values = append(values, float64(f.gray.GrayAt(x, y).Y))
		}
	}
	return entity.RegionStats{
		Min:  floats.Min(values),
		Max:  floats.Max(values),
		Mean: stat.Mean(values, nil),
	}, nil
}

// LabStatistics возвращает средние LAB области
func (f *RasterFrame) LabStatistics(roi entity.ROI) (entity.LabStats, error) {
	r, err := f.region(roi)
	if err != nil {
		return entity.LabStats{}, err
	}
	if f.color == nil {
		return entity.LabStats{}, errors.New("frame has no color data")
	}

	origin := f.color.Bounds().Min
	n := r.Dx() * r.Dy()
	ls := make([]float64, 0, n)
	as := make([]float64, 0, n)
	bs := make([]float64, 0, n)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c, _ := colorful.MakeColor(f.color.At(origin.X+x, origin.Y+y))
			l, a, b := c.Lab()
			ls = append(ls, l)
			as = append(as, a)
			bs = append(bs, b)
		}
	}
	return entity.LabStats{
		L: stat.Mean(ls, nil) * 100,
		A: stat.Mean(as, nil) * 100,
		B: stat.Mean(bs, nil) * 100,
	}, nil
}

// Binary бинаризует кадр на месте
func (f *RasterFrame) Binary(threshold entity.Threshold) error {
	for i, v := range f.gray.Pix {
		if threshold.Contains(v) {
			f.gray.Pix[i] = 255
		} else {
			f.gray.Pix[i] = 0
		}
	}
	f.color = nil
	return nil
}

// FindBlobs ищет 8-связные области внутри roi
func (f *RasterFrame) FindBlobs(threshold entity.Threshold, roi entity.ROI, opts entity.BlobOptions) ([]entity.Blob, error) {
	r, err := f.region(roi)
	if err != nil {
		return nil, err
	}

	w, h := r.Dx(), r.Dy()
	visited := make([]bool, w*h)
	inside := func(x, y int) bool {
		return threshold.Contains(f.gray.GrayAt(r.Min.X+x, r.Min.Y+y).Y)
	}

	var blobs []entity.Blob
	stack := make([]image.Point, 0, 64)
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if visited[sy*w+sx] || !inside(sx, sy) {
				continue
			}

			visited[sy*w+sx] = true
			stack = append(stack[:0], image.Pt(sx, sy))
			bounds := image.Rect(sx, sy, sx+1, sy+1)
			pixels := 0
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				pixels++
				bounds = bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h || visited[ny*w+nx] || !inside(nx, ny) {
							continue
						}
						visited[ny*w+nx] = true
						stack = append(stack, image.Pt(nx, ny))
					}
				}
			}

			blobs = append(blobs, entity.Blob{
				X:      r.Min.X + bounds.Min.X,
				Y:      r.Min.Y + bounds.Min.Y,
				Width:  bounds.Dx(),
				Height: bounds.Dy(),
				Pixels: pixels,
			})
		}
	}
	return entity.FilterBlobs(blobs, opts), nil
}

// Close ничего не освобождает: кадр живёт в памяти Go
func (f *RasterFrame) Close() error {
	return nil
}

var _ port.Frame = (*RasterFrame)(nil)
