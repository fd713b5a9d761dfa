package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"qc-station/internal/domain/entity"
)

func grayImage(w, h int, fill uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	return img
}

func TestRasterFrame_Statistics(t *testing.T) {
	img := grayImage(10, 10, 100)
	img.SetGray(2, 2, color.Gray{Y: 10})
	img.SetGray(3, 2, color.Gray{Y: 250})

	stats, err := NewRasterFrame(img).Statistics(entity.ROI{X: 2, Y: 2, W: 2, H: 2})
	require.NoError(t, err)
	require.Equal(t, 10.0, stats.Min)
	require.Equal(t, 250.0, stats.Max)
	require.InDelta(t, (10+250+100+100)/4.0, stats.Mean, 1e-9)
}

func TestRasterFrame_RegionOutsideFrame(t *testing.T) {
	f := NewRasterFrame(grayImage(10, 10, 0))

	_, err := f.Statistics(entity.ROI{X: 5, Y: 5, W: 10, H: 1})
	require.Error(t, err)

	_, err = f.FindBlobs(entity.Threshold{Min: 0, Max: 25}, entity.ROI{W: 0, H: 1}, entity.BlobOptions{})
	require.Error(t, err)
}

func TestRasterFrame_LabStatistics(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	lab, err := NewRasterFrame(img).LabStatistics(entity.ROI{X: 0, Y: 0, W: 4, H: 4})
	require.NoError(t, err)
	require.InDelta(t, 100, lab.L, 0.5)
	require.InDelta(t, 0, lab.A, 0.5)
	require.InDelta(t, 0, lab.B, 0.5)
}

func TestRasterFrame_BinaryDropsColor(t *testing.T) {
	img := grayImage(4, 1, 0)
	img.Pix = []uint8{5, 100, 200, 255}
	f := NewRasterFrame(img)

	require.NoError(t, f.Binary(entity.Threshold{Min: 100, Max: 200}))
	require.Equal(t, []uint8{0, 255, 255, 0}, f.gray.Pix)

	_, err := f.LabStatistics(entity.ROI{W: 1, H: 1})
	require.Error(t, err)
}

func TestRasterFrame_FindBlobs(t *testing.T) {
	img := grayImage(20, 20, 255)
	// квадрат 3x3 и диагональный отрезок из 3 пикселей
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			img.SetGray(x, y, color.Gray{})
		}
	}
	for i := 0; i < 3; i++ {
		img.SetGray(10+i, 10+i, color.Gray{})
	}
	img.SetGray(18, 1, color.Gray{})

	black := entity.Threshold{Min: 0, Max: 25}
	blobs, err := NewRasterFrame(img).FindBlobs(black, entity.ROI{X: 0, Y: 0, W: 16, H: 16}, entity.BlobOptions{PixelsThreshold: 1, AreaThreshold: 1})
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	require.Equal(t, entity.Blob{X: 2, Y: 2, Width: 3, Height: 3, Pixels: 9}, blobs[0])
	require.Equal(t, entity.Blob{X: 10, Y: 10, Width: 3, Height: 3, Pixels: 3}, blobs[1])
	require.Equal(t, 12, entity.SumPixels(blobs))
}

func TestRasterFrame_FindBlobsRespectsOffsetROI(t *testing.T) {
	img := grayImage(10, 10, 255)
	img.SetGray(5, 5, color.Gray{})
	img.SetGray(1, 1, color.Gray{})

	blobs, err := NewRasterFrame(img).FindBlobs(entity.Threshold{Min: 0, Max: 25}, entity.ROI{X: 4, Y: 4, W: 3, H: 3}, entity.BlobOptions{PixelsThreshold: 1, AreaThreshold: 1})
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	require.Equal(t, 5, blobs[0].X)
	require.Equal(t, 5, blobs[0].Y)
}

func TestNewRasterFrame_SubImageOrigin(t *testing.T) {
	img := grayImage(10, 10, 200)
	img.SetGray(5, 5, color.Gray{Y: 7})
	sub := img.SubImage(image.Rect(5, 5, 8, 8))

	stats, err := NewRasterFrame(sub).Statistics(entity.ROI{X: 0, Y: 0, W: 1, H: 1})
	require.NoError(t, err)
	require.Equal(t, 7.0, stats.Min)
}
