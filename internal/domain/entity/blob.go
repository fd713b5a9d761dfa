package entity

import "image"

// Blob связная область пикселей, попавших в порог
type Blob struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина ограничивающего прямоугольника
	Height int // высота ограничивающего прямоугольника
	Pixels int // количество пикселей области
}

// BlobOptions параметры поиска областей
type BlobOptions struct {
	PixelsThreshold int  // минимальное число пикселей
	AreaThreshold   int  // минимальная площадь ограничивающего прямоугольника
	Merge           bool // объединять пересекающиеся области
}

// Rect возвращает ограничивающий прямоугольник
func (b Blob) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// FilterBlobs отбрасывает области меньше порогов и при необходимости объединяет остальные.
func FilterBlobs(blobs []Blob, opts BlobOptions) []Blob {
	kept := make([]Blob, 0, len(blobs))
	for _, b := range blobs {
		if b.Pixels < opts.PixelsThreshold || b.Width*b.Height < opts.AreaThreshold {
			continue
		}
		kept = append(kept, b)
	}
	if opts.Merge {
		kept = MergeBlobs(kept)
	}
	return kept
}

// MergeBlobs объединяет области с пересекающимися прямоугольниками.
// Сумма пикселей при объединении сохраняется.
func MergeBlobs(blobs []Blob) []Blob {
	merged := append([]Blob(nil), blobs...)
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(merged) && !changed; i++ {
			for j := i + 1; j < len(merged); j++ {
				if !merged[i].Rect().Overlaps(merged[j].Rect()) {
					continue
				}
				u := merged[i].Rect().Union(merged[j].Rect())
				merged[i] = Blob{
					X:      u.Min.X,
					Y:      u.Min.Y,
					Width:  u.Dx(),
					Height: u.Dy(),
					Pixels: merged[i].Pixels + merged[j].Pixels,
				}
				merged = append(merged[:j], merged[j+1:]...)
				changed = true
				break
			}
		}
	}
	return merged
}

// SumPixels возвращает суммарное число пикселей
func SumPixels(blobs []Blob) int {
	total := 0
	for _, b := range blobs {
		total += b.Pixels
	}
	return total
}
