package entity

import (
	"fmt"
	"image"
)

// ROI прямоугольная область интереса в координатах кадра
type ROI struct {
	X int // координата X левого верхнего угла
	Y int // координата Y левого верхнего угла
	W int // ширина области в пикселях
	H int // высота области в пикселях
}

// Rect переводит область в image.Rectangle
func (r ROI) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Within проверяет, что область непустая и целиком лежит внутри кадра
func (r ROI) Within(size FrameSize) bool {
	if r.W <= 0 || r.H <= 0 || r.X < 0 || r.Y < 0 {
		return false
	}
	w, h := size.Dimensions()
	return r.X+r.W <= w && r.Y+r.H <= h
}

func (r ROI) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.X, r.Y, r.W, r.H)
}

// ComponentROI область одного компонента платы
type ComponentROI struct {
	ID  int
	ROI ROI
}

// Threshold включительный диапазон яркости [Min, Max]
type Threshold struct {
	Min uint8
	Max uint8
}

// Contains проверяет попадание значения в диапазон
func (t Threshold) Contains(v uint8) bool {
	return v >= t.Min && v <= t.Max
}
