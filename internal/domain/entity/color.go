package entity

import "fmt"

// BoardColor цветовой вариант платы
type BoardColor string

const (
	ColorYellow BoardColor = "yellow"
	ColorBlue   BoardColor = "blue"
	ColorRed    BoardColor = "red"
	ColorGray   BoardColor = "gray"
)

// RGB тройка каналов в диапазоне 0–255
type RGB struct {
	R float64
	G float64
	B float64
}

// Channels возвращает каналы в порядке R, G, B
func (c RGB) Channels() [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%.0f, %.0f, %.0f)", c.R, c.G, c.B)
}

// ColorProfile эталонный цвет варианта платы.
// Профили хранятся упорядоченным списком: порядок списка задаёт порядок сравнения.
type ColorProfile struct {
	Color     BoardColor
	Reference RGB
}

// ExposureRange границы поиска выдержки в микросекундах
type ExposureRange struct {
	MinUs int
	MaxUs int
}

// Midpoint возвращает середину диапазона
func (r ExposureRange) Midpoint() int {
	return (r.MinUs + r.MaxUs) / 2
}

// Valid проверяет, что диапазон положительный и непустой
func (r ExposureRange) Valid() bool {
	return r.MinUs > 0 && r.MinUs < r.MaxUs
}
