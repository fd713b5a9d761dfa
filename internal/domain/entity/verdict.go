package entity

// Verdict итог проверки платы
type Verdict struct {
	Accepted      bool
	ComponentID   int     // первый отбракованный компонент (только при отказе)
	Phase         int     // фаза, в которой произошёл отказ, начиная с 1
	PercentChange float64 // относительное изменение числа пикселей, −0.917 = −91.7%
	Measured      map[int]int
}

// Accept создаёт положительный вердикт
func Accept(measured map[int]int) Verdict {
	return Verdict{Accepted: true, Measured: measured}
}

// Reject создаёт вердикт отказа по компоненту
func Reject(componentID, phase int, percentChange float64, measured map[int]int) Verdict {
	return Verdict{
		ComponentID:   componentID,
		Phase:         phase,
		PercentChange: percentChange,
		Measured:      measured,
	}
}

// Label возвращает ACCEPT или REJECT
func (v Verdict) Label() string {
	if v.Accepted {
		return "ACCEPT"
	}
	return "REJECT"
}

// PercentChange считает относительное отклонение измеренного значения от эталона
func PercentChange(measured, reference int) float64 {
	return float64(measured-reference) / float64(reference)
}
