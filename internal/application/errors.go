package app

import (
	"errors"
	"fmt"
)

var (
	// ErrHardwareFault признак аппаратной ошибки камеры; цикл прерывается, станция возвращается к ожиданию
	ErrHardwareFault = errors.New("hardware fault")
	// ErrExposureNotFound повторный подбор выдержки тоже не дал результата
	ErrExposureNotFound = errors.New("exposure search exhausted")
	// ErrUnknownColor цвет отсутствует в каталоге
	ErrUnknownColor = errors.New("unknown board color")
	// ErrMissingReference для компонента нет положительного эталона
	ErrMissingReference = errors.New("missing reference count")
)

// HardwareError ошибка обращения к камере
type HardwareError struct {
	Op  string
	Err error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("hardware fault during %s: %v", e.Op, e.Err)
}

func (e *HardwareError) Unwrap() error {
	return e.Err
}

// Is позволяет проверять errors.Is(err, ErrHardwareFault)
func (e *HardwareError) Is(target error) bool {
	return target == ErrHardwareFault
}

func hardware(op string, err error) error {
	if err == nil {
		return nil
	}
	return &HardwareError{Op: op, Err: err}
}
