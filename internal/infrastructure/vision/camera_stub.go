//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// GoCVCamera заглушка камеры для сборки без OpenCV
type GoCVCamera struct{}

// NewGoCVCamera возвращает ошибку, если сборка без тега gocv.
func NewGoCVCamera(device int) (*GoCVCamera, error) {
	_ = device
	return nil, errNoGoCV
}

func (c *GoCVCamera) Reset(ctx context.Context) error {
	return errNoGoCV
}

func (c *GoCVCamera) Configure(ctx context.Context, mode entity.SensorMode) error {
	return errNoGoCV
}

func (c *GoCVCamera) SetExposure(ctx context.Context, exposureUs int) error {
	return errNoGoCV
}

func (c *GoCVCamera) Snapshot(ctx context.Context) (port.Frame, error) {
	return nil, errNoGoCV
}

func (c *GoCVCamera) Close() error {
	return nil
}

var _ port.Camera = (*GoCVCamera)(nil)
