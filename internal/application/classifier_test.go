package app

import (
	"context"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"

	"qc-station/config"
	"qc-station/internal/domain/entity"
)

// labOf переводит RGB 0–255 в статистику LAB, как её отдаёт кадр
func labOf(rgb entity.RGB) entity.LabStats {
	l, a, b := colorful.Color{R: rgb.R / 255, G: rgb.G / 255, B: rgb.B / 255}.Lab()
	return entity.LabStats{L: l * 100, A: a * 100, B: b * 100}
}

func newClassifier(catalog entity.Catalog, lab entity.LabStats) (*ColorClassifier, *fakeCamera, *fakeSleeper) {
	cam := &fakeCamera{next: func(n, exposure int) *fakeFrame { return &fakeFrame{lab: lab} }}
	sleeper := &fakeSleeper{}
	return NewColorClassifier(NewSensor(cam, sleeper, catalog), NewProbe(cam), catalog), cam, sleeper
}

func TestColorClassifier_MatchesEveryProfile(t *testing.T) {
	catalog := config.DefaultCatalog()
	for _, profile := range catalog.Profiles {
		t.Run(string(profile.Color), func(t *testing.T) {
			classifier, _, _ := newClassifier(catalog, labOf(profile.Reference))

			result, err := classifier.Classify(context.Background())
			require.NoError(t, err)
			require.Equal(t, profile.Color, result.Color)
			require.False(t, result.Fallback)
		})
	}
}

func TestColorClassifier_FallbackWhenNothingMatches(t *testing.T) {
	catalog := config.DefaultCatalog()
	classifier, _, _ := newClassifier(catalog, labOf(entity.RGB{R: 0, G: 0, B: 0}))

	result, err := classifier.Classify(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.ColorGray, result.Color)
	require.True(t, result.Fallback)
}

func TestColorClassifier_RestoresInspectionMode(t *testing.T) {
	catalog := config.DefaultCatalog()
	classifier, cam, sleeper := newClassifier(catalog, labOf(entity.RGB{R: 110, G: 255, B: 255}))

	_, err := classifier.Classify(context.Background())
	require.NoError(t, err)

	require.Len(t, cam.modes, 2)
	require.Equal(t, catalog.ColorMode(), cam.modes[0])
	require.Equal(t, 40000, cam.modes[0].ExposureUs)
	require.Equal(t, entity.FrameSizeQVGA, cam.modes[0].Size)
	require.Equal(t, catalog.InspectionMode(), cam.lastMode())
	require.Equal(t, 2, cam.resets)
	require.Equal(t, catalog.Tuning.ColorSettle, sleeper.sleeps[0])
	require.True(t, cam.frames[0].closed)
}

func TestColorClassifier_HardwareFault(t *testing.T) {
	catalog := config.DefaultCatalog()
	classifier, cam, _ := newClassifier(catalog, entity.LabStats{})
	cam.snapshotErr = errCameraUnplugged

	_, err := classifier.Classify(context.Background())
	require.ErrorIs(t, err, ErrHardwareFault)
	require.ErrorIs(t, err, errCameraUnplugged)
}

func TestMatchColor_FirstFullMatchWins(t *testing.T) {
	profiles := []entity.ColorProfile{
		{Color: "first", Reference: entity.RGB{R: 100, G: 100, B: 100}},
		{Color: "second", Reference: entity.RGB{R: 110, G: 110, B: 110}},
	}

	result := MatchColor(profiles, entity.RGB{R: 105, G: 105, B: 105}, 40, "fallback")
	require.Equal(t, entity.BoardColor("first"), result.Color)
}

func TestMatchColor_ToleranceIsStrict(t *testing.T) {
	profiles := []entity.ColorProfile{{Color: "only", Reference: entity.RGB{R: 100, G: 100, B: 100}}}

	require.False(t, MatchColor(profiles, entity.RGB{R: 139, G: 100, B: 100}, 40, "fallback").Fallback)
	require.True(t, MatchColor(profiles, entity.RGB{R: 140, G: 100, B: 100}, 40, "fallback").Fallback)
}

func TestLabToRGB_RoundTrip(t *testing.T) {
	rgb := entity.RGB{R: 247, G: 255, B: 123}
	require.Equal(t, rgb, LabToRGB(labOf(rgb)))
}
