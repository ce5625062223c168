package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robzale/sentcollect/collector/definitions"
)

type fakeDevice struct {
	screenshots int
	swipes      int
	failAfter   int // screenshot calls succeed until this many, 0 = never fail
}

func (f *fakeDevice) Screenshot(ctx context.Context, destPath string) error {
	if f.failAfter > 0 && f.screenshots >= f.failAfter {
		return errors.New("screencap failed")
	}
	f.screenshots++
	return os.WriteFile(destPath, []byte("png"), 0o644)
}

func (f *fakeDevice) Swipe(ctx context.Context, x1, y1, x2, y2, durationMs int) error {
	f.swipes++
	return nil
}

func TestCaptureProducesOrderedArtifacts(t *testing.T) {
	dir := t.TempDir()
	device := &fakeDevice{}
	loop := &Loop{Device: device, OutputDir: dir, MinCaptures: 10}

	set, err := loop.Run(context.Background(), 50)
	require.NoError(t, err)
	require.Equal(t, 51, set.Len())
	require.Equal(t, 50, device.swipes)

	// Strictly increasing zero-padded indices, no duplicates.
	for i, path := range set.Paths {
		require.Equal(t, fmt.Sprintf("screen_%02d.png", i), filepath.Base(path))
		_, statErr := os.Stat(path)
		require.NoError(t, statErr)
	}
}

func TestCaptureTooFewArtifactsFails(t *testing.T) {
	dir := t.TempDir()
	device := &fakeDevice{failAfter: 8}
	loop := &Loop{Device: device, OutputDir: dir, MinCaptures: 10}

	set, err := loop.Run(context.Background(), 50)
	require.ErrorIs(t, err, definitions.ErrTooFewCaptures)
	require.Equal(t, 8, set.Len())
}

func TestCaptureClearsStaleArtifacts(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "screen_99.png")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	device := &fakeDevice{}
	loop := &Loop{Device: device, OutputDir: dir, MinCaptures: 1}

	_, err := loop.Run(context.Background(), 2)
	require.NoError(t, err)

	_, statErr := os.Stat(stale)
	require.True(t, os.IsNotExist(statErr), "stale artifact should be removed")
}
