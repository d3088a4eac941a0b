package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/rastershift/x/config"
	"github.com/itohio/rastershift/x/raster/tiffdataset"
	"github.com/itohio/rastershift/x/rimage"
)

func TestProcess_ZeroShiftRoundTrip(t *testing.T) {
	inputPath := filepath.Join(t.TempDir(), "in.tif")
	outputPath := filepath.Join(t.TempDir(), "out.tif")

	size := rimage.Size{Row: 8, Col: 8}
	in, err := tiffdataset.Create(inputPath, size, rimage.GeoReference{})
	require.NoError(t, err)
	img := rimage.New(size)
	for i := range img.Data {
		img.Data[i] = float64(i)
	}
	require.NoError(t, in.WriteRegion(0, 0, img))
	require.NoError(t, in.Close())

	cfg := config.Default()
	cfg.BlockSize = 4
	cfg.ParallelWorkers = 1
	cfg.Decomposition = config.Regular

	require.NoError(t, process(inputPath, outputPath, 0, 0, cfg))

	out, err := tiffdataset.Open(outputPath)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, size, out.Size())
	got, err := out.ReadRegion(0, 0, size)
	require.NoError(t, err)
	assert.Equal(t, img.Data, got.Data)
}

func TestProcess_InvalidInputPath(t *testing.T) {
	cfg := config.Default()
	err := process(filepath.Join(t.TempDir(), "missing.tif"), filepath.Join(t.TempDir(), "out.tif"), 0, 0, cfg)
	assert.Error(t, err)
}
