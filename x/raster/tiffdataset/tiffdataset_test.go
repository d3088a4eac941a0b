package tiffdataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/rastershift/x/rimage"
)

func TestCreateOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.tif")
	size := rimage.Size{Row: 4, Col: 6}
	geo := rimage.GeoReference{
		XOrigin: 10, PixelW: 0.5, RowRot: 0,
		YOrigin: 20, ColRot: 0, PixelH: -0.5,
		Projection:  "EPSG:4326",
		Initialized: true,
	}

	ds, err := Create(path, size, geo)
	require.NoError(t, err)

	img := rimage.New(size)
	for i := range img.Data {
		img.Data[i] = float64(i)
	}
	require.NoError(t, ds.WriteRegion(0, 0, img))
	require.NoError(t, ds.Close())

	opened, err := Open(path)
	require.NoError(t, err)
	defer opened.Close()

	assert.Equal(t, size, opened.Size())

	got, err := opened.ReadRegion(0, 0, size)
	require.NoError(t, err)
	assert.Equal(t, img.Data, got.Data)

	gotGeo := opened.GeoReference()
	assert.InDelta(t, geo.XOrigin, gotGeo.XOrigin, 1e-9)
	assert.InDelta(t, geo.PixelW, gotGeo.PixelW, 1e-9)
	assert.InDelta(t, geo.YOrigin, gotGeo.YOrigin, 1e-9)
	assert.InDelta(t, geo.PixelH, gotGeo.PixelH, 1e-9)
	assert.Equal(t, geo.Projection, gotGeo.Projection)
}

func TestReadRegion_OutOfBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oob.tif")
	ds, err := Create(path, rimage.Size{Row: 4, Col: 4}, rimage.GeoReference{})
	require.NoError(t, err)
	defer ds.Close()

	_, err = ds.ReadRegion(2, 2, rimage.Size{Row: 4, Col: 4})
	assert.Error(t, err)
}

func TestWriteRegion_Subregion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub.tif")
	ds, err := Create(path, rimage.Size{Row: 6, Col: 6}, rimage.GeoReference{})
	require.NoError(t, err)
	defer ds.Close()

	patch := rimage.New(rimage.Size{Row: 2, Col: 2})
	patch.Set(0, 0, 1)
	patch.Set(0, 1, 2)
	patch.Set(1, 0, 3)
	patch.Set(1, 1, 4)
	require.NoError(t, ds.WriteRegion(2, 2, patch))

	got, err := ds.ReadRegion(2, 2, rimage.Size{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.Equal(t, patch.Data, got.Data)

	corner, err := ds.ReadRegion(0, 0, rimage.Size{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, corner.Get(0, 0))
}
