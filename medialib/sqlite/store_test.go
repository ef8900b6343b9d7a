package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/phanxgames/touchtree/medialib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "assets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleAsset() medialib.AssetInfo {
	created := time.Date(2024, 7, 1, 12, 30, 0, 0, time.UTC)
	return medialib.AssetInfo{
		ID:               "a1",
		Filename:         "beach.mp4",
		URI:              "ph://a1",
		MediaType:        medialib.MediaTypeVideo,
		Width:            1920,
		Height:           1080,
		CreationTime:     created,
		ModificationTime: created.Add(time.Hour),
		Duration:         12500 * time.Millisecond,
		AlbumID:          "summer",
		LocalURI:         "file:///media/beach.mp4",
		Location:         &medialib.Location{Latitude: 36.5, Longitude: -121.9},
		Exif:             map[string]any{"Make": "Pixel", "ISO": float64(100)},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestOpenAppliesMigrationsTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.db")
	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestPutAndQueryFull(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	want := sampleAsset()

	require.NoError(t, store.PutAsset(ctx, want))

	got, err := store.QueryAssetInfo(ctx, "a1", true)
	require.NoError(t, err)
	assert.Equal(t, want.Filename, got.Filename)
	assert.Equal(t, want.MediaType, got.MediaType)
	assert.Equal(t, want.Width, got.Width)
	assert.True(t, want.CreationTime.Equal(got.CreationTime))
	assert.True(t, want.ModificationTime.Equal(got.ModificationTime))
	assert.Equal(t, want.Duration, got.Duration)
	assert.Equal(t, want.AlbumID, got.AlbumID)
	assert.Equal(t, want.LocalURI, got.LocalURI)
	require.NotNil(t, got.Location)
	assert.Equal(t, *want.Location, *got.Location)
	assert.Equal(t, want.Exif, got.Exif)
}

func TestQueryBasicOmitsFullFields(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.PutAsset(ctx, sampleAsset()))

	got, err := store.QueryAssetInfo(ctx, "a1", false)
	require.NoError(t, err)
	assert.Equal(t, "beach.mp4", got.Filename)
	assert.Empty(t, got.LocalURI)
	assert.Nil(t, got.Location)
	assert.Nil(t, got.Exif)
}

func TestQueryNotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.QueryAssetInfo(context.Background(), "nope", false)
	assert.ErrorIs(t, err, medialib.ErrNotFound)
}

func TestPutAssetReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	info := sampleAsset()
	require.NoError(t, store.PutAsset(ctx, info))

	info.Filename = "renamed.mp4"
	info.Location = nil
	require.NoError(t, store.PutAsset(ctx, info))

	got, err := store.QueryAssetInfo(ctx, "a1", true)
	require.NoError(t, err)
	assert.Equal(t, "renamed.mp4", got.Filename)
	assert.Nil(t, got.Location)
}

func TestPutAssetDefaultsAndValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.PutAsset(ctx, medialib.AssetInfo{ID: " "}), medialib.ErrInvalidAssetID)

	require.NoError(t, store.PutAsset(ctx, medialib.AssetInfo{ID: "bare", Filename: "x", URI: "y"}))
	got, err := store.QueryAssetInfo(ctx, "bare", true)
	require.NoError(t, err)
	assert.Equal(t, medialib.MediaTypeUnknown, got.MediaType)
	assert.True(t, got.CreationTime.IsZero())
	assert.Nil(t, got.Exif)
}

func TestPutAssetNormalizesMediaType(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		id   string
		in   medialib.MediaType
		want medialib.MediaType
	}{
		{"photo", medialib.MediaTypePhoto, medialib.MediaTypePhoto},
		{"audio", medialib.MediaTypeAudio, medialib.MediaTypeAudio},
		{"hologram", "hologram", medialib.MediaTypeUnknown},
		{"upper", "PHOTO", medialib.MediaTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			require.NoError(t, store.PutAsset(ctx, medialib.AssetInfo{ID: tt.id, Filename: "f", URI: "u", MediaType: tt.in}))
			got, err := store.QueryAssetInfo(ctx, tt.id, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.MediaType)
		})
	}
}

func TestCancelledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.PutAsset(ctx, sampleAsset()), context.Canceled)
	_, err := store.QueryAssetInfo(ctx, "a1", false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcherOverStore(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.PutAsset(context.Background(), sampleAsset()))

	f := medialib.NewFetcher(store, medialib.WithFullInfo(true))
	defer f.Close()

	info, err := f.Get(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "summer", info.AlbumID)

	_, err = f.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, medialib.ErrNotFound)
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close())
}
