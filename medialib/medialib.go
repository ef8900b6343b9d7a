// Package medialib looks up media asset metadata off the caller's goroutine.
//
// A [Fetcher] runs one store query per [Fetcher.Fetch] call and settles the
// returned [Pending] exactly once, with either an [AssetInfo] or an error.
// There is no retry and no partial result.
package medialib

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no asset has the requested id.
	ErrNotFound = errors.New("medialib: asset not found")
	// ErrInvalidAssetID is returned for an empty asset id.
	ErrInvalidAssetID = errors.New("medialib: asset id is required")
)

// MediaType classifies an asset.
type MediaType string

const (
	MediaTypePhoto   MediaType = "photo"
	MediaTypeVideo   MediaType = "video"
	MediaTypeAudio   MediaType = "audio"
	MediaTypeUnknown MediaType = "unknown"
)

// Normalize maps anything other than photo, video or audio to
// MediaTypeUnknown.
func (t MediaType) Normalize() MediaType {
	switch t {
	case MediaTypePhoto, MediaTypeVideo, MediaTypeAudio:
		return t
	default:
		return MediaTypeUnknown
	}
}

// Location is where an asset was captured.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AssetInfo is the metadata record for one asset. LocalURI, Location and
// Exif are only filled for full-info queries.
type AssetInfo struct {
	ID               string         `json:"id"`
	Filename         string         `json:"filename"`
	URI              string         `json:"uri"`
	MediaType        MediaType      `json:"mediaType"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	CreationTime     time.Time      `json:"creationTime"`
	ModificationTime time.Time      `json:"modificationTime"`
	Duration         time.Duration  `json:"duration"`
	AlbumID          string         `json:"albumId,omitempty"`
	LocalURI         string         `json:"localUri,omitempty"`
	Location         *Location      `json:"location,omitempty"`
	Exif             map[string]any `json:"exif,omitempty"`
}

// Store is the data source a Fetcher queries. QueryAssetInfo returns
// ErrNotFound (possibly wrapped) when the id is unknown.
type Store interface {
	QueryAssetInfo(ctx context.Context, assetID string, full bool) (AssetInfo, error)
}
