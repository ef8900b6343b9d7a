// Package sqlite provides a SQLite-backed medialib.Store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/phanxgames/touchtree/medialib"
	"github.com/phanxgames/touchtree/medialib/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists asset metadata in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite asset store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// applyMigrations executes every embedded .sql file in name order. The
// statements are idempotent, so reapplying on open is safe.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	for _, file := range files {
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := sqlDB.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutAsset inserts or replaces one asset record.
func (s *Store) PutAsset(ctx context.Context, info medialib.AssetInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(info.ID)
	if id == "" {
		return medialib.ErrInvalidAssetID
	}
	mediaType := info.MediaType.Normalize()

	var exif string
	if len(info.Exif) > 0 {
		data, err := json.Marshal(info.Exif)
		if err != nil {
			return fmt.Errorf("encode exif: %w", err)
		}
		exif = string(data)
	}
	var lat, lng sql.NullFloat64
	if info.Location != nil {
		lat = sql.NullFloat64{Float64: info.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: info.Location.Longitude, Valid: true}
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO assets (
		   id, filename, uri, media_type, width, height,
		   creation_time, modification_time, duration_ms, album_id,
		   local_uri, latitude, longitude, exif
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		info.Filename,
		info.URI,
		string(mediaType),
		info.Width,
		info.Height,
		toMillis(info.CreationTime),
		toMillis(info.ModificationTime),
		info.Duration.Milliseconds(),
		info.AlbumID,
		info.LocalURI,
		lat,
		lng,
		exif,
	)
	if err != nil {
		return fmt.Errorf("put asset: %w", err)
	}
	return nil
}

// QueryAssetInfo returns the asset with the given id. Full adds the local
// uri, location and exif data.
func (s *Store) QueryAssetInfo(ctx context.Context, assetID string, full bool) (medialib.AssetInfo, error) {
	if err := ctx.Err(); err != nil {
		return medialib.AssetInfo{}, err
	}
	if s == nil || s.sqlDB == nil {
		return medialib.AssetInfo{}, fmt.Errorf("storage is not configured")
	}

	var (
		info             medialib.AssetInfo
		mediaType        string
		creation, modify int64
		durationMS       int64
		localURI         string
		lat, lng         sql.NullFloat64
		exif             string
	)
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, filename, uri, media_type, width, height,
		        creation_time, modification_time, duration_ms, album_id,
		        local_uri, latitude, longitude, exif
		   FROM assets
		  WHERE id = ?`,
		assetID,
	)
	err := row.Scan(
		&info.ID, &info.Filename, &info.URI, &mediaType, &info.Width, &info.Height,
		&creation, &modify, &durationMS, &info.AlbumID,
		&localURI, &lat, &lng, &exif,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medialib.AssetInfo{}, medialib.ErrNotFound
		}
		return medialib.AssetInfo{}, fmt.Errorf("query asset: %w", err)
	}
	info.MediaType = medialib.MediaType(mediaType).Normalize()
	info.CreationTime = fromMillis(creation)
	info.ModificationTime = fromMillis(modify)
	info.Duration = time.Duration(durationMS) * time.Millisecond

	if !full {
		return info, nil
	}
	info.LocalURI = localURI
	if lat.Valid && lng.Valid {
		info.Location = &medialib.Location{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	if exif != "" {
		if err := json.Unmarshal([]byte(exif), &info.Exif); err != nil {
			return medialib.AssetInfo{}, fmt.Errorf("decode exif: %w", err)
		}
	}
	return info, nil
}
