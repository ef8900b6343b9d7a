package medialib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Pending is the outcome of one Fetch. It settles exactly once.
type Pending struct {
	done chan struct{}
	once sync.Once
	info AssetInfo
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// settle records the outcome. Later calls are ignored.
func (p *Pending) settle(info AssetInfo, err error) {
	p.once.Do(func() {
		p.info = info
		p.err = err
		close(p.done)
	})
}

// Done is closed once the outcome is known.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the fetch settles or ctx is done. A cancelled ctx only
// stops the wait; the fetch itself still settles.
func (p *Pending) Wait(ctx context.Context) (AssetInfo, error) {
	select {
	case <-p.done:
		return p.info, p.err
	case <-ctx.Done():
		return AssetInfo{}, ctx.Err()
	}
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithFullInfo requests LocalURI, Location and Exif with every fetch.
func WithFullInfo(full bool) Option {
	return func(f *Fetcher) {
		f.full = full
	}
}

// WithTimeout bounds each query. Zero means no limit beyond the caller's ctx.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// Fetcher runs asset queries on background goroutines.
type Fetcher struct {
	store   Store
	logger  *slog.Logger
	full    bool
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewFetcher returns a Fetcher backed by store.
func NewFetcher(store Store, opts ...Option) *Fetcher {
	if store == nil {
		panic("medialib: store is required")
	}
	f := &Fetcher{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch starts a lookup of assetID and returns immediately. The query runs on
// its own goroutine under ctx; a store failure settles the Pending with the
// error (ErrNotFound for a miss) and is not retried.
func (f *Fetcher) Fetch(ctx context.Context, assetID string) *Pending {
	p := newPending()
	id := strings.TrimSpace(assetID)
	if id == "" {
		p.settle(AssetInfo{}, ErrInvalidAssetID)
		return p
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		info, err := f.query(ctx, id)
		if err != nil {
			f.logger.Debug("asset query failed", "asset_id", id, "err", err)
		} else {
			f.logger.Debug("asset query settled", "asset_id", id, "media_type", info.MediaType)
		}
		p.settle(info, err)
	}()
	return p
}

// Get is Fetch followed by Wait.
func (f *Fetcher) Get(ctx context.Context, assetID string) (AssetInfo, error) {
	return f.Fetch(ctx, assetID).Wait(ctx)
}

func (f *Fetcher) query(ctx context.Context, id string) (info AssetInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("medialib: query asset %q: panic: %v", id, r)
		}
	}()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	info, err = f.store.QueryAssetInfo(ctx, id, f.full)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AssetInfo{}, ErrNotFound
		}
		return AssetInfo{}, fmt.Errorf("medialib: query asset %q: %w", id, err)
	}
	return info, nil
}

// Close waits for every in-flight fetch to settle.
func (f *Fetcher) Close() {
	f.wg.Wait()
}
