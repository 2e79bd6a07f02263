package reference

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes a reference document from r.
func LoadYAML(r io.Reader) (*Snapshot, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode reference yaml: %w", err)
	}
	return NewSnapshot(doc)
}

// LoadYAMLFile reads a reference document from path.
func LoadYAMLFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference data: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// Source yields the latest snapshot from shared storage.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Provider holds the current snapshot. Readers always see a complete snapshot;
// Refresh swaps it atomically.
type Provider struct {
	current atomic.Pointer[Snapshot]
	source  Source
	logger  *slog.Logger
}

// NewProvider starts from initial. source may be nil when no shared store is
// configured, in which case Refresh is a no-op.
func NewProvider(initial *Snapshot, source Source, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provider{source: source, logger: logger}
	p.current.Store(initial)
	return p
}

// Snapshot returns the current snapshot.
func (p *Provider) Snapshot() *Snapshot {
	return p.current.Load()
}

// Refresh loads from the source and swaps the snapshot in. A failed load keeps
// the previous snapshot.
func (p *Provider) Refresh(ctx context.Context) error {
	if p.source == nil {
		return nil
	}
	next, err := p.source.Load(ctx)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	prev := p.current.Swap(next)
	if prev == nil || prev.Version() != next.Version() {
		p.logger.InfoContext(ctx, "reference data refreshed",
			"version", next.Version(),
			"list_types", len(next.doc.ListTypes),
			"locations", len(next.doc.Locations),
		)
	}
	return nil
}

// Run refreshes every interval until ctx is cancelled.
func (p *Provider) Run(ctx context.Context, interval time.Duration) {
	if p.source == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				p.logger.WarnContext(ctx, "reference data refresh failed", "error", err)
			}
		}
	}
}
