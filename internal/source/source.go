// Package source lists and reads the markdown documents a site is built from.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SayaAndy/lightbox-docs/config"
)

// ErrNotFound is returned by Read when no document has the requested name.
var ErrNotFound = errors.New("document not found")

// Document names a markdown file relative to the source root, without the ".md" extension.
type Document struct {
	Name    string
	ModTime time.Time
}

type Source interface {
	List(ctx context.Context) ([]Document, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

func New(ctx context.Context, cfg *config.SourceConfig) (Source, error) {
	switch cfg.Type {
	case "local":
		return NewLocalSource(cfg.Local.Dir), nil
	case "b2":
		return NewB2Source(ctx, cfg.B2)
	}
	return nil, fmt.Errorf("unsupported source type %q", cfg.Type)
}
