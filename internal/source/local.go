package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

type LocalSource struct {
	fsys fs.FS
}

func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{fsys: os.DirFS(dir)}
}

func (s *LocalSource) List(ctx context.Context) ([]Document, error) {
	docs := []Document{}

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}

		docs = append(docs, Document{
			Name:    strings.TrimSuffix(p, ".md"),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk local source: %w", err)
	}

	slices.SortFunc(docs, func(a, b Document) int {
		return strings.Compare(a.Name, b.Name)
	})
	return docs, nil
}

func (s *LocalSource) Read(ctx context.Context, name string) ([]byte, error) {
	p := filepath.ToSlash(name) + ".md"
	if !fs.ValidPath(p) {
		return nil, fmt.Errorf("invalid document name %q: %w", name, ErrNotFound)
	}

	content, err := fs.ReadFile(s.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", p, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return content, nil
}
