package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Backblaze/blazer/b2"
	"github.com/SayaAndy/lightbox-docs/config"
)

type B2Source struct {
	prefix string
	bucket *b2.Bucket
	b2cl   *b2.Client
}

func NewB2Source(ctx context.Context, cfg *config.B2Config) (*B2Source, error) {
	b2cl, err := b2.NewClient(ctx, cfg.KeyID, cfg.ApplicationKey)
	if err != nil {
		return nil, fmt.Errorf("create b2 client: %w", err)
	}

	bucket, err := b2cl.Bucket(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("open b2 bucket %q: %w", cfg.BucketName, err)
	}

	return &B2Source{b2cl: b2cl, bucket: bucket, prefix: cfg.Prefix}, nil
}

func (s *B2Source) List(ctx context.Context) ([]Document, error) {
	docs := []Document{}

	iter := s.bucket.List(ctx, b2.ListPrefix(s.prefix))
	for iter.Next() {
		obj := iter.Object()
		if obj == nil {
			return nil, fmt.Errorf("failed to reference object in B2 bucket")
		}

		if !strings.HasSuffix(obj.Name(), ".md") {
			continue
		}

		attrs, err := obj.Attrs(ctx)
		if err != nil {
			return nil, fmt.Errorf("get attributes for object: %w", err)
		}

		if attrs.Status != b2.Uploaded {
			continue
		}

		if attrs.ContentType != "" && !strings.Contains(attrs.ContentType, "markdown") && !strings.HasPrefix(attrs.ContentType, "text/plain") {
			continue
		}

		docs = append(docs, Document{
			Name:    strings.TrimSuffix(strings.TrimPrefix(obj.Name(), s.prefix), ".md"),
			ModTime: attrs.LastModified,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("iterate over B2 objects: %w", err)
	}

	return docs, nil
}

func (s *B2Source) Read(ctx context.Context, name string) ([]byte, error) {
	obj := s.bucket.Object(s.prefix + name + ".md")
	if obj == nil {
		return nil, fmt.Errorf("failed to reference object in B2 bucket")
	}

	reader := obj.NewReader(ctx)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if b2.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	return content, nil
}
