package server

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SayaAndy/lightbox-docs/internal/site"
	"github.com/SayaAndy/lightbox-docs/internal/source"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/gofiber/fiber/v2"
)

const cacheHeader = "X-Page-Cache"

// Server serves rendered documents and keeps them in a page cache until they expire or are purged.
type Server struct {
	app     *fiber.App
	builder *site.Builder
	cache   *ristretto.Cache[string, []byte]
	ttl     time.Duration
}

func NewServer(builder *site.Builder, ttl time.Duration) (*Server, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        1e5,     // 100,000
		MaxCost:            1 << 26, // 64 MB
		BufferItems:        64,      // number of keys per Get buffer.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fail to initialize page cache: %w", err)
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		builder: builder,
		cache:   cache,
		ttl:     ttl,
	}

	s.app.Post("/-/purge", s.purge)
	s.app.Get("/*", s.page)

	return s, nil
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	slog.Info("preview server listening", slog.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	defer s.cache.Close()
	return s.app.Shutdown()
}

// Purge drops the named pages from the cache, or every page when no name is given.
func (s *Server) Purge(names ...string) {
	if len(names) == 0 {
		s.cache.Clear()
		return
	}
	for _, name := range names {
		s.cache.Del(name)
	}
}

func (s *Server) page(c *fiber.Ctx) error {
	name := pageName(c.Params("*"))

	if content, ok := s.cache.Get(name); ok {
		c.Set(cacheHeader, "HIT")
		return c.Type("html").Send(content)
	}

	content, err := s.builder.RenderPage(c.UserContext(), name)
	if errors.Is(err, source.ErrNotFound) || errors.Is(err, site.ErrDraft) {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusNotFound).SendString(fmt.Sprintf("failed to find '%s' page", name))
	}
	if err != nil {
		slog.Warn("failed to generate page", slog.String("page", name), slog.String("error", err.Error()))
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to generate page")
	}

	s.cache.SetWithTTL(name, content, int64(len(content)), s.ttl)
	c.Set(cacheHeader, "MISS")
	return c.Type("html").Send(content)
}

func (s *Server) purge(c *fiber.Ctx) error {
	s.Purge()
	slog.Debug("page cache purged")
	return c.SendStatus(fiber.StatusNoContent)
}

func pageName(path string) string {
	name := strings.TrimSuffix(strings.Trim(path, "/"), ".html")
	switch {
	case name == "":
		return "index"
	case strings.HasSuffix(path, "/"):
		return name + "/index"
	}
	return name
}
