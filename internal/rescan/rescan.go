package rescan

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/SayaAndy/lightbox-docs/internal/source"
	"github.com/go-co-op/gocron/v2"
)

// Scheduler periodically lists a source and reports documents that appeared, changed or vanished since the last scan.
type Scheduler struct {
	s        gocron.Scheduler
	mu       sync.Mutex
	known    map[string]time.Time
	src      source.Source
	onChange func(changed []string) error
}

func NewScheduler(src source.Source, cron string, onChange func(changed []string) error) (*Scheduler, error) {
	rs := &Scheduler{known: make(map[string]time.Time), src: src, onChange: onChange}
	if _, err := rs.Scan(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to scan existing documents: %w", err)
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create new scheduler: %w", err)
	}
	rs.s = s

	_, err = s.NewJob(gocron.CronJob(cron, false), gocron.NewTask(func(rs *Scheduler) {
		changed, err := rs.Scan(context.Background())
		if err != nil {
			slog.Error("failed to execute rescanning documents cron job", slog.String("error", err.Error()))
			return
		}
		if len(changed) == 0 {
			return
		}
		slog.Info("documents changed", slog.Any("documents", changed))
		if err = rs.onChange(changed); err != nil {
			slog.Error("error happened on callback function after rescanning documents", slog.String("error", err.Error()))
		}
	}, rs))
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to schedule rescan job: %w", err)
	}

	s.Start()
	return rs, nil
}

// Scan lists the source and returns the sorted names that differ from the previous scan.
func (rs *Scheduler) Scan(ctx context.Context) ([]string, error) {
	docs, err := rs.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	changed := make([]string, 0)
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		seen[doc.Name] = struct{}{}
		if prev, ok := rs.known[doc.Name]; !ok || !prev.Equal(doc.ModTime) {
			changed = append(changed, doc.Name)
			rs.known[doc.Name] = doc.ModTime
		}
	}
	for name := range rs.known {
		if _, ok := seen[name]; !ok {
			changed = append(changed, name)
			delete(rs.known, name)
		}
	}

	slices.Sort(changed)
	return changed, nil
}

func (rs *Scheduler) Shutdown() error {
	return rs.s.Shutdown()
}
