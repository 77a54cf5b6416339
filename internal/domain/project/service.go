package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/projectboard/internal/repository"
)

// DefaultStorageKey names the slot holding the serialized project collection.
const DefaultStorageKey = "@projects_v4"

// DefaultDelay is the simulated network latency applied to every call.
const DefaultDelay = 350 * time.Millisecond

// Options tunes the query service.
type Options struct {
	Key                     string
	Delay                   time.Duration
	SimulateError           bool
	SimulateInvalidResponse bool
}

// Service exposes the project collection as a latency-simulating API backed
// by a single storage slot.
type Service struct {
	slots  repository.SlotStore
	opts   Options
	logger *slog.Logger

	// mu serializes read-modify-write cycles on the slot.
	mu sync.Mutex
}

// NewService creates a new project service.
func NewService(slots repository.SlotStore, opts Options, logger *slog.Logger) *Service {
	if opts.Key == "" {
		opts.Key = DefaultStorageKey
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{slots: slots, opts: opts, logger: logger}
}

// List returns every project in storage order, seeding an empty store.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}

	// readAll may seed the slot, which must not interleave with a mutation.
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll(ctx)
}

// UpdateStatus sets the status of a single project and returns the stored value.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Project, error) {
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	return s.mutate(ctx, id, func(p Project) (Project, error) {
		p.Status = status
		return p, nil
	})
}

// Update merges patch onto a project and returns the stored value. The merged
// project must still carry a name, client name and start date.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Project, error) {
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(p Project) (Project, error) {
		updated := patch.Apply(p)
		if err := ValidateRequired(updated); err != nil {
			return Project{}, err
		}
		return updated, nil
	})
}

func (s *Service) mutate(ctx context.Context, id string, fn func(Project) (Project, error)) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range projects {
		if projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrProjectNotFound
	}

	updated, err := fn(projects[idx])
	if err != nil {
		return nil, err
	}

	next := Clone(projects)
	next[idx] = updated
	if err := s.writeAll(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Debug("project stored", "project_id", id)
	return &updated, nil
}

func (s *Service) readAll(ctx context.Context) ([]Project, error) {
	raw, err := s.slots.Get(ctx, s.opts.Key)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && len(raw) == 0) {
		seed := Seed()
		if err := s.writeAll(ctx, seed); err != nil {
			return nil, err
		}
		s.logger.Info("seeded empty project store", "key", s.opts.Key, "count", len(seed))
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading projects: %w", err)
	}

	if s.opts.SimulateInvalidResponse {
		raw = []byte(`{"hello":"world"}`)
	}

	projects, err := Decode(raw)
	if err != nil {
		s.logger.Warn("unreadable project collection", "key", s.opts.Key, "error", err)
		return nil, err
	}
	return projects, nil
}

func (s *Service) writeAll(ctx context.Context, projects []Project) error {
	data, err := Encode(projects)
	if err != nil {
		return err
	}
	if err := s.slots.Put(ctx, s.opts.Key, data); err != nil {
		return fmt.Errorf("writing projects: %w", err)
	}
	return nil
}

// roundTrip simulates network latency and, when configured, failure.
func (s *Service) roundTrip(ctx context.Context) error {
	if s.opts.Delay > 0 {
		timer := time.NewTimer(s.opts.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if s.opts.SimulateError {
		return ErrSimulatedNetwork
	}
	return nil
}
