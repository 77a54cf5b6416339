// Package state holds the optimistic-update controller shared by every
// presentation layer.
package state

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/projectboard/internal/domain/project"
)

// API is the query service the controller confirms mutations against.
type API interface {
	List(ctx context.Context) ([]project.Project, error)
	UpdateStatus(ctx context.Context, id string, status project.Status) (*project.Project, error)
	Update(ctx context.Context, id string, patch project.Patch) (*project.Project, error)
}

// Options configures a Controller.
type Options struct {
	Policy   MutationPolicy
	Recorder Recorder
	Now      func() time.Time
}

// Controller owns the current Snapshot. Commands apply transitions through
// Reduce; subscribers see every resulting snapshot in transition order.
//
// Subscriber and notice callbacks run on the goroutine that applied the
// transition and must not issue commands synchronously. Reading Snapshot or
// GetByID from a callback is safe.
type Controller struct {
	api    API
	opts   Options
	logger *slog.Logger

	current atomic.Pointer[Snapshot]

	// mu serializes transitions and guards the fields below.
	mu       sync.Mutex
	nextSub  int
	subs     map[int]func(Snapshot)
	notices  map[int]func(Notice)
	inFlight map[string]chan struct{}

	// notifyMu is taken before mu is released so deliveries keep transition order.
	notifyMu sync.Mutex
}

// NewController creates a controller with an empty snapshot.
func NewController(api API, opts Options, logger *slog.Logger) *Controller {
	if opts.Policy == "" {
		opts.Policy = PolicyPermissive
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{
		api:      api,
		opts:     opts,
		logger:   logger,
		subs:     make(map[int]func(Snapshot)),
		notices:  make(map[int]func(Notice)),
		inFlight: make(map[string]chan struct{}),
	}
	c.current.Store(&Snapshot{})
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	return c.current.Load().clone()
}

// GetByID looks id up in the current snapshot.
func (c *Controller) GetByID(id string) (project.Project, bool) {
	return c.current.Load().Find(id)
}

// Subscribe registers fn for every new snapshot. The returned func removes it.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// OnNotice registers fn for mutation failure notices. The returned func removes it.
func (c *Controller) OnNotice(fn func(Notice)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.notices[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.notices, id)
	}
}

// FetchAll loads the whole collection. refreshing keeps the current list
// visible instead of entering the loading state. A failure is stored in the
// snapshot and also returned.
func (c *Controller) FetchAll(ctx context.Context, refreshing bool) error {
	c.apply(FetchStarted{Refreshing: refreshing})

	start := c.opts.Now()
	projects, err := c.api.List(context.WithoutCancel(ctx))
	c.opts.Recorder.FetchCompleted(refreshing, err, c.opts.Now().Sub(start))
	if err != nil {
		c.logger.Warn("fetch failed", "refreshing", refreshing, "error", err)
		c.apply(FetchFailed{Message: Message(err)})
		return err
	}

	c.apply(FetchSucceeded{Projects: projects})
	return nil
}

// UpdateStatus optimistically sets the status of id and confirms it with the
// query service. On failure the collection is rolled back and a notice raised.
func (c *Controller) UpdateStatus(ctx context.Context, id string, status project.Status) error {
	if !status.Valid() {
		return project.ErrInvalidStatus
	}
	return c.mutate(ctx, CommandStatus, id, StatusOptimistic{ID: id, Status: status},
		func(ctx context.Context) (*project.Project, error) {
			return c.api.UpdateStatus(ctx, id, status)
		})
}

// UpdateFields optimistically merges patch onto id and confirms it with the
// query service. On failure the collection is rolled back and a notice raised.
func (c *Controller) UpdateFields(ctx context.Context, id string, patch project.Patch) error {
	return c.mutate(ctx, CommandFields, id, FieldsOptimistic{ID: id, Patch: patch},
		func(ctx context.Context) (*project.Project, error) {
			return c.api.Update(ctx, id, patch)
		})
}

func (c *Controller) mutate(ctx context.Context, cmd Command, id string, optimistic Action, confirm func(context.Context) (*project.Project, error)) error {
	opID := uuid.New()
	logger := c.logger.With("command", string(cmd), "project_id", id, "op_id", opID.String())
	start := c.opts.Now()

	prev, release, err := c.begin(ctx, id, optimistic)
	if err != nil {
		c.opts.Recorder.MutationCompleted(cmd, err, c.opts.Now().Sub(start))
		logger.Debug("mutation not started", "error", err)
		return err
	}
	defer release()

	updated, err := confirm(context.WithoutCancel(ctx))
	if err == nil && updated == nil {
		err = project.ErrInvalidPayload
	}
	c.opts.Recorder.MutationCompleted(cmd, err, c.opts.Now().Sub(start))
	if err != nil {
		logger.Warn("mutation rolled back", "error", err)
		c.opts.Recorder.RolledBack(cmd)
		c.apply(MutationRolledBack{Prev: prev})
		c.raise(Notice{
			ID:        opID,
			Command:   cmd,
			ProjectID: id,
			Title:     cmd.Title(),
			Message:   Message(err),
			At:        c.opts.Now(),
		})
		return err
	}

	c.apply(MutationConfirmed{Project: *updated})
	c.apply(MutationDone{})
	logger.Debug("mutation confirmed")
	return nil
}

// begin applies the optimistic action and returns the collection captured
// immediately before it. release must be called once the mutation resolves.
func (c *Controller) begin(ctx context.Context, id string, optimistic Action) ([]project.Project, func(), error) {
	for {
		c.mu.Lock()
		wait, busy := c.inFlight[id]
		if !busy || c.opts.Policy == PolicyPermissive {
			break
		}
		c.mu.Unlock()

		if c.opts.Policy == PolicyReject {
			return nil, nil, ErrMutationInFlight
		}
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	release := func() {}
	if c.opts.Policy != PolicyPermissive {
		done := make(chan struct{})
		c.inFlight[id] = done
		release = func() {
			c.mu.Lock()
			delete(c.inFlight, id)
			c.mu.Unlock()
			close(done)
		}
	}

	prev := project.Clone(c.current.Load().Projects)
	c.applyLocked(optimistic)
	return prev, release, nil
}

func (c *Controller) apply(a Action) {
	c.mu.Lock()
	c.applyLocked(a)
}

// applyLocked must be called with mu held and releases it.
func (c *Controller) applyLocked(a Action) {
	next := Reduce(*c.current.Load(), a)
	c.current.Store(&next)

	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}

	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	c.logger.Debug("action applied", "action", actionName(a))
	for _, fn := range subs {
		fn(next.clone())
	}
}

func (c *Controller) raise(n Notice) {
	c.mu.Lock()
	fns := make([]func(Notice), 0, len(c.notices))
	for _, fn := range c.notices {
		fns = append(fns, fn)
	}
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
}
