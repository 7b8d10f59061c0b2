// Package session tracks in-flight report renders per browser session and
// target container, so a slow answer for an old request never replaces the
// answer for a newer one.
package session

import (
	"context"
	"sync"

	"gofarma/domain/core"
	"gofarma/internal"
)

type slotKey struct {
	session core.SessionID
	target  string
}

type slot struct {
	generation uint64
	cancel     context.CancelFunc
}

// Tracker assigns generations to render requests. A newer request for the same
// (session, target) pair cancels the older one.
type Tracker struct {
	mu     sync.Mutex
	slots  map[slotKey]*slot
	latest uint64
	logger *internal.Logger
}

// NewTracker creates an empty tracker
func NewTracker(logger *internal.Logger) *Tracker {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Tracker{
		slots:  make(map[slotKey]*slot),
		logger: logger.With("RenderTracker"),
	}
}

// Ticket is the handle of one in-flight render.
type Ticket struct {
	Token      core.RenderToken
	Generation uint64

	tracker *Tracker
	key     slotKey
	ctx     context.Context
	cancel  context.CancelFunc
}

// Begin registers a render for (sessionID, target), cancelling the context of
// any render still in flight for the same pair. The returned ticket's Context
// derives from ctx.
func (t *Tracker) Begin(ctx context.Context, sessionID core.SessionID, target string) *Ticket {
	ctx, cancel := context.WithCancel(ctx)
	key := slotKey{session: sessionID, target: target}

	t.mu.Lock()
	t.latest++
	generation := t.latest
	if prev, ok := t.slots[key]; ok {
		prev.cancel()
		t.logger.Debug("session %s target %s: generation %d superseded by %d", sessionID, target, prev.generation, generation)
	}
	t.slots[key] = &slot{generation: generation, cancel: cancel}
	t.mu.Unlock()

	return &Ticket{
		Token:      core.NewRenderToken(),
		Generation: generation,
		tracker:    t,
		key:        key,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// InFlight returns the number of (session, target) pairs with an open ticket.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}

// Context is cancelled when the ticket is superseded or done.
func (tk *Ticket) Context() context.Context {
	return tk.ctx
}

// Current reports whether no newer render has begun for the same pair.
// A ticket is no longer current after Done.
func (tk *Ticket) Current() bool {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	s, ok := tk.tracker.slots[tk.key]
	return ok && s.generation == tk.Generation
}

// Done releases the ticket. It is safe to call more than once.
func (tk *Ticket) Done() {
	tk.cancel()
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()
	if s, ok := tk.tracker.slots[tk.key]; ok && s.generation == tk.Generation {
		delete(tk.tracker.slots, tk.key)
	}
}
