package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/errs"
	"github.com/rpupo63/portfolio-admin-backend/models"
)

// ReorderState tracks one reorder gesture through its lifecycle.
type ReorderState int

const (
	ReorderIdle ReorderState = iota
	ReorderPending
	ReorderCommitted
	ReorderRolledBack
)

func (s ReorderState) String() string {
	switch s {
	case ReorderIdle:
		return "idle"
	case ReorderPending:
		return "pending"
	case ReorderCommitted:
		return "committed"
	case ReorderRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// ReorderCoordinator provides optimistic reordering over a project store.
// A move updates the in-memory view immediately, then writes the order
// through to the store; when the write fails the optimistic view is
// discarded and the authoritative order is fetched back, so the caller
// never keeps looking at an order the store does not hold. Demo
// sessions hand the coordinator their simulation store, so a demo gesture
// lands in the session state and stays authoritative for the session
// without ever reaching durable storage.
type ReorderCoordinator struct {
	mu     sync.Mutex
	store  database.ProjectStore
	view   []*models.Project
	state  ReorderState
	logger zerolog.Logger
}

func NewReorderCoordinator(store database.ProjectStore) *ReorderCoordinator {
	logger := log.With().Str("serviceName", "reorderCoordinator").Logger()

	return &ReorderCoordinator{
		store:  store,
		state:  ReorderIdle,
		logger: logger,
	}
}

// Load fetches the authoritative project list into the view.
func (c *ReorderCoordinator) Load() error {
	projects, err := c.store.FindAll()
	if err != nil {
		return errs.NewDatabaseError("find", "projects", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = projects
	c.state = ReorderIdle
	return nil
}

// View returns the current in-memory ordering.
func (c *ReorderCoordinator) View() []*models.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := make([]*models.Project, len(c.view))
	copy(view, c.view)
	return view
}

// State returns the outcome of the last gesture.
func (c *ReorderCoordinator) State() ReorderState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Move applies one drag gesture: remove the item at from, insert it at to,
// shift everything between. The view updates optimistically before the
// store is asked to persist the new order.
func (c *ReorderCoordinator) Move(from, to int) error {
	c.mu.Lock()

	if from < 0 || from >= len(c.view) || to < 0 || to >= len(c.view) {
		c.mu.Unlock()
		return errs.NewInvalidFieldError("position", "move indexes out of range")
	}

	c.view = arrayMove(c.view, from, to)
	c.state = ReorderPending

	ids := make([]uuid.UUID, len(c.view))
	for i, project := range c.view {
		ids[i] = project.ID
	}
	c.mu.Unlock()

	if err := c.store.Reorder(ids); err != nil {
		c.logger.Error().Err(err).Msg("Reorder persistence failed, reconciling from store")
		c.rollback()
		return errs.NewDatabaseError("reorder", "projects", err)
	}

	c.mu.Lock()
	c.state = ReorderCommitted
	c.mu.Unlock()
	return nil
}

// rollback discards the optimistic view and converges on the last
// persisted order. A failed refetch keeps the stale view but still marks
// the gesture rolled back; the next Load retries.
func (c *ReorderCoordinator) rollback() {
	projects, err := c.store.FindAll()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to refetch projects after rollback")
	} else {
		c.view = projects
	}
	c.state = ReorderRolledBack
}

// arrayMove removes the element at from and reinserts it at to.
func arrayMove(items []*models.Project, from, to int) []*models.Project {
	moved := make([]*models.Project, 0, len(items))
	moved = append(moved, items[:from]...)
	moved = append(moved, items[from+1:]...)

	moved = append(moved, nil)
	copy(moved[to+1:], moved[to:])
	moved[to] = items[from]
	return moved
}
