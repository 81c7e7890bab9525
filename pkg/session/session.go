// Package session holds the single edit form of the presentation layer: at
// most one record selected for editing and a working copy of its fields.
//
// Submit decides between creating and updating: with no selection it adds a
// new user, otherwise it replaces the selected one.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/getmockd/userdesk/pkg/record"
)

// ErrNotOpen is returned by Submit when no form is open.
var ErrNotOpen = errors.New("no edit form is open")

// Store is the part of the collection store a session writes through.
// *collection.Store satisfies it.
type Store interface {
	Add(ctx context.Context, input record.UserInput) (record.UserRecord, error)
	Replace(ctx context.Context, id record.ID, input record.UserInput) (record.UserRecord, error)
}

// Mode tells which form, if any, is open.
type Mode int

// Modes.
const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Controller owns the edit session.
type Controller struct {
	store Store

	mu       sync.Mutex
	mode     Mode
	selected *record.UserRecord
	draft    record.UserInput
	// gen counts form openings and closings; Submit only clears the form it
	// was started from.
	gen uint64
}

// New returns a controller with no form open.
func New(store Store) *Controller {
	return &Controller{store: store}
}

// BeginCreate opens an empty form for a new user.
func (c *Controller) BeginCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.mode = ModeCreate
	c.selected = nil
	c.draft = record.UserInput{}
}

// BeginEdit opens a form prefilled with rec's fields and selects rec.
func (c *Controller) BeginEdit(rec record.UserRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.mode = ModeEdit
	c.selected = &rec
	c.draft = rec.Input()
}

// Cancel closes the form and discards the working copy.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Set changes one field of the working copy.
func (c *Controller) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeClosed {
		return ErrNotOpen
	}
	draft, err := c.draft.With(field, value)
	if err != nil {
		return err
	}
	c.draft = draft
	return nil
}

// SetInput replaces the whole working copy.
func (c *Controller) SetInput(input record.UserInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeClosed {
		return ErrNotOpen
	}
	c.draft = input
	return nil
}

// Draft returns the working copy.
func (c *Controller) Draft() record.UserInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Selected returns the record being edited, if any.
func (c *Controller) Selected() (record.UserRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return record.UserRecord{}, false
	}
	return *c.selected, true
}

// Mode returns which form is open.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// IsOpen reports whether a form is open.
func (c *Controller) IsOpen() bool {
	return c.Mode() != ModeClosed
}

// Submit validates the working copy and sends it to the store. On success
// the form is closed and cleared, unless another form was opened while the
// request was in flight. On failure it stays open with the submitted values
// so the operator can correct them and retry.
func (c *Controller) Submit(ctx context.Context) (record.UserRecord, error) {
	c.mu.Lock()
	if c.mode == ModeClosed {
		c.mu.Unlock()
		return record.UserRecord{}, ErrNotOpen
	}
	draft := c.draft
	gen := c.gen
	var selected *record.UserRecord
	if c.selected != nil {
		sel := *c.selected
		selected = &sel
	}
	c.mu.Unlock()

	if err := draft.Validate(); err != nil {
		return record.UserRecord{}, err
	}

	var (
		rec record.UserRecord
		err error
	)
	if selected == nil {
		rec, err = c.store.Add(ctx, draft)
	} else {
		rec, err = c.store.Replace(ctx, selected.ID, draft)
	}
	if err != nil {
		return record.UserRecord{}, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.reset()
	}
	c.mu.Unlock()
	return rec, nil
}

// reset must be called with mu held.
func (c *Controller) reset() {
	c.gen++
	c.mode = ModeClosed
	c.selected = nil
	c.draft = record.UserInput{}
}
