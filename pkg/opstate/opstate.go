// Package opstate tracks the single busy/idle/error status shared by every
// operation of a collection store.
//
// Only one operation may be in flight at a time. Begin rejects a second
// operation with ErrBusy instead of letting the two interleave.
package opstate

import (
	"errors"
	"sync"
)

// ErrBusy is returned by Begin while another operation is in flight.
var ErrBusy = errors.New("another operation is in progress")

// Phase is the coarse state of the store.
type Phase int

// Phases.
const (
	Idle Phase = iota
	Busy
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Busy:
		return "busy"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Status is a point-in-time view of the machine.
type Status struct {
	Phase Phase `json:"phase"`
	// Operation names the in-flight operation; empty when idle.
	Operation string `json:"operation,omitempty"`
	// LastError is the message of the last failed operation; empty when unset.
	LastError string `json:"lastError,omitempty"`
}

// IsBusy reports whether an operation is in flight.
func (s Status) IsBusy() bool {
	return s.Phase == Busy
}

// HasError reports whether a failure message is pending.
func (s Status) HasError() bool {
	return s.LastError != ""
}

type subscriber struct {
	id int
	fn func(Status)
}

// Machine is the operation state machine:
//
//	Idle --Begin--> Busy --Succeed--> Idle
//	                Busy --Fail-----> Idle (LastError set)
//
// The zero value is not usable; call New.
type Machine struct {
	mu     sync.Mutex
	status Status
	subs   []subscriber
	nextID int
}

// New returns an idle machine with no pending error.
func New() *Machine {
	return &Machine{}
}

// Status returns the current status.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Begin moves the machine from Idle to Busy for the named operation and
// clears any pending error. It returns ErrBusy, changing nothing, when an
// operation is already in flight.
func (m *Machine) Begin(operation string) error {
	m.mu.Lock()
	if m.status.Phase == Busy {
		m.mu.Unlock()
		return ErrBusy
	}
	m.status = Status{Phase: Busy, Operation: operation}
	m.mu.Unlock()

	m.notify()
	return nil
}

// Succeed returns the machine to Idle.
func (m *Machine) Succeed() {
	m.mu.Lock()
	m.status.Phase = Idle
	m.status.Operation = ""
	m.mu.Unlock()

	m.notify()
}

// Fail returns the machine to Idle and records message as the last error.
func (m *Machine) Fail(message string) {
	m.mu.Lock()
	m.status = Status{Phase: Idle, LastError: message}
	m.mu.Unlock()

	m.notify()
}

// ClearError dismisses the pending error message.
func (m *Machine) ClearError() {
	m.mu.Lock()
	if m.status.LastError == "" {
		m.mu.Unlock()
		return
	}
	m.status.LastError = ""
	m.mu.Unlock()

	m.notify()
}

// Subscribe registers fn to be called with the new status after every
// change. Subscribers run synchronously, in registration order, outside the
// machine's lock. The returned function removes the subscription.
func (m *Machine) Subscribe(fn func(Status)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Machine) notify() {
	m.mu.Lock()
	status := m.status
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, s := range subs {
		s.fn(status)
	}
}
