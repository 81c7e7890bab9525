package collection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/getmockd/userdesk/pkg/logging"
	"github.com/getmockd/userdesk/pkg/opstate"
	"github.com/getmockd/userdesk/pkg/record"
)

// Operation names reported in Status.Operation and to observers.
const (
	OpRefresh = "refresh"
	OpAdd     = "add"
	OpReplace = "replace"
	OpRemove  = "remove"
)

// Remote is the users service as seen by the store. *remote.Client satisfies it.
type Remote interface {
	List(ctx context.Context) ([]record.UserRecord, error)
	Create(ctx context.Context, input record.UserInput) (record.UserRecord, error)
	Update(ctx context.Context, id record.ID, input record.UserInput) (record.UserRecord, error)
	Delete(ctx context.Context, id record.ID) error
}

// Snapshot is what subscribers receive after every change.
type Snapshot struct {
	Users  []record.UserRecord `json:"users"`
	Status opstate.Status      `json:"status"`
}

// Store holds the authoritative local sequence of users.
type Store struct {
	remote   Remote
	state    *opstate.Machine
	log      *slog.Logger
	observer Observer
	printer  *message.Printer

	mu    sync.RWMutex
	users []record.UserRecord
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithObserver sets the observer notified of every operation.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLanguage selects the language of LastError messages.
func WithLanguage(tag language.Tag) Option {
	return func(s *Store) {
		s.printer = newPrinter(tag)
	}
}

// New creates an empty, idle store backed by remote.
func New(remote Remote, opts ...Option) *Store {
	s := &Store{
		remote:   remote,
		state:    opstate.New(),
		log:      logging.Nop(),
		observer: NoopObserver{},
		printer:  newPrinter(DefaultLanguage),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh replaces the sequence with the users service's list. On failure
// the sequence is kept and Status().LastError explains why.
func (s *Store) Refresh(ctx context.Context) {
	if err := s.state.Begin(OpRefresh); err != nil {
		s.log.Warn("refresh skipped", "error", err)
		return
	}

	start := time.Now()
	users, err := s.remote.List(ctx)
	if err != nil {
		s.fail(OpRefresh, msgLoadFailed, err)
		return
	}

	users = s.dedupe(users)
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()

	s.observer.OnRefresh(len(users), time.Since(start))
	s.state.Succeed()
}

// Add creates a user and appends it to the sequence.
func (s *Store) Add(ctx context.Context, input record.UserInput) (record.UserRecord, error) {
	if err := s.state.Begin(OpAdd); err != nil {
		return record.UserRecord{}, err
	}

	start := time.Now()
	rec, err := s.remote.Create(ctx, input)
	if err != nil {
		s.fail(OpAdd, msgCreateFailed, err)
		return record.UserRecord{}, err
	}

	s.mu.Lock()
	if i := s.indexOf(rec.ID); i >= 0 {
		s.log.Warn("created user already present locally; replaced", "id", rec.ID)
		s.users[i] = rec
	} else {
		s.users = append(s.users, rec)
	}
	s.mu.Unlock()

	s.observer.OnAdd(rec.ID, time.Since(start))
	s.state.Succeed()
	return rec, nil
}

// Replace updates the user with the given id and swaps the returned record
// in at the same position. A record the store has never seen is appended.
func (s *Store) Replace(ctx context.Context, id record.ID, input record.UserInput) (record.UserRecord, error) {
	if err := s.state.Begin(OpReplace); err != nil {
		return record.UserRecord{}, err
	}

	start := time.Now()
	rec, err := s.remote.Update(ctx, id, input)
	if err != nil {
		s.fail(OpReplace, msgUpdateFailed, err)
		return record.UserRecord{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	pos := i
	if i >= 0 {
		s.users[i] = rec
	} else {
		s.users = append(s.users, rec)
		pos = len(s.users) - 1
	}
	dropped := 0
	if rec.ID != id {
		dropped = s.dropOthers(rec.ID, pos)
	}
	s.mu.Unlock()

	if dropped > 0 {
		s.log.Warn("updated user came back with an id already present locally; dropped the stale copy",
			"requestedId", id, "returnedId", rec.ID, "dropped", dropped)
	}
	if i < 0 {
		s.log.Warn("updated user was not in the local collection; appended", "id", id)
		s.observer.OnOrphan(id)
	}
	s.observer.OnReplace(id, time.Since(start))
	s.state.Succeed()
	return rec, nil
}

// Remove deletes the user with the given id and drops every local record
// carrying it. An id with no local record is not an error.
func (s *Store) Remove(ctx context.Context, id record.ID) error {
	if err := s.state.Begin(OpRemove); err != nil {
		return err
	}

	start := time.Now()
	if err := s.remote.Delete(ctx, id); err != nil {
		s.fail(OpRemove, msgDeleteFailed, err)
		return err
	}

	s.mu.Lock()
	kept := s.users[:0:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	removed := len(s.users) - len(kept)
	s.users = kept
	s.mu.Unlock()

	s.observer.OnRemove(id, removed, time.Since(start))
	s.state.Succeed()
	return nil
}

// Users returns a copy of the current sequence.
func (s *Store) Users() []record.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]record.UserRecord, len(s.users))
	copy(out, s.users)
	return out
}

// Len returns the number of records in the sequence.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Find returns the local record with the given id.
func (s *Store) Find(id record.ID) (record.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.users[i], true
	}
	return record.UserRecord{}, false
}

// Status returns the current operation status.
func (s *Store) Status() opstate.Status {
	return s.state.Status()
}

// ClearError dismisses the pending error message.
func (s *Store) ClearError() {
	s.state.ClearError()
}

// Snapshot returns the sequence and status together.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Users: s.Users(), Status: s.Status()}
}

// Subscribe registers fn to receive a snapshot after every status change.
// Sequence changes are always followed by a status change, so subscribers
// see every mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	return s.state.Subscribe(func(st opstate.Status) {
		fn(Snapshot{Users: s.Users(), Status: st})
	})
}

func (s *Store) fail(operation, key string, err error) {
	s.observer.OnError(operation, err)
	s.state.Fail(s.printer.Sprintf(key, err.Error()))
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id record.ID) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// dropOthers removes every record carrying id except the one at keep and
// returns how many were removed. It must be called with mu held.
func (s *Store) dropOthers(id record.ID, keep int) int {
	kept := s.users[:0:0]
	for j, u := range s.users {
		if j != keep && u.ID == id {
			continue
		}
		kept = append(kept, u)
	}
	dropped := len(s.users) - len(kept)
	s.users = kept
	return dropped
}

// dedupe keeps the first record for every id.
func (s *Store) dedupe(users []record.UserRecord) []record.UserRecord {
	seen := make(map[record.ID]struct{}, len(users))
	out := make([]record.UserRecord, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; ok {
			s.log.Warn("duplicate id in list response; keeping first", "id", u.ID)
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}
