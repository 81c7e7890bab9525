package collection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/getmockd/userdesk/pkg/logging"
	"github.com/getmockd/userdesk/pkg/opstate"
	"github.com/getmockd/userdesk/pkg/record"
	"github.com/getmockd/userdesk/pkg/remote"
)

// fakeRemote is a scripted users service.
type fakeRemote struct {
	listFn   func(ctx context.Context) ([]record.UserRecord, error)
	createFn func(ctx context.Context, in record.UserInput) (record.UserRecord, error)
	updateFn func(ctx context.Context, id record.ID, in record.UserInput) (record.UserRecord, error)
	deleteFn func(ctx context.Context, id record.ID) error
}

func (f *fakeRemote) List(ctx context.Context) ([]record.UserRecord, error) {
	return f.listFn(ctx)
}

func (f *fakeRemote) Create(ctx context.Context, in record.UserInput) (record.UserRecord, error) {
	return f.createFn(ctx, in)
}

func (f *fakeRemote) Update(ctx context.Context, id record.ID, in record.UserInput) (record.UserRecord, error) {
	return f.updateFn(ctx, id, in)
}

func (f *fakeRemote) Delete(ctx context.Context, id record.ID) error {
	return f.deleteFn(ctx, id)
}

var (
	userA = record.UserRecord{ID: "a", FullName: "Ana", Email: "a@x.com", Phone: "+1"}
	userB = record.UserRecord{ID: "b", FullName: "Beto", Email: "b@x.com", Phone: "+2"}
	userC = record.UserRecord{ID: "c", FullName: "Caro", Email: "c@x.com", Phone: "+3"}
)

func listing(users ...record.UserRecord) func(context.Context) ([]record.UserRecord, error) {
	return func(context.Context) ([]record.UserRecord, error) {
		return users, nil
	}
}

// seeded returns a store whose sequence is [A, B, C].
func seeded(t *testing.T, f *fakeRemote, opts ...Option) *Store {
	t.Helper()
	f.listFn = listing(userA, userB, userC)
	s := New(f, opts...)
	s.Refresh(context.Background())
	require.False(t, s.Status().HasError())
	require.Len(t, s.Users(), 3)
	return s
}

func TestStore_NewIsEmptyAndIdle(t *testing.T) {
	s := New(&fakeRemote{})
	assert.Empty(t, s.Users())
	assert.Equal(t, opstate.Status{Phase: opstate.Idle}, s.Status())
}

func TestStore_RefreshReplacesSequence(t *testing.T) {
	f := &fakeRemote{listFn: listing(userA)}
	s := New(f)
	s.Refresh(context.Background())
	assert.Equal(t, []record.UserRecord{userA}, s.Users())

	f.listFn = listing(userB, userC)
	s.Refresh(context.Background())
	assert.Equal(t, []record.UserRecord{userB, userC}, s.Users())
}

func TestStore_RefreshFailureKeepsSequence(t *testing.T) {
	f := &fakeRemote{}
	s := seeded(t, f)

	f.listFn = func(context.Context) ([]record.UserRecord, error) {
		return nil, &remote.RemoteError{Status: 500, StatusText: "Internal Server Error"}
	}
	s.Refresh(context.Background())

	assert.Equal(t, []record.UserRecord{userA, userB, userC}, s.Users())
	st := s.Status()
	assert.Equal(t, opstate.Idle, st.Phase)
	assert.Equal(t, "Error al cargar usuarios: Error 500: Internal Server Error", st.LastError)
}

func TestStore_RefreshDropsDuplicateIDs(t *testing.T) {
	dup := userA
	dup.FullName = "Other"
	s := New(&fakeRemote{listFn: listing(userA, userB, dup)})
	s.Refresh(context.Background())
	assert.Equal(t, []record.UserRecord{userA, userB}, s.Users())
}

func TestStore_AddAppendsDistinctRecords(t *testing.T) {
	next := 0
	f := &fakeRemote{
		createFn: func(_ context.Context, in record.UserInput) (record.UserRecord, error) {
			next++
			return record.UserRecord{ID: record.ID(fmt.Sprint(next)), FullName: in.FullName, Email: in.Email, Phone: in.Phone}, nil
		},
	}
	s := seeded(t, f)

	const n = 5
	for i := 0; i < n; i++ {
		rec, err := s.Add(context.Background(), record.UserInput{FullName: fmt.Sprintf("User %d", i), Email: "u@x.com", Phone: "+0"})
		require.NoError(t, err)
		assert.Equal(t, record.ID(fmt.Sprint(i+1)), rec.ID)
	}

	users := s.Users()
	require.Len(t, users, 3+n)
	seen := map[record.ID]bool{}
	for _, u := range users {
		assert.False(t, seen[u.ID], "duplicate id %q", u.ID)
		seen[u.ID] = true
	}
	assert.Equal(t, "User 4", users[len(users)-1].FullName, "most recent create appears last")
}

func TestStore_AddFailureLeavesStateUntouched(t *testing.T) {
	f := &fakeRemote{
		createFn: func(context.Context, record.UserInput) (record.UserRecord, error) {
			return record.UserRecord{}, &remote.TransportError{Method: "POST", URL: "http://x/api/users", Err: errors.New("connection refused")}
		},
	}
	s := seeded(t, f)
	before := s.Users()

	_, err := s.Add(context.Background(), record.UserInput{FullName: "D", Email: "d@x.com", Phone: "+4"})

	var tErr *remote.TransportError
	require.True(t, errors.As(err, &tErr), "Add() error = %v", err)
	assert.Equal(t, before, s.Users())
	st := s.Status()
	assert.Equal(t, opstate.Idle, st.Phase)
	assert.Contains(t, st.LastError, "Error al crear usuario: ")
	assert.Contains(t, st.LastError, "connection refused")
}

func TestStore_AddExistingIDReplacesInPlace(t *testing.T) {
	changed := userB
	changed.Phone = "+99"
	f := &fakeRemote{
		createFn: func(context.Context, record.UserInput) (record.UserRecord, error) { return changed, nil },
	}
	s := seeded(t, f)

	_, err := s.Add(context.Background(), changed.Input())
	require.NoError(t, err)
	assert.Equal(t, []record.UserRecord{userA, changed, userC}, s.Users())
}

func TestStore_ReplaceTargetsByID(t *testing.T) {
	updated := record.UserRecord{ID: "b", FullName: "Beto B.", Email: "b@x.com", Phone: "+2"}
	f := &fakeRemote{
		updateFn: func(_ context.Context, id record.ID, in record.UserInput) (record.UserRecord, error) {
			assert.Equal(t, record.ID("b"), id)
			assert.Equal(t, "Beto B.", in.FullName)
			return updated, nil
		},
	}
	s := seeded(t, f)

	rec, err := s.Replace(context.Background(), "b", updated.Input())
	require.NoError(t, err)
	assert.Equal(t, updated, rec)
	assert.Equal(t, []record.UserRecord{userA, updated, userC}, s.Users())
}

func TestStore_ReplaceOrphanIsAppended(t *testing.T) {
	orphan := record.UserRecord{ID: "z", FullName: "Zoe", Email: "z@x.com", Phone: "+26"}
	metrics := NewMetricsObserver()
	f := &fakeRemote{
		updateFn: func(context.Context, record.ID, record.UserInput) (record.UserRecord, error) { return orphan, nil },
	}
	s := seeded(t, f, WithObserver(metrics))

	_, err := s.Replace(context.Background(), "z", orphan.Input())
	require.NoError(t, err)
	assert.Equal(t, []record.UserRecord{userA, userB, userC, orphan}, s.Users())
	assert.Equal(t, int64(1), metrics.Snapshot().OrphanCount)
	assert.False(t, s.Status().HasError())
}

func TestStore_ReplaceReturningExistingIDKeepsIDsUnique(t *testing.T) {
	moved := record.UserRecord{ID: "b", FullName: "X", Email: "x", Phone: "1"}
	f := &fakeRemote{
		updateFn: func(context.Context, record.ID, record.UserInput) (record.UserRecord, error) { return moved, nil },
	}
	var logs bytes.Buffer
	s := seeded(t, f, WithLogger(logging.New(logging.Config{Level: logging.LevelWarn, Output: &logs})))

	rec, err := s.Replace(context.Background(), "a", moved.Input())
	require.NoError(t, err)
	assert.Equal(t, moved, rec)
	assert.Equal(t, []record.UserRecord{moved, userC}, s.Users())
	assert.Contains(t, logs.String(), "dropped the stale copy")
}

func TestStore_ReplaceOrphanIsLogged(t *testing.T) {
	orphan := record.UserRecord{ID: "z", FullName: "Zoe", Email: "z@x.com", Phone: "+26"}
	f := &fakeRemote{
		updateFn: func(context.Context, record.ID, record.UserInput) (record.UserRecord, error) { return orphan, nil },
	}
	var logs bytes.Buffer
	s := seeded(t, f, WithLogger(logging.New(logging.Config{Level: logging.LevelWarn, Output: &logs})))

	_, err := s.Replace(context.Background(), "z", orphan.Input())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "updated user was not in the local collection")
	assert.Contains(t, logs.String(), "id=z")
}

func TestStore_ReplaceFailure(t *testing.T) {
	f := &fakeRemote{
		updateFn: func(context.Context, record.ID, record.UserInput) (record.UserRecord, error) {
			return record.UserRecord{}, &record.MalformedResponseError{Index: -1, Reason: "missing properties: 'id'"}
		},
	}
	s := seeded(t, f)

	_, err := s.Replace(context.Background(), "a", userA.Input())
	var mErr *record.MalformedResponseError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, []record.UserRecord{userA, userB, userC}, s.Users())
	assert.Equal(t, "Error al actualizar usuario: malformed response: missing properties: 'id'", s.Status().LastError)
}

func TestStore_RemoveExactlyMatchingID(t *testing.T) {
	f := &fakeRemote{deleteFn: func(context.Context, record.ID) error { return nil }}
	s := seeded(t, f)

	require.NoError(t, s.Remove(context.Background(), "b"))
	assert.Equal(t, []record.UserRecord{userA, userC}, s.Users())

	// Absent ids are tolerated.
	require.NoError(t, s.Remove(context.Background(), "nope"))
	assert.Equal(t, []record.UserRecord{userA, userC}, s.Users())
}

func TestStore_RemoveFailure(t *testing.T) {
	f := &fakeRemote{deleteFn: func(context.Context, record.ID) error {
		return &remote.RemoteError{Status: http.StatusNotFound, StatusText: "Not Found"}
	}}
	s := seeded(t, f)

	err := s.Remove(context.Background(), "a")
	assert.True(t, errors.Is(err, remote.ErrNotFound))
	assert.Len(t, s.Users(), 3)
	assert.Equal(t, "Error al eliminar usuario: Error 404: Not Found", s.Status().LastError)

	s.ClearError()
	assert.False(t, s.Status().HasError())
}

func TestStore_BusyGuard(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	f := &fakeRemote{
		createFn: func(context.Context, record.UserInput) (record.UserRecord, error) {
			close(entered)
			<-release
			return userC, nil
		},
		deleteFn: func(context.Context, record.ID) error {
			t.Error("Delete must not reach the remote while busy")
			return nil
		},
		updateFn: func(context.Context, record.ID, record.UserInput) (record.UserRecord, error) {
			t.Error("Update must not reach the remote while busy")
			return record.UserRecord{}, nil
		},
		listFn: func(context.Context) ([]record.UserRecord, error) {
			t.Error("List must not reach the remote while busy")
			return nil, nil
		},
	}
	s := New(f)

	done := make(chan error, 1)
	go func() {
		_, err := s.Add(context.Background(), userC.Input())
		done <- err
	}()
	<-entered

	st := s.Status()
	assert.Equal(t, opstate.Busy, st.Phase)
	assert.Equal(t, OpAdd, st.Operation)

	assert.ErrorIs(t, s.Remove(context.Background(), "a"), opstate.ErrBusy)
	_, err := s.Replace(context.Background(), "a", userA.Input())
	assert.ErrorIs(t, err, opstate.ErrBusy)
	s.Refresh(context.Background())
	assert.False(t, s.Status().HasError(), "a rejected operation does not set LastError")

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Add did not complete")
	}
	assert.Equal(t, []record.UserRecord{userC}, s.Users())
	assert.Equal(t, opstate.Idle, s.Status().Phase)
}

func TestStore_Subscribe(t *testing.T) {
	f := &fakeRemote{
		listFn:   listing(userA),
		deleteFn: func(context.Context, record.ID) error { return nil },
	}
	s := New(f)

	var snaps []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { snaps = append(snaps, snap) })

	s.Refresh(context.Background())
	require.Len(t, snaps, 2)
	assert.Equal(t, opstate.Busy, snaps[0].Status.Phase)
	assert.Empty(t, snaps[0].Users)
	assert.Equal(t, opstate.Idle, snaps[1].Status.Phase)
	assert.Equal(t, []record.UserRecord{userA}, snaps[1].Users)

	unsubscribe()
	require.NoError(t, s.Remove(context.Background(), "a"))
	assert.Len(t, snaps, 2)
}

func TestStore_EnglishMessages(t *testing.T) {
	f := &fakeRemote{listFn: func(context.Context) ([]record.UserRecord, error) {
		return nil, &remote.RemoteError{Status: 502, StatusText: "Bad Gateway"}
	}}
	s := New(f, WithLanguage(language.English))
	s.Refresh(context.Background())
	assert.Equal(t, "Failed to load users: Error 502: Bad Gateway", s.Status().LastError)
}

func TestStore_Metrics(t *testing.T) {
	metrics := NewMetricsObserver()
	f := &fakeRemote{
		createFn: func(context.Context, record.UserInput) (record.UserRecord, error) { return userC, nil },
		deleteFn: func(context.Context, record.ID) error { return errors.New("boom") },
	}
	s := seeded(t, f, WithObserver(metrics))

	_, err := s.Add(context.Background(), userC.Input())
	require.NoError(t, err)
	require.Error(t, s.Remove(context.Background(), "c"))

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.RefreshCount)
	assert.Equal(t, int64(1), snap.AddCount)
	assert.Equal(t, int64(0), snap.RemoveCount)
	assert.Equal(t, int64(1), snap.ErrorCount)
	assert.Equal(t, int64(2), snap.TotalOperations())
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, language.Spanish, ParseLanguage(""))
	assert.Equal(t, language.Spanish, ParseLanguage("es-MX"))
	assert.Equal(t, language.English, ParseLanguage("en-US"))
	assert.Equal(t, language.Spanish, ParseLanguage("not a tag!"))
}
