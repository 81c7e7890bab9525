package usersvc

import (
	"fmt"
	"sync"

	"github.com/getmockd/userdesk/pkg/record"
)

// User is a stored user. Ids are integers, as in the production API.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// NotFoundError is returned when no user has the given id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User not found with id: %d", e.ID)
}

// Repository is an insertion-ordered, thread-safe user table.
type Repository struct {
	mu     sync.RWMutex
	users  []User
	nextID int64
	seed   []record.UserInput
}

// NewRepository creates a repository holding the seed users.
func NewRepository(seed ...record.UserInput) *Repository {
	r := &Repository{seed: seed}
	r.Reset()
	return r
}

// Reset drops every user and reloads the seed, restarting ids at 1.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make([]User, 0, len(r.seed))
	r.nextID = 0
	for _, in := range r.seed {
		r.insert(in)
	}
}

// List returns every user in insertion order.
func (r *Repository) List() []User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out
}

// Count returns the number of users.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// Get returns the user with the given id.
func (r *Repository) Get(id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.users[i], nil
	}
	return User{}, &NotFoundError{ID: id}
}

// Create validates input and stores a new user.
func (r *Repository) Create(in record.UserInput) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(in), nil
}

// Update overwrites the fields of an existing user.
func (r *Repository) Update(id int64, in record.UserInput) (User, error) {
	if err := in.Validate(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return User{}, &NotFoundError{ID: id}
	}
	r.users[i] = User{ID: id, FullName: in.FullName, Email: in.Email, Phone: in.Phone}
	return r.users[i], nil
}

// Delete removes a user.
func (r *Repository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

// insert must be called with mu held.
func (r *Repository) insert(in record.UserInput) User {
	r.nextID++
	u := User{ID: r.nextID, FullName: in.FullName, Email: in.Email, Phone: in.Phone}
	r.users = append(r.users, u)
	return u
}

// indexOf must be called with mu held.
func (r *Repository) indexOf(id int64) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
