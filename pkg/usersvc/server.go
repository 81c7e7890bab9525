package usersvc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/userdesk/pkg/logging"
	"github.com/getmockd/userdesk/pkg/record"
)

// DefaultBasePath is the collection path of the production API.
const DefaultBasePath = "/api/users"

const maxRequestBody = 1 << 20

// APIResponse is the envelope around every enveloped answer.
type APIResponse struct {
	Data    any    `json:"data"`
	Status  string `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Server serves the users HTTP API backed by a Repository.
type Server struct {
	repo     *Repository
	basePath string
	bare     bool
	log      *slog.Logger
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithBasePath mounts the collection at path instead of DefaultBasePath.
func WithBasePath(path string) Option {
	return func(s *Server) {
		path = "/" + strings.Trim(path, "/")
		if path != "/" {
			s.basePath = path
		}
	}
}

// WithBare makes create, update and read-one answer with the bare record.
func WithBare(bare bool) Option {
	return func(s *Server) {
		s.bare = bare
	}
}

// WithLogger sets the server's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a server for repo.
func New(repo *Repository, opts ...Option) *Server {
	s := &Server{
		repo:     repo,
		basePath: DefaultBasePath,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET "+s.basePath, s.handleList)
	mux.HandleFunc("POST "+s.basePath, s.handleCreate)
	mux.HandleFunc("GET "+s.basePath+"/{id}", s.handleGet)
	mux.HandleFunc("PUT "+s.basePath+"/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE "+s.basePath+"/{id}", s.handleDelete)
	s.mux = mux
	return s
}

// BasePath returns the collection path.
func (s *Server) BasePath() string {
	return s.basePath
}

// Repository returns the backing repository.
func (s *Server) Repository() *Repository {
	return s.repo
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeEnvelope(w, http.StatusOK, s.repo.List(), "Users retrieved successfully")
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	u, err := s.repo.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeRecord(w, http.StatusOK, u, "User found successfully")
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	u, err := s.repo.Create(in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("user created", "id", u.ID)
	s.writeRecord(w, http.StatusCreated, u, "User created successfully")
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	u, err := s.repo.Update(id, in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("user updated", "id", u.ID)
	s.writeRecord(w, http.StatusOK, u, "User updated successfully")
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.Delete(id); err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("user deleted", "id", id)
	s.writeEnvelope(w, http.StatusOK, nil, "User deleted successfully")
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeEnvelope(w, http.StatusBadRequest, nil, "Invalid user id: "+raw)
		return 0, false
	}
	return id, true
}

func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (record.UserInput, bool) {
	var in record.UserInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&in); err != nil {
		s.writeEnvelope(w, http.StatusBadRequest, nil, "Invalid request body: "+err.Error())
		return record.UserInput{}, false
	}
	return in, true
}

func (s *Server) writeRecord(w http.ResponseWriter, status int, u User, message string) {
	if s.bare {
		writeJSON(w, status, u)
		return
	}
	s.writeEnvelope(w, status, u, message)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var nf *NotFoundError
	var ve *record.ValidationError
	switch {
	case errors.As(err, &nf):
		s.writeEnvelope(w, http.StatusNotFound, nil, nf.Error())
	case errors.As(err, &ve):
		s.writeEnvelope(w, http.StatusBadRequest, nil, ve.Error())
	default:
		s.log.Error("request failed", "error", err)
		s.writeEnvelope(w, http.StatusInternalServerError, nil, err.Error())
	}
}

func (s *Server) writeEnvelope(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, APIResponse{
		Data:    data,
		Status:  statusName(status),
		Success: status >= 200 && status < 300,
		Message: message,
	})
}

// statusName renders a status code the way the production API does,
// e.g. 404 -> "NOT_FOUND".
func statusName(code int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully. ready, if not nil, receives the bound address once listening.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
