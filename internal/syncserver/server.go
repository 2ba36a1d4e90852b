package syncserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Server exposes the sync contract over HTTP:
//
//	POST /auth/register  {username, password}        -> 201 {ok}
//	POST /auth/login     {username, password}        -> 200 {data}
//	PUT  /user/data      {username, password, data}  -> 200 {ok}
//
// Login doubles as the pull endpoint: it returns the stored document,
// which the client runs through its normalization pipeline.
type Server struct {
	repo *UserRepository
	mux  *http.ServeMux
}

func NewServer(repo *UserRepository) *Server {
	s := &Server{repo: repo, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("PUT /user/data", s.handlePutData)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type credentialsRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Data     json.RawMessage `json:"data"`
}

func decodeCredentials(r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, false
	}
	if normalizeUsername(req.Username) == "" || req.Password == "" {
		return req, false
	}
	return req, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}
	err := s.repo.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrUserExists):
		writeError(w, http.StatusConflict, "username already taken")
	case err != nil:
		log.Printf("register %q: %v", normalizeUsername(req.Username), err)
		writeError(w, http.StatusInternalServerError, "server error")
	default:
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}
	data, err := s.repo.Authenticate(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	case err != nil:
		log.Printf("login %q: %v", normalizeUsername(req.Username), err)
		writeError(w, http.StatusInternalServerError, "server error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"data": json.RawMessage(data)})
	}
}

func (s *Server) handlePutData(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}
	data := req.Data
	if len(data) == 0 || !json.Valid(data) {
		writeError(w, http.StatusBadRequest, "data must be a JSON document")
		return
	}
	err := s.repo.PutData(r.Context(), req.Username, req.Password, data)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	case err != nil:
		log.Printf("put data %q: %v", normalizeUsername(req.Username), err)
		writeError(w, http.StatusInternalServerError, "server error")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
