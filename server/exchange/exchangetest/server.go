// Package exchangetest provides an in-process fake of the identity provider
// exchange for tests.
package exchangetest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
)

// RecordedRequest is a request received by the fake.
type RecordedRequest struct {
	Path        string
	Token       string
	Accept      string
	ContentType string
	Body        []byte
}

type knownUser struct {
	user    exchange.UserResponse
	updated time.Time
}

// Server is a fake exchange. Users are answered in the order they were added.
type Server struct {
	*httptest.Server

	token      string
	serializer exchange.JSONSerializer

	mu       sync.Mutex
	users    []knownUser
	status   int
	body     []byte
	requests []RecordedRequest
}

// NewServer starts a fake exchange accepting token. Call Close when done.
func NewServer(token string) *Server {
	s := &Server{token: token}

	router := mux.NewRouter()
	router.Use(s.record, s.authenticate, s.forcedResponse)
	router.HandleFunc("/exchange/user", s.handleUser).Methods(http.MethodPost)
	router.HandleFunc("/exchange/users", s.handleUsers).Methods(http.MethodPost)
	router.HandleFunc("/exchange/updated_users", s.handleUpdatedUsers).Methods(http.MethodPost)

	s.Server = httptest.NewServer(router)
	return s
}

// AddUser registers user as last changed at updated.
func (s *Server) AddUser(user exchange.UserResponse, updated time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, knownUser{user: user, updated: updated})
}

// RespondWith makes every following request answer status with body.
// A zero status restores normal handling.
func (s *Server) RespondWith(status int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// Requests returns the requests received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := make([]RecordedRequest, len(s.requests))
	copy(requests, s.requests)
	return requests
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Path:        r.URL.Path,
			Token:       r.Header.Get("X-Token"),
			Accept:      r.Header.Get("Accept"),
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Token") != s.token {
			http.Error(w, "invalid token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) forcedResponse(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, body := s.status, s.body
		s.mu.Unlock()

		if status == 0 {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(status)
		if len(body) > 0 && status != http.StatusNoContent {
			_, _ = w.Write(body)
		}
	})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	var request exchange.UserRequest
	if !s.readRequest(w, r, &request) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.users {
		if known.user.Username == request.Username {
			s.writeJSON(w, known.user)
			return
		}
	}
	http.Error(w, "user not found", http.StatusNotFound)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	var request exchange.UsersRequest
	if !s.readRequest(w, r, &request) {
		return
	}

	wanted := toSet(request.Users)
	builder := exchange.NewUsersResponseBuilder()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.users {
		if _, ok := wanted[known.user.Username]; ok {
			builder.AddUser(known.user)
		}
	}
	s.writeJSON(w, builder.Build())
}

func (s *Server) handleUpdatedUsers(w http.ResponseWriter, r *http.Request) {
	var request exchange.UpdatedUsersRequest
	if !s.readRequest(w, r, &request) {
		return
	}

	wanted := toSet(request.Users)
	builder := exchange.NewUpdatedUsersResponseBuilder()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.users {
		if len(wanted) > 0 {
			if _, ok := wanted[known.user.Username]; !ok {
				continue
			}
		}
		if request.Since != nil && !known.updated.After(request.Since.Time) {
			continue
		}
		builder.AddUser(known.user.Username, known.updated)
	}
	s.writeJSON(w, builder.Build())
}

func (s *Server) readRequest(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err := s.serializer.Decode(body, request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err := exchange.Validate(request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := s.serializer.Encode(v, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
