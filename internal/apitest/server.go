// Package apitest provides an in-memory stand-in for the student directory
// API, served over httptest for client and controller tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/idilsaglam/roster/internal/model"
)

// Store is the fake backend. Students keep insertion order.
type Store struct {
	mu       sync.Mutex
	students []model.Student
	fail     map[string]int // "METHOD /pattern" -> forced status
	calls    []string
}

// NewStore seeds a store with the given students. Seeds without an id get one.
func NewStore(seed ...model.Student) *Store {
	s := &Store{fail: map[string]int{}}
	for _, st := range seed {
		if st.ID == "" {
			st.ID = uuid.NewString()
		}
		s.students = append(s.students, st)
	}
	return s
}

// Students returns a copy of the stored records.
func (s *Store) Students() []model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Student(nil), s.students...)
}

// Calls returns the "METHOD path" of every request served so far.
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// FailWith forces route (e.g. "DELETE /{id}") to answer with status.
func (s *Store) FailWith(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[route] = status
}

// Router mounts the API under /api/students.
func (s *Store) Router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/students", func(r chi.Router) {
		r.Get("/fetch", s.guard("GET /fetch", s.list))
		r.Post("/insert", s.guard("POST /insert", s.insert))
		r.Put("/{id}", s.guard("PUT /{id}", s.update))
		r.Delete("/{id}", s.guard("DELETE /{id}", s.remove))
	})
	return r
}

// Serve starts an httptest server and returns it with the API base URL.
func (s *Store) Serve() (*httptest.Server, string) {
	srv := httptest.NewServer(s.Router())
	return srv, srv.URL + "/api/students"
}

func (s *Store) guard(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		status, forced := s.fail[route]
		s.mu.Unlock()
		if forced {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next(w, r)
	}
}

func (s *Store) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Students())
}

func (s *Store) insert(w http.ResponseWriter, r *http.Request) {
	var f model.Fields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	st := model.Student{
		ID:          uuid.NewString(),
		Name:        f.Name,
		Age:         f.Age,
		ClassName:   f.ClassName,
		PhoneNumber: f.PhoneNumber,
	}
	s.mu.Lock()
	s.students = append(s.students, st)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, st)
}

func (s *Store) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var f model.Fields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.students {
		if s.students[i].ID == id {
			s.students[i] = model.Student{
				ID:          id,
				Name:        f.Name,
				Age:         f.Age,
				ClassName:   f.ClassName,
				PhoneNumber: f.PhoneNumber,
			}
			writeJSON(w, http.StatusOK, s.students[i])
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Store) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.students {
		if s.students[i].ID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
