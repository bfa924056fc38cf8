// Package web serves the task pages and the JSON task API.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	"task-pwa/internal/identity"
	"task-pwa/internal/model"
	"task-pwa/internal/service"
)

//go:embed templates/*.html static/*.js
var assetsFS embed.FS

// TaskStore is the persistence surface the handlers need.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	CreateTask(ctx context.Context, name string) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, patch service.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
}

// Server holds the handlers' dependencies.
type Server struct {
	tasks     TaskStore
	jwtSecret []byte
	tmpl      *template.Template
	worker    []byte
}

func NewServer(tasks TaskStore, jwtSecret string) (*Server, error) {
	tmpl, err := template.New("base").ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	worker, err := assetsFS.ReadFile("static/service-worker.js")
	if err != nil {
		return nil, fmt.Errorf("read service worker: %w", err)
	}
	return &Server{
		tasks:     tasks,
		jwtSecret: []byte(jwtSecret),
		tmpl:      tmpl,
		worker:    worker,
	}, nil
}

// Handler returns the full route table wrapped in request logging and
// identity middleware.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/tasks/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/tasks/add", sameOrigin(http.HandlerFunc(s.handleAdd))).Methods(http.MethodGet, http.MethodHead, http.MethodPost)

	// No CSRF check on the JSON API. Non-browser clients and the offline
	// sync worker post here without a token; a check breaks them.
	r.HandleFunc("/tasks/api/tasks/", s.handleListTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks/api/tasks/{id:[0-9]+}/", s.handleGetTask).Methods(http.MethodGet)
	r.HandleFunc("/tasks/api/tasks/create/", s.handleCreateTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/api/tasks/update/{id:[0-9]+}/", s.handleUpdateTask).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/tasks/api/tasks/delete/{id:[0-9]+}/", s.handleDeleteTask).Methods(http.MethodDelete)

	r.HandleFunc("/users/", s.handleCurrentUser).Methods(http.MethodGet)
	r.HandleFunc("/service-worker.js", s.handleServiceWorker).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = methodNotAllowed(r)

	return requestLogger(identity.Middleware(s.jwtSecret)(r))
}

// methodNotAllowed answers 405 and lists the verbs the path does accept.
func methodNotAllowed(router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen := make(map[string]bool)
		_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			var match mux.RouteMatch
			if route.Match(r, &match) || match.MatchErr == mux.ErrMethodMismatch {
				methods, err := route.GetMethods()
				if err != nil {
					return nil
				}
				for _, m := range methods {
					seen[m] = true
				}
			}
			return nil
		})
		allowed := make([]string, 0, len(seen))
		for m := range seen {
			allowed = append(allowed, m)
		}
		sort.Strings(allowed)
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
}

func (s *Server) handleServiceWorker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	_, _ = w.Write(s.worker)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.FromContext(r.Context())
	if !ok {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"id":            user.ID,
		"username":      user.Username,
	})
}
