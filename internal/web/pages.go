package web

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"task-pwa/internal/identity"
	"task-pwa/internal/model"
	"task-pwa/internal/service"
)

type pageVM struct {
	Title    string
	Username string
}

type indexVM struct {
	pageVM
	Tasks []model.Task
}

type addVM struct {
	pageVM
	Task  string
	Error string
}

func newPageVM(r *http.Request, title string) pageVM {
	vm := pageVM{Title: title}
	if user, ok := identity.FromContext(r.Context()); ok {
		vm.Username = user.Username
	}
	return vm
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListTasks(r.Context())
	if err != nil {
		log.Printf("list tasks: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.render(w, "index", indexVM{pageVM: newPageVM(r, "Tasks"), Tasks: tasks})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	vm := addVM{pageVM: newPageVM(r, "Add Task")}
	if r.Method != http.MethodPost {
		s.render(w, "add", vm)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	vm.Task = r.PostForm.Get("task")

	task, err := s.tasks.CreateTask(r.Context(), vm.Task)
	if errors.Is(err, service.ErrValidation) {
		vm.Error = "This field is required."
		if errors.Is(err, service.ErrNameTooLong) {
			vm.Error = fmt.Sprintf("Ensure this value has at most %d characters.", service.MaxTaskNameLength)
		}
		s.render(w, "add", vm)
		return
	}
	if err != nil {
		log.Printf("create task: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Printf("[info] task %d created from form", task.ID)
	http.Redirect(w, r, "/tasks/", http.StatusFound)
}
