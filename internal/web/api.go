package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"task-pwa/internal/model"
	"task-pwa/internal/service"
)

const maxBodyBytes = 1 << 20

type taskJSON struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type createdTaskJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type createTaskRequest struct {
	Task *string `json:"task"`
}

type updateTaskRequest struct {
	Name      *string `json:"name"`
	Completed *bool   `json:"completed"`
}

func toTaskJSON(t *model.Task) taskJSON {
	return taskJSON{ID: t.ID, Name: t.Name, Completed: t.Completed}
}

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeJSON reads exactly one JSON value from the body. An empty body
// decodes as an empty object.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// nameError picks the 400 message for a rejected task name.
func nameError(err error, emptyMessage string) string {
	if errors.Is(err, service.ErrNameTooLong) {
		return fmt.Sprintf("Task name must be at most %d characters.", service.MaxTaskNameLength)
	}
	return emptyMessage
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListTasks(r.Context())
	if err != nil {
		log.Printf("list tasks: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve tasks.")
		return
	}

	out := make([]taskJSON, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskJSON(&tasks[i]))
	}
	respondWithJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	task, err := s.tasks.GetTask(r.Context(), id)
	if err != nil {
		s.storeError(w, r, "get task", err)
		return
	}
	respondWithJSON(w, http.StatusOK, toTaskJSON(task))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if req.Task == nil {
		respondWithError(w, http.StatusBadRequest, "Task content not provided.")
		return
	}

	task, err := s.tasks.CreateTask(r.Context(), *req.Task)
	if errors.Is(err, service.ErrValidation) {
		respondWithError(w, http.StatusBadRequest, nameError(err, "Task content not provided."))
		return
	}
	if err != nil {
		s.storeError(w, r, "create task", err)
		return
	}

	log.Printf("[info] task %d created", task.ID)
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task added successfully",
		"task":    createdTaskJSON{ID: task.ID, Name: task.Name},
	})
}

// handleUpdateTask merges the body into the stored task. Fields left out of
// the body keep their current value.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	// Unknown ids answer 404 before the body is looked at.
	if _, err := s.tasks.GetTask(r.Context(), id); err != nil {
		s.storeError(w, r, "get task", err)
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	task, err := s.tasks.UpdateTask(r.Context(), id, service.TaskPatch{
		Name:      req.Name,
		Completed: req.Completed,
	})
	if errors.Is(err, service.ErrValidation) {
		respondWithError(w, http.StatusBadRequest, nameError(err, "Task name must not be empty."))
		return
	}
	if err != nil {
		s.storeError(w, r, "update task", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    toTaskJSON(task),
	})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.tasks.DeleteTask(r.Context(), id); err != nil {
		s.storeError(w, r, "delete task", err)
		return
	}

	log.Printf("[info] task %d deleted", id)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully."})
}

// storeError maps a store failure onto a response: 404 for unknown ids,
// 500 for everything else.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	log.Printf("%s: %v", op, err)
	respondWithError(w, http.StatusInternalServerError, "Internal server error.")
}
