// internal/student/handler.go
package student

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves student routes.
type Handler struct {
	Repo *Repository
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// Create handles POST /students.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var s Student
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if s.SchoolID == 0 {
		http.Error(w, "schoolId is required", http.StatusUnprocessableEntity)
		return
	}
	if err := h.Repo.Create(&s); err != nil {
		http.Error(w, "could not create student", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s)
}

// List handles GET /students with optional schoolId/classId filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var schoolID, classID uint
	if s := r.URL.Query().Get("schoolId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid schoolId", http.StatusBadRequest)
			return
		}
		schoolID = uint(id)
	}
	if s := r.URL.Query().Get("classId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid classId", http.StatusBadRequest)
			return
		}
		classID = uint(id)
	}

	list, err := h.Repo.List(schoolID, classID)
	if err != nil {
		http.Error(w, "could not fetch students", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /students/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid student ID", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "student not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Update handles PUT /students/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid student ID", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "student not found", http.StatusNotFound)
		return
	}

	var payload Student
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	s.FirstName = payload.FirstName
	s.LastName = payload.LastName
	s.GuardianName = payload.GuardianName
	s.GuardianPhone = payload.GuardianPhone
	s.SchoolID = payload.SchoolID
	s.ClassID = payload.ClassID
	s.ClassName = payload.ClassName

	if err := h.Repo.Update(s); err != nil {
		http.Error(w, "could not update student", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Delete handles DELETE /students/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid student ID", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "student not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch student", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.Delete(s); err != nil {
		http.Error(w, "could not delete student", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
