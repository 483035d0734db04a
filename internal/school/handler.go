// internal/school/handler.go
package school

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves school routes.
type Handler struct {
	DB *gorm.DB
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Create handles POST /schools.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var s School
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if s.Name == "" {
		http.Error(w, "name is required", http.StatusUnprocessableEntity)
		return
	}
	if err := h.DB.Create(&s).Error; err != nil {
		http.Error(w, "could not create school", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s)
}

// List handles GET /schools.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var list []School
	if err := h.DB.Order("name ASC").Find(&list).Error; err != nil {
		http.Error(w, "could not fetch schools", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /schools/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid school ID", http.StatusBadRequest)
		return
	}

	var s School
	if err := h.DB.First(&s, id).Error; err != nil {
		http.Error(w, "school not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Update handles PUT /schools/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid school ID", http.StatusBadRequest)
		return
	}

	var s School
	if err := h.DB.First(&s, id).Error; err != nil {
		http.Error(w, "school not found", http.StatusNotFound)
		return
	}

	var payload School
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	s.Name = payload.Name
	s.Address = payload.Address
	s.Phone = payload.Phone

	if err := h.DB.Save(&s).Error; err != nil {
		http.Error(w, "could not update school", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Delete handles DELETE /schools/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid school ID", http.StatusBadRequest)
		return
	}

	res := h.DB.Delete(&School{}, id)
	if res.Error != nil {
		http.Error(w, "could not delete school", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "school not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
