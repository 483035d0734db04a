// internal/membership/handler.go
package membership

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves membership routes.
type Handler struct {
	Repo *Repository
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// Create handles POST /memberships.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto CreateMembershipDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	m := Membership{
		StudentID:          dto.StudentID,
		OfferID:            dto.OfferID,
		Price:              dto.Price,
		Subjects:           dto.Subjects,
		Percentages:        dto.Percentages,
		TeacherAssignments: dto.TeacherAssignments,
	}
	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := h.Repo.Create(&m); err != nil {
		http.Error(w, "could not create membership", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(m)
}

// List handles GET /memberships. Accepts an optional studentId query param.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []Membership
		err  error
	)
	if s := r.URL.Query().Get("studentId"); s != "" {
		studentID, convErr := strconv.Atoi(s)
		if convErr != nil {
			http.Error(w, "invalid studentId", http.StatusBadRequest)
			return
		}
		list, err = h.Repo.ListByStudent(uint(studentID))
	} else {
		list, err = h.Repo.List()
	}
	if err != nil {
		http.Error(w, "could not fetch memberships", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /memberships/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid membership ID", http.StatusBadRequest)
		return
	}

	m, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "membership not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// Update handles PUT /memberships/{id}. Existing invoices keep the share
// snapshot taken at their creation, so this only affects future invoices.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid membership ID", http.StatusBadRequest)
		return
	}

	m, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "membership not found", http.StatusNotFound)
		return
	}

	var dto CreateMembershipDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	m.StudentID = dto.StudentID
	m.OfferID = dto.OfferID
	m.Price = dto.Price
	m.Subjects = dto.Subjects
	m.Percentages = dto.Percentages
	m.TeacherAssignments = dto.TeacherAssignments

	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := h.Repo.Update(m); err != nil {
		http.Error(w, "could not update membership", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// Delete handles DELETE /memberships/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid membership ID", http.StatusBadRequest)
		return
	}

	m, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "membership not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch membership", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.Delete(m); err != nil {
		http.Error(w, "could not delete membership", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
