// internal/offer/handler.go
package offer

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves offer routes.
type Handler struct {
	DB *gorm.DB
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Create handles POST /offers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var o Offer
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if o.Name == "" || len(o.Subjects) == 0 {
		http.Error(w, "name and subjects are required", http.StatusUnprocessableEntity)
		return
	}
	if o.Price.IsNegative() {
		http.Error(w, "price cannot be negative", http.StatusUnprocessableEntity)
		return
	}
	if err := h.DB.Create(&o).Error; err != nil {
		http.Error(w, "could not create offer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(o)
}

// List handles GET /offers; active=true narrows to the live catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("name ASC")
	if r.URL.Query().Get("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var list []Offer
	if err := q.Find(&list).Error; err != nil {
		http.Error(w, "could not fetch offers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /offers/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid offer ID", http.StatusBadRequest)
		return
	}

	var o Offer
	if err := h.DB.First(&o, id).Error; err != nil {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(o)
}

// Update handles PUT /offers/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid offer ID", http.StatusBadRequest)
		return
	}

	var o Offer
	if err := h.DB.First(&o, id).Error; err != nil {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}

	var payload Offer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	o.Name = payload.Name
	o.Subjects = payload.Subjects
	o.Price = payload.Price
	o.Active = payload.Active
	o.SchoolID = payload.SchoolID

	if err := h.DB.Save(&o).Error; err != nil {
		http.Error(w, "could not update offer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(o)
}

// Delete handles DELETE /offers/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid offer ID", http.StatusBadRequest)
		return
	}

	res := h.DB.Delete(&Offer{}, id)
	if res.Error != nil {
		http.Error(w, "could not delete offer", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
