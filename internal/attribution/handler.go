// internal/attribution/handler.go
package attribution

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves teacher-earnings routes.
type Handler struct {
	Repo *Repository
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

func parseFilter(r *http.Request) (EarningsFilter, error) {
	var f EarningsFilter
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.From = t
	}
	if s := q.Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.To = t
	}
	if s := q.Get("schoolId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return f, err
		}
		f.SchoolID = uint(id)
	}
	if s := q.Get("classId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return f, err
		}
		f.ClassID = uint(id)
	}
	return f, nil
}

// Earnings handles GET /teachers/{id}/earnings.
// Query params: from, to (YYYY-MM-DD, half-open), schoolId, classId,
// detail=true for the per-student breakdown.
func (h *Handler) Earnings(w http.ResponseWriter, r *http.Request) {
	teacherID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid teacher ID", http.StatusBadRequest)
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, "invalid filter parameters", http.StatusBadRequest)
		return
	}

	total, err := h.Repo.SumEarnings(uint(teacherID), filter)
	if err != nil {
		http.Error(w, "could not compute earnings", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"teacherId": teacherID,
		"total":     total,
	}
	if r.URL.Query().Get("detail") == "true" {
		lines, err := h.Repo.EarningsBreakdown(uint(teacherID), filter)
		if err != nil {
			http.Error(w, "could not compute earnings breakdown", http.StatusInternalServerError)
			return
		}
		resp["lines"] = lines
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// InvoiceShares handles GET /invoices/{id}/shares: the attribution audit
// trail of one invoice.
func (h *Handler) InvoiceShares(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListByInvoice(uint(invoiceID))
	if err != nil {
		http.Error(w, "could not fetch shares", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
