// internal/invoice/handler.go
package invoice

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/billing"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/membership"
)

// Handler serves invoice routes.
type Handler struct {
	Repo       *Repository
	Members    *membership.Repository
	Calculator *billing.Calculator
}

// NewHandler returns a new Handler on the system clock.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		Repo:       NewRepository(db),
		Members:    membership.NewRepository(db),
		Calculator: billing.NewCalculator(),
	}
}

// Create handles POST /memberships/{id}/invoices.
//
// Runs the billing calculator over the selection, then persists the invoice
// plus the per-subject share snapshot in one transaction.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid membership ID", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var dto CreateInvoiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	member, err := h.Members.FindByID(uint(memberID))
	if err != nil {
		http.Error(w, "membership not found", http.StatusNotFound)
		return
	}

	draft, err := h.Calculator.Compute(member.Price, billing.Selection{
		Months:              dto.Months,
		IncludePartialMonth: dto.IncludePartialMonth,
	})
	if err != nil {
		// Validation errors are user-correctable; surface them verbatim.
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	inv := Invoice{
		MembershipID:        member.ID,
		StudentID:           member.StudentID,
		OfferID:             member.OfferID,
		BillDate:            draft.BillDate,
		EndDate:             draft.EndDate,
		SelectedMonths:      draft.Months,
		IncludePartialMonth: draft.IncludePartial,
		PartialMonthAmount:  draft.PartialMonthAmount,
		TotalAmount:         draft.TotalAmount,
		AmountPaid:          decimal.Zero,
		Rest:                draft.TotalAmount,
		Shares:              SnapshotShares(member),
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.WithDB(tx).Create(&inv); err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not create invoice", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not commit transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(inv)
}

// SnapshotShares freezes the membership's current percentage and assignment
// maps into invoice share lines, one per subject.
func SnapshotShares(m *membership.Membership) []Share {
	shares := make([]Share, 0, len(m.Subjects))
	for _, subject := range m.Subjects {
		shares = append(shares, Share{
			Subject:    subject,
			TeacherID:  m.TeacherAssignments[subject],
			Percentage: m.Percentages[subject],
		})
	}
	return shares
}

// List handles GET /invoices with optional membershipId/studentId filters,
// and GET /invoices?unpaid=true for the collections view.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []Invoice
		err  error
	)
	q := r.URL.Query()
	switch {
	case q.Get("membershipId") != "":
		var id int
		if id, err = strconv.Atoi(q.Get("membershipId")); err != nil {
			http.Error(w, "invalid membershipId", http.StatusBadRequest)
			return
		}
		list, err = h.Repo.ListByMembership(uint(id))
	case q.Get("studentId") != "":
		var id int
		if id, err = strconv.Atoi(q.Get("studentId")); err != nil {
			http.Error(w, "invalid studentId", http.StatusBadRequest)
			return
		}
		list, err = h.Repo.ListByStudent(uint(id))
	case q.Get("unpaid") == "true":
		list, err = h.Repo.ListUnpaid()
	default:
		err = h.Repo.DB.Preload("Shares").Order("bill_date DESC").Find(&list).Error
	}
	if err != nil {
		http.Error(w, "could not fetch invoices", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /invoices/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	inv, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inv)
}

// Delete handles DELETE /invoices/{id}. Paid invoices are kept for audit.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	inv, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch invoice", http.StatusInternalServerError)
		return
	}
	if inv.AmountPaid.IsPositive() {
		http.Error(w, "invoice has recorded payments and cannot be deleted", http.StatusConflict)
		return
	}

	if err := h.Repo.Delete(inv); err != nil {
		http.Error(w, "could not delete invoice", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
