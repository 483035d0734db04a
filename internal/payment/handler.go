// internal/payment/handler.go
package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/attribution"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/invoice"
)

// Handler serves payment-recording routes.
type Handler struct {
	Repo     *Repository
	Invoices *invoice.Repository
	Shares   *attribution.Repository
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		Repo:     NewRepository(db),
		Invoices: invoice.NewRepository(db),
		Shares:   attribution.NewRepository(db),
	}
}

// RecordPaymentDTO is the payload for recording cash against an invoice.
// EventID is optional; when absent one is generated and returned, and the
// caller should persist it for replay protection on retries.
type RecordPaymentDTO struct {
	EventID string          `json:"eventId"`
	Amount  decimal.Decimal `json:"amount"`
	PaidAt  string          `json:"paidAt"` // RFC3339; defaults to now
	Method  string          `json:"method"`
}

// Record handles POST /invoices/{id}/payments.
//
// In one transaction: append the payment event, bump the invoice's cash
// counters, distribute the delta over the invoice's share snapshot and
// append the resulting TeacherShare rows. Concurrent calls for the same
// invoice are serialized by the row lock RegisterPayment takes inside the
// transaction; the counters are recomputed from the locked row, not from
// the invoice read above.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var dto RecordPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if !dto.Amount.IsPositive() {
		http.Error(w, "payment amount must be positive", http.StatusUnprocessableEntity)
		return
	}
	paidAt := time.Now()
	if dto.PaidAt != "" {
		if paidAt, err = time.Parse(time.RFC3339, dto.PaidAt); err != nil {
			http.Error(w, "invalid paidAt date", http.StatusBadRequest)
			return
		}
	}
	if dto.EventID == "" {
		dto.EventID = uuid.NewString()
	}

	inv, err := h.Invoices.FindByID(uint(invoiceID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch invoice", http.StatusInternalServerError)
		return
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}

	p := Payment{
		EventID:   dto.EventID,
		InvoiceID: inv.ID,
		Amount:    dto.Amount,
		PaidAt:    paidAt,
		Method:    dto.Method,
	}
	if err := h.Repo.WithDB(tx).Create(&p); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "payment event already recorded", http.StatusConflict)
			return
		}
		http.Error(w, "could not record payment", http.StatusInternalServerError)
		return
	}

	if err := h.Invoices.RegisterPayment(tx, inv, dto.Amount, paidAt); err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not update invoice", http.StatusInternalServerError)
		return
	}

	deltas := attribution.Distribute(inv.Shares, dto.Amount)
	shares := make([]*attribution.TeacherShare, 0, len(deltas))
	for _, d := range deltas {
		shares = append(shares, &attribution.TeacherShare{
			PaymentID:  p.ID,
			InvoiceID:  inv.ID,
			TeacherID:  d.TeacherID,
			Subject:    d.Subject,
			Percentage: d.Percentage,
			Amount:     d.Amount,
			PaidAt:     paidAt,
		})
	}
	if err := h.Shares.WithDB(tx).CreateInBatch(shares); err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not record teacher shares", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not commit transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"payment": p,
		"invoice": inv,
		"deltas":  deltas,
	})
}

// ListByInvoice handles GET /invoices/{id}/payments.
func (h *Handler) ListByInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListByInvoice(uint(invoiceID))
	if err != nil {
		http.Error(w, "could not fetch payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
