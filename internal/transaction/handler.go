// internal/transaction/handler.go
package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Handler serves transaction routes.
type Handler struct {
	Repo *Repository
}

// NewHandler returns a new Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// CreateTransactionDTO is the payload for appending a cash movement.
type CreateTransactionDTO struct {
	UserID          uint            `json:"userId"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     string          `json:"paymentDate"` // RFC3339; defaults to now
	Description     string          `json:"description"`
	IsRecurring     bool            `json:"isRecurring"`
	NextPaymentDate string          `json:"nextPaymentDate"`
}

// Create handles POST /transactions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if !ValidType(dto.Type) {
		http.Error(w, ErrInvalidType.Error(), http.StatusUnprocessableEntity)
		return
	}
	if dto.Amount.IsNegative() {
		http.Error(w, "amount cannot be negative", http.StatusUnprocessableEntity)
		return
	}

	paymentDate := time.Now()
	if dto.PaymentDate != "" {
		var err error
		if paymentDate, err = time.Parse(time.RFC3339, dto.PaymentDate); err != nil {
			http.Error(w, "invalid paymentDate", http.StatusBadRequest)
			return
		}
	}

	t := Transaction{
		UserID:      dto.UserID,
		Type:        dto.Type,
		Amount:      dto.Amount,
		PaymentDate: paymentDate,
		Description: dto.Description,
		IsRecurring: dto.IsRecurring,
	}
	if dto.IsRecurring {
		next := paymentDate.AddDate(0, 1, 0)
		if dto.NextPaymentDate != "" {
			parsed, err := time.Parse(time.RFC3339, dto.NextPaymentDate)
			if err != nil {
				http.Error(w, "invalid nextPaymentDate", http.StatusBadRequest)
				return
			}
			next = parsed
		}
		t.NextPaymentDate = &next
	}

	if err := h.Repo.Create(&t); err != nil {
		http.Error(w, "could not create transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(t)
}

// List handles GET /transactions with an optional userId filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []Transaction
		err  error
	)
	if s := r.URL.Query().Get("userId"); s != "" {
		userID, convErr := strconv.Atoi(s)
		if convErr != nil {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}
		list, err = h.Repo.ListByUser(uint(userID))
	} else {
		err = h.Repo.DB.Order("payment_date DESC").Find(&list).Error
	}
	if err != nil {
		http.Error(w, "could not fetch transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /transactions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	t, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

// Delete handles DELETE /transactions/{id} (administrative correction).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	t, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch transaction", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.Delete(t); err != nil {
		http.Error(w, "could not delete transaction", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Recur handles POST /transactions/recur: materializes due recurring
// transactions now. The same roll runs monthly from cron.
func (h *Handler) Recur(w http.ResponseWriter, r *http.Request) {
	rolled, err := RollRecurring(h.Repo.DB, time.Now())
	if err != nil {
		http.Error(w, "could not roll recurring transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"rolled": rolled})
}
