// internal/invoice/dto.go
package invoice

import "github.com/AyoubEttalbi/Tikoschool-sub000/internal/billing"

// CreateInvoiceDTO is the payload for billing a membership: a set of month
// checkboxes plus the partial-month toggle, straight from the UI.
type CreateInvoiceDTO struct {
	Months              []billing.YearMonth `json:"months"`
	IncludePartialMonth bool                `json:"includePartialMonth"`
}
