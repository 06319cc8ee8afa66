package domain

import (
	"time"

	"github.com/google/uuid"
)

// Billing document statuses.
const (
	BillingDraft  = "draft"
	BillingIssued = "issued"
	BillingVoid   = "void"
)

// Billing document kinds.
const (
	KindEstimate = "estimate"
	KindInvoice  = "invoice"
)

// BillingDoc is an estimate or invoice header.
type BillingDoc struct {
	ID           uuid.UUID  `json:"id"`
	StoreID      *uuid.UUID `json:"store_id,omitempty"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	Kind         string     `json:"kind"`
	Status       string     `json:"status"`
	DocNo        string     `json:"doc_no,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
	Subtotal     int        `json:"subtotal"`
	TaxTotal     int        `json:"tax_total"`
	Total        int        `json:"total"`
	IssuedAt     *time.Time `json:"issued_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Voidable reports whether the API accepts a void request for the document.
// Only issued invoices can be voided.
func (b BillingDoc) Voidable() bool {
	return b.Kind == KindInvoice && b.Status == BillingIssued
}

// Label is the document number, or a short id for drafts without one.
func (b BillingDoc) Label() string {
	if b.DocNo != "" {
		return b.DocNo
	}
	return b.ID.String()[:8]
}

// BillingLine is one line of a billing document.
type BillingLine struct {
	ID        uuid.UUID  `json:"id"`
	WorkID    *uuid.UUID `json:"work_id,omitempty"`
	Name      string     `json:"name"`
	Qty       float64    `json:"qty"`
	Unit      string     `json:"unit,omitempty"`
	UnitPrice int        `json:"unit_price"`
	CostPrice int        `json:"cost_price"`
	Amount    int        `json:"amount"`
	SortOrder int        `json:"sort_order"`
}

// BillingDetail is a document with its lines.
type BillingDetail struct {
	BillingDoc
	Lines []BillingLine `json:"lines"`
}

// BillingFilter narrows ListBilling. Empty fields are not sent.
type BillingFilter struct {
	Status string
	Kind   string
	Limit  int
	Offset int
}
