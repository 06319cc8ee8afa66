package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestBillingVoidable(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		status string
		want   bool
	}{
		{"issued invoice", KindInvoice, BillingIssued, true},
		{"draft invoice", KindInvoice, BillingDraft, false},
		{"void invoice", KindInvoice, BillingVoid, false},
		{"issued estimate", KindEstimate, BillingIssued, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := BillingDoc{Kind: tt.kind, Status: tt.status}
			if got := doc.Voidable(); got != tt.want {
				t.Errorf("Voidable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBillingLabel(t *testing.T) {
	id := uuid.MustParse("0b9f3c2e-1111-2222-3333-444455556666")
	if got := (BillingDoc{ID: id, DocNo: "INV-0001"}).Label(); got != "INV-0001" {
		t.Errorf("Label() = %q, want %q", got, "INV-0001")
	}
	if got := (BillingDoc{ID: id}).Label(); got != "0b9f3c2e" {
		t.Errorf("Label() = %q, want %q", got, "0b9f3c2e")
	}
}
