package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/returns_management_app/internal/apperrors"
	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// amountTolerance is how far totalAmount may drift from baseAmount + taxAmount.
var amountTolerance = decimal.RequireFromString("0.01")

// prepareReturn trims and rounds the caller's input, recomputes line totals and fills the
// base amount when neither base nor tax was supplied. newID names lines that arrive without
// an id. On a return linked to a purchase order a line's own id doubles as its source item id.
func prepareReturn(rec *domain.ReturnRecord, newID func() string) {
	rec.Reason = strings.TrimSpace(rec.Reason)
	rec.PurchaseID = strings.TrimSpace(rec.PurchaseID)
	rec.SupplierID = strings.TrimSpace(rec.SupplierID)
	rec.ExpenseID = strings.TrimSpace(rec.ExpenseID)
	rec.ManualReference = strings.TrimSpace(rec.ManualReference)
	rec.ManualSupplierID = strings.TrimSpace(rec.ManualSupplierID)
	if rec.Notes != nil {
		notes := strings.TrimSpace(*rec.Notes)
		if notes == "" {
			rec.Notes = nil
		} else {
			rec.Notes = &notes
		}
	}

	rec.TotalAmount = domain.RoundMoney(rec.TotalAmount)
	rec.BaseAmount = domain.RoundMoney(rec.BaseAmount)
	rec.TaxAmount = domain.RoundMoney(rec.TaxAmount)
	if rec.BaseAmount.IsZero() && rec.TaxAmount.IsZero() {
		rec.BaseAmount = rec.TotalAmount
	}

	linked := rec.AffectsPurchaseOrder()
	for i := range rec.Items {
		item := &rec.Items[i]
		item.ID = strings.TrimSpace(item.ID)
		item.SourceItemID = strings.TrimSpace(item.SourceItemID)
		item.Description = strings.TrimSpace(item.Description)
		if linked && item.SourceItemID == "" {
			item.SourceItemID = item.ID
		}
		if item.ID == "" {
			if item.SourceItemID != "" {
				item.ID = item.SourceItemID
			} else {
				item.ID = newID()
			}
		}
		item.RecomputeTotal()
	}
}

// validateReturn checks a prepared record. Every failure wraps apperrors.ErrValidation.
func validateReturn(rec domain.ReturnRecord) error {
	if !rec.Type.IsValid() {
		return fmt.Errorf("%w: unknown return type %q", apperrors.ErrValidation, rec.Type)
	}

	switch {
	case rec.IsManual:
		if rec.ManualReference == "" {
			return fmt.Errorf("%w: manual returns need a manual reference", apperrors.ErrValidation)
		}
	case rec.Type == domain.PurchaseReturn:
		if rec.PurchaseID == "" {
			return fmt.Errorf("%w: select a purchase order or enter a manual reference", apperrors.ErrValidation)
		}
	case rec.Type == domain.ExpenseReturn:
		if rec.ExpenseID == "" {
			return fmt.Errorf("%w: select an expense or enter a manual reference", apperrors.ErrValidation)
		}
	}

	if rec.Reason == "" {
		return fmt.Errorf("%w: reason is required", apperrors.ErrValidation)
	}
	if !rec.TotalAmount.IsPositive() {
		return fmt.Errorf("%w: total amount must be greater than zero", apperrors.ErrValidation)
	}
	if rec.BaseAmount.IsNegative() || rec.TaxAmount.IsNegative() {
		return fmt.Errorf("%w: base and tax amounts cannot be negative", apperrors.ErrValidation)
	}
	if diff := rec.TotalAmount.Sub(rec.BaseAmount.Add(rec.TaxAmount)).Abs(); diff.GreaterThan(amountTolerance) {
		return fmt.Errorf("%w: total amount %s does not match base %s plus tax %s",
			apperrors.ErrValidation, rec.TotalAmount, rec.BaseAmount, rec.TaxAmount)
	}
	if rec.RemainingAmount.IsNegative() || rec.RemainingAmount.GreaterThan(rec.TotalAmount) {
		return fmt.Errorf("%w: remaining amount must be between zero and the total", apperrors.ErrValidation)
	}

	for i, item := range rec.Items {
		if item.Quantity.IsNegative() {
			return fmt.Errorf("%w: item %d has a negative quantity", apperrors.ErrValidation, i+1)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d has a negative unit price", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}
