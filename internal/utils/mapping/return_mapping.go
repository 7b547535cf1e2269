package mapping

import (
	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/SscSPs/returns_management_app/internal/models"
)

// ToModelReturn converts a domain ReturnRecord to a model ReturnRecord.
// The items column is encoded by the repository.
func ToModelReturn(d domain.ReturnRecord) models.ReturnRecord {
	return models.ReturnRecord{
		ReturnID:         d.ID,
		ReturnType:       string(d.Type),
		Status:           string(d.Status),
		Reason:           d.Reason,
		PurchaseID:       optional(d.PurchaseID),
		SupplierID:       optional(d.SupplierID),
		ExpenseID:        optional(d.ExpenseID),
		IsManual:         d.IsManual,
		ManualReference:  optional(d.ManualReference),
		ManualDate:       d.ManualDate,
		ManualSupplierID: optional(d.ManualSupplierID),
		TotalAmount:      d.TotalAmount,
		BaseAmount:       d.BaseAmount,
		TaxAmount:        d.TaxAmount,
		RemainingAmount:  d.RemainingAmount,
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
		LastUpdatedAt:    d.LastUpdatedAt,
		LastUpdatedBy:    d.LastUpdatedBy,
	}
}

// ToDomainReturn converts a model ReturnRecord to a domain ReturnRecord without its items.
func ToDomainReturn(m models.ReturnRecord) domain.ReturnRecord {
	return domain.ReturnRecord{
		ID:               m.ReturnID,
		Type:             domain.ReturnType(m.ReturnType),
		Status:           domain.ReturnStatus(m.Status),
		Reason:           m.Reason,
		PurchaseID:       deref(m.PurchaseID),
		SupplierID:       deref(m.SupplierID),
		ExpenseID:        deref(m.ExpenseID),
		IsManual:         m.IsManual,
		ManualReference:  deref(m.ManualReference),
		ManualDate:       m.ManualDate,
		ManualSupplierID: deref(m.ManualSupplierID),
		TotalAmount:      m.TotalAmount,
		BaseAmount:       m.BaseAmount,
		TaxAmount:        m.TaxAmount,
		RemainingAmount:  m.RemainingAmount,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
		LastUpdatedAt:    m.LastUpdatedAt,
		LastUpdatedBy:    m.LastUpdatedBy,
	}
}

// ToDomainStatusSummary converts summary rows to their domain form.
func ToDomainStatusSummary(ms []models.ReturnStatusCount) []domain.ReturnStatusSummary {
	ds := make([]domain.ReturnStatusSummary, len(ms))
	for i, m := range ms {
		ds[i] = domain.ReturnStatusSummary{
			Status:      domain.ReturnStatus(m.Status),
			Count:       m.Count,
			TotalAmount: m.TotalAmount,
		}
	}
	return ds
}
