package mapping

import (
	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/SscSPs/returns_management_app/internal/models"
)

// ToDomainPurchaseOrder converts a model PurchaseOrder to a domain PurchaseOrder.
// Items are decoded from the raw payload by the repository; the payload itself is kept as-is.
func ToDomainPurchaseOrder(m models.PurchaseOrder) domain.PurchaseOrder {
	return domain.PurchaseOrder{
		ID:              m.PurchaseOrderID,
		SupplierID:      m.SupplierID,
		Subtotal:        m.Subtotal,
		TaxRate:         m.TaxRate,
		TaxAmount:       m.TaxAmount,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		RemainingAmount: m.RemainingAmount,
		Version:         m.Version,
		ItemsPayload:    m.Items,
		AuditFields:     ToDomainAuditFields(m.AuditFields),

		TotalReturnedAmount: m.TotalReturnedAmount,
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier.
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:  m.SupplierID,
		Name:        m.Name,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
