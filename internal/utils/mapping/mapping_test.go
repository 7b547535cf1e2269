package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/SscSPs/returns_management_app/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelReturn_EmptyLinksBecomeNull(t *testing.T) {
	d := domain.ReturnRecord{
		ID:          "ret-1",
		Type:        domain.ExpenseReturn,
		Status:      domain.ReturnPending,
		ExpenseID:   "exp-1",
		TotalAmount: decimal.RequireFromString("12.50"),
	}

	m := ToModelReturn(d)
	assert.Nil(t, m.PurchaseID)
	assert.Nil(t, m.SupplierID)
	assert.Nil(t, m.ManualReference)
	require.NotNil(t, m.ExpenseID)
	assert.Equal(t, "exp-1", *m.ExpenseID)
	assert.Equal(t, "EXPENSE", m.ReturnType)
}

func TestToDomainReturn_NullLinksBecomeEmpty(t *testing.T) {
	po := "po-1"
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	m := models.ReturnRecord{
		ReturnID:   "ret-1",
		ReturnType: "PURCHASE",
		Status:     "COMPLETED",
		PurchaseID: &po,
		CreatedAt:  &created,
	}

	d := ToDomainReturn(m)
	assert.Equal(t, "po-1", d.PurchaseID)
	assert.Empty(t, d.SupplierID)
	assert.Equal(t, domain.ReturnCompleted, d.Status)
	assert.True(t, d.AffectsPurchaseOrder())
	assert.Equal(t, &created, d.CreatedAt)
}

func TestToDomainPurchaseOrder_KeepsPayload(t *testing.T) {
	raw := []byte(`[{"id":"line-a"}]`)
	m := models.PurchaseOrder{PurchaseOrderID: "po-1", Items: raw, Version: 3}

	d := ToDomainPurchaseOrder(m)
	assert.Equal(t, "po-1", d.ID)
	assert.Equal(t, 3, d.Version)
	assert.JSONEq(t, string(raw), string(d.ItemsPayload))
}
