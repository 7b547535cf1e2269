package services

import (
	portsrepo "github.com/SscSPs/returns_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/returns_management_app/internal/core/ports/services"
	"github.com/SscSPs/returns_management_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Return = NewReturnService(
		repos.ReturnRepo,
		repos.PurchaseOrderRepo,
		repos.SupplierRepo,
		WithReturnMetrics(m),
	)
	container.PurchaseOrder = NewPurchaseOrderService(repos.PurchaseOrderRepo, repos.ReturnRepo)

	return container
}
