package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/returns_management_app/internal/apperrors"
	"github.com/SscSPs/returns_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/returns_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/returns_management_app/internal/core/ports/services"
	"github.com/SscSPs/returns_management_app/internal/core/reconciliation"
	"github.com/SscSPs/returns_management_app/internal/core/saga"
	"github.com/SscSPs/returns_management_app/internal/platform/metrics"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opStatus = "change_status"
	opDelete = "delete"
)

// returnService applies return mutations and keeps supplier balances and purchase orders in
// step with them. Each mutation runs as a saga so a failed write undoes the earlier ones.
type returnService struct {
	BaseService
	returnRepo   portsrepo.ReturnRepositoryFacade
	orderRepo    portsrepo.PurchaseOrderRepositoryFacade
	supplierRepo portsrepo.SupplierRepositoryFacade
	metrics      *metrics.Metrics
	now          func() time.Time
	newID        func() string
}

// ReturnServiceOption is a functional option for configuring the return service
type ReturnServiceOption func(*returnService)

// WithReturnMetrics records mutation, reconciliation and rollback counters
func WithReturnMetrics(m *metrics.Metrics) ReturnServiceOption {
	return func(s *returnService) {
		s.metrics = m
	}
}

// WithReturnClock overrides the time source
func WithReturnClock(now func() time.Time) ReturnServiceOption {
	return func(s *returnService) {
		s.now = now
	}
}

// WithReturnIDGenerator overrides how new return and line ids are generated
func WithReturnIDGenerator(newID func() string) ReturnServiceOption {
	return func(s *returnService) {
		s.newID = newID
	}
}

// NewReturnService creates a new return service with the provided options
func NewReturnService(
	returnRepo portsrepo.ReturnRepositoryFacade,
	orderRepo portsrepo.PurchaseOrderRepositoryFacade,
	supplierRepo portsrepo.SupplierRepositoryFacade,
	options ...ReturnServiceOption,
) portssvc.ReturnSvcFacade {
	svc := &returnService{
		returnRepo:   returnRepo,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure returnService implements the ReturnSvcFacade interface
var _ portssvc.ReturnSvcFacade = (*returnService)(nil)

func (s *returnService) GetReturn(ctx context.Context, returnID string) (*domain.ReturnRecord, error) {
	if strings.TrimSpace(returnID) == "" {
		return nil, fmt.Errorf("%w: return id is required", apperrors.ErrValidation)
	}
	rec, err := s.returnRepo.FindReturnByID(ctx, returnID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get return", slog.String("return_id", returnID))
		}
		return nil, fmt.Errorf("failed to get return %s: %w", returnID, storeErr(err))
	}
	return rec, nil
}

func (s *returnService) ListReturnsByPurchaseOrder(ctx context.Context, orderID string) ([]domain.ReturnRecord, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: purchase order id is required", apperrors.ErrValidation)
	}
	records, err := s.returnRepo.ListReturnsByPurchaseID(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list returns for purchase order", slog.String("purchase_order_id", orderID))
		return nil, fmt.Errorf("failed to list returns for purchase order %s: %w", orderID, storeErr(err))
	}
	return records, nil
}

func (s *returnService) GetStatusSummary(ctx context.Context) ([]domain.ReturnStatusSummary, error) {
	summary, err := s.returnRepo.GetReturnStatusSummary(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize returns by status")
		return nil, fmt.Errorf("failed to summarize returns: %w", storeErr(err))
	}
	return summary, nil
}

// SubmitReturn creates the return when record.ID is empty and updates it otherwise.
func (s *returnService) SubmitReturn(ctx context.Context, session domain.Session, record domain.ReturnRecord) (*domain.ReturnRecord, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if strings.TrimSpace(record.ID) == "" {
		return s.createReturn(ctx, session, record)
	}
	return s.updateReturn(ctx, session, record)
}

func (s *returnService) createReturn(ctx context.Context, session domain.Session, rec domain.ReturnRecord) (*domain.ReturnRecord, error) {
	now := s.now()
	rec = rec.Clone()
	rec.ID = s.newID()
	rec.Status = domain.ReturnPending
	rec.CreatedAt = &now
	rec.CreatedBy = session.UserID
	rec.LastUpdatedAt = now
	rec.LastUpdatedBy = session.UserID

	prepareReturn(&rec, s.newID)
	if rec.RemainingAmount.IsZero() {
		rec.RemainingAmount = rec.TotalAmount
	}
	if err := validateReturn(rec); err != nil {
		s.LogWarn(ctx, "Return rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}

	sg := saga.New("create_return", s.GetLogger(ctx))
	sg.Add(saga.Step{
		Name: "write_return",
		Action: func(ctx context.Context) error {
			return storeErr(s.returnRepo.SaveReturn(ctx, rec))
		},
		Compensate: func(ctx context.Context) error {
			return s.returnRepo.DeleteReturn(ctx, rec.ID)
		},
	})
	s.addSupplierSteps(sg, session, supplierDeltas(nil, &rec))
	s.addReconcileSteps(sg, session, affectedOrders(nil, &rec))

	if err := s.run(ctx, opCreate, rec.ID, sg); err != nil {
		return nil, fmt.Errorf("failed to create return: %w", err)
	}

	s.LogInfo(ctx, "Return created", slog.String("return_id", rec.ID), slog.String("type", string(rec.Type)))
	return &rec, nil
}

func (s *returnService) updateReturn(ctx context.Context, session domain.Session, rec domain.ReturnRecord) (*domain.ReturnRecord, error) {
	prev, err := s.GetReturn(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec = rec.Clone()
	rec.Status = prev.Status
	rec.CreatedAt = prev.CreatedAt
	rec.CreatedBy = prev.CreatedBy
	rec.LastUpdatedAt = now
	rec.LastUpdatedBy = session.UserID

	prepareReturn(&rec, s.newID)
	if err := validateReturn(rec); err != nil {
		s.LogWarn(ctx, "Return update rejected by validation", slog.String("return_id", rec.ID), slog.String("error", err.Error()))
		return nil, err
	}

	previous := prev.Clone()
	sg := saga.New("update_return", s.GetLogger(ctx))
	sg.Add(saga.Step{
		Name: "write_return",
		Action: func(ctx context.Context) error {
			return storeErr(s.returnRepo.UpdateReturn(ctx, rec))
		},
		Compensate: func(ctx context.Context) error {
			return s.returnRepo.UpdateReturn(ctx, previous)
		},
	})
	s.addSupplierSteps(sg, session, supplierDeltas(&previous, &rec))
	s.addReconcileSteps(sg, session, affectedOrders(&previous, &rec))

	if err := s.run(ctx, opUpdate, rec.ID, sg); err != nil {
		return nil, fmt.Errorf("failed to update return %s: %w", rec.ID, err)
	}

	s.LogInfo(ctx, "Return updated", slog.String("return_id", rec.ID))
	return &rec, nil
}

// ChangeReturnStatus moves a return through its lifecycle. Setting the current status again
// succeeds without touching the store.
func (s *returnService) ChangeReturnStatus(ctx context.Context, session domain.Session, returnID string, status domain.ReturnStatus) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown return status %q", apperrors.ErrValidation, status)
	}

	prev, err := s.GetReturn(ctx, returnID)
	if err != nil {
		return err
	}
	if prev.Status == status {
		s.LogDebug(ctx, "Return already in requested status", slog.String("return_id", returnID), slog.String("status", string(status)))
		return nil
	}
	if !prev.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: cannot move return from %s to %s", apperrors.ErrValidation, prev.Status, status)
	}

	previous := prev.Clone()
	updated := prev.Clone()
	updated.Status = status
	updated.LastUpdatedAt = s.now()
	updated.LastUpdatedBy = session.UserID

	sg := saga.New("change_return_status", s.GetLogger(ctx))
	sg.Add(saga.Step{
		Name: "write_return_status",
		Action: func(ctx context.Context) error {
			return storeErr(s.returnRepo.UpdateReturn(ctx, updated))
		},
		Compensate: func(ctx context.Context) error {
			return s.returnRepo.UpdateReturn(ctx, previous)
		},
	})
	s.addReconcileSteps(sg, session, affectedOrders(nil, &updated))

	if err := s.run(ctx, opStatus, returnID, sg); err != nil {
		return fmt.Errorf("failed to change status of return %s: %w", returnID, err)
	}

	s.LogInfo(ctx, "Return status changed",
		slog.String("return_id", returnID),
		slog.String("from", string(previous.Status)),
		slog.String("to", string(status)))
	return nil
}

// DeleteReturn removes a return, reverses its supplier balance effect and re-reconciles its
// purchase order.
func (s *returnService) DeleteReturn(ctx context.Context, session domain.Session, returnID string) error {
	if err := requireSession(session); err != nil {
		return err
	}

	prev, err := s.GetReturn(ctx, returnID)
	if err != nil {
		return err
	}
	previous := prev.Clone()

	sg := saga.New("delete_return", s.GetLogger(ctx))
	sg.Add(saga.Step{
		Name: "delete_return",
		Action: func(ctx context.Context) error {
			return storeErr(s.returnRepo.DeleteReturn(ctx, returnID))
		},
		Compensate: func(ctx context.Context) error {
			return s.returnRepo.SaveReturn(ctx, previous)
		},
	})
	s.addSupplierSteps(sg, session, supplierDeltas(&previous, nil))
	s.addReconcileSteps(sg, session, affectedOrders(&previous, nil))

	if err := s.run(ctx, opDelete, returnID, sg); err != nil {
		return fmt.Errorf("failed to delete return %s: %w", returnID, err)
	}

	s.LogInfo(ctx, "Return deleted", slog.String("return_id", returnID))
	return nil
}

// run executes the saga and records its outcome.
func (s *returnService) run(ctx context.Context, operation, returnID string, sg *saga.Saga) error {
	err := sg.Run(ctx)
	s.metrics.RecordReturnMutation(operation, err == nil)
	if err == nil {
		return nil
	}

	if sagaErr, ok := saga.AsError(err); ok {
		failed := make([]string, len(sagaErr.CompensationErrs))
		for i, ce := range sagaErr.CompensationErrs {
			failed[i] = ce.Step
		}
		s.metrics.RecordSagaRollback(operation, sagaErr.Step, failed)

		if !sagaErr.RolledBack() {
			s.LogError(ctx, err, "Return mutation failed and could not be fully rolled back",
				slog.String("operation", operation),
				slog.String("return_id", returnID),
				slog.String("failed_step", sagaErr.Step),
				slog.Any("failed_compensations", failed))
			return err
		}
	}

	s.LogError(ctx, err, "Return mutation failed and was rolled back",
		slog.String("operation", operation),
		slog.String("return_id", returnID))
	return err
}

// supplierDelta is one pending change to a supplier balance.
type supplierDelta struct {
	supplierID string
	amount     decimal.Decimal
}

// supplierDeltas nets the balance effect of replacing before with after. Either may be nil.
func supplierDeltas(before, after *domain.ReturnRecord) []supplierDelta {
	net := make(map[string]decimal.Decimal)
	if before != nil {
		if id := before.BalanceSupplierID(); id != "" {
			net[id] = net[id].Sub(before.TotalAmount)
		}
	}
	if after != nil {
		if id := after.BalanceSupplierID(); id != "" {
			net[id] = net[id].Add(after.TotalAmount)
		}
	}

	deltas := make([]supplierDelta, 0, len(net))
	for id, amount := range net {
		if amount.IsZero() {
			continue
		}
		deltas = append(deltas, supplierDelta{supplierID: id, amount: amount})
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].supplierID < deltas[j].supplierID })
	return deltas
}

func (s *returnService) addSupplierSteps(sg *saga.Saga, session domain.Session, deltas []supplierDelta) {
	if !session.Flags.ApplySupplierBalance {
		return
	}
	for _, d := range deltas {
		d := d
		sg.Add(saga.Step{
			Name: "adjust_supplier_balance:" + d.supplierID,
			Action: func(ctx context.Context) error {
				return storeErr(s.supplierRepo.AdjustSupplierBalance(ctx, d.supplierID, d.amount, session.UserID))
			},
			Compensate: func(ctx context.Context) error {
				return s.supplierRepo.AdjustSupplierBalance(ctx, d.supplierID, d.amount.Neg(), session.UserID)
			},
		})
	}
}

// affectedOrders lists the purchase orders touched by replacing before with after, so a
// relinked return re-reconciles both its old and its new order.
func affectedOrders(before, after *domain.ReturnRecord) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, rec := range []*domain.ReturnRecord{before, after} {
		if rec == nil || !rec.AffectsPurchaseOrder() || seen[rec.PurchaseID] {
			continue
		}
		seen[rec.PurchaseID] = true
		ids = append(ids, rec.PurchaseID)
	}
	sort.Strings(ids)
	return ids
}

// orderReconciliation carries state between the snapshot and write steps of one order.
type orderReconciliation struct {
	orderID    string
	snapshot   *domain.PurchaseOrder
	attempted  bool
	written    bool
	newVersion int
}

// addReconcileSteps adds two steps per order. The snapshot step owns the compensation, so a
// failed or ambiguous write still gets the pre-mutation state written back.
func (s *returnService) addReconcileSteps(sg *saga.Saga, session domain.Session, orderIDs []string) {
	if !session.Flags.ReconcilePurchaseOrders {
		return
	}
	for _, orderID := range orderIDs {
		state := &orderReconciliation{orderID: orderID}
		sg.Add(saga.Step{
			Name: "snapshot_purchase_order:" + orderID,
			Action: func(ctx context.Context) error {
				return s.snapshotOrder(ctx, state)
			},
			Compensate: func(ctx context.Context) error {
				return s.restoreOrder(ctx, session, state)
			},
		})
		sg.Add(saga.Step{
			Name: "reconcile_purchase_order:" + orderID,
			Action: func(ctx context.Context) error {
				return s.reconcileOrder(ctx, session, state)
			},
		})
	}
}

func (s *returnService) snapshotOrder(ctx context.Context, state *orderReconciliation) error {
	order, err := s.orderRepo.FindPurchaseOrderByID(ctx, state.orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Purchase order not found, skipping reconciliation", slog.String("purchase_order_id", state.orderID))
			return nil
		}
		return storeErr(err)
	}
	state.snapshot = order
	return nil
}

func (s *returnService) reconcileOrder(ctx context.Context, session domain.Session, state *orderReconciliation) error {
	if state.snapshot == nil {
		s.metrics.RecordReconciliation("skipped", 0)
		return nil
	}
	start := time.Now()

	records, err := s.returnRepo.ListReturnsByPurchaseID(ctx, state.orderID)
	if err != nil {
		s.metrics.RecordReconciliation("failed", time.Since(start))
		return storeErr(err)
	}

	adj := reconciliation.BuildPurchaseOrderAdjustment(*state.snapshot, reconciliation.AggregateReturnedItems(linkedReturns(records)))
	if adj == nil {
		s.LogInfo(ctx, "Nothing to reconcile for purchase order", slog.String("purchase_order_id", state.orderID))
		s.metrics.RecordReconciliation("skipped", time.Since(start))
		return nil
	}

	state.attempted = true
	newVersion, err := s.orderRepo.ApplyPurchaseOrderAdjustment(ctx, state.orderID, state.snapshot.Version, *adj, session.UserID)
	if err != nil {
		result := "failed"
		if errors.Is(err, apperrors.ErrConflict) {
			// the version check rejects before writing
			state.attempted = false
			result = "conflict"
		}
		s.metrics.RecordReconciliation(result, time.Since(start))
		return storeErr(err)
	}
	state.written = true
	state.newVersion = newVersion
	s.metrics.RecordReconciliation("applied", time.Since(start))

	s.LogInfo(ctx, "Purchase order reconciled",
		slog.String("purchase_order_id", state.orderID),
		slog.String("subtotal", adj.Subtotal.String()),
		slog.String("total", adj.TotalAmount.String()),
		slog.String("remaining", adj.RemainingAmount.String()),
		slog.Int("version", newVersion))
	return nil
}

// restoreOrder writes the snapshot back. Nothing is restored when no write was attempted or
// when the write lost a version race, since the order was then never changed by this saga.
func (s *returnService) restoreOrder(ctx context.Context, session domain.Session, state *orderReconciliation) error {
	if state.snapshot == nil || !state.attempted {
		return nil
	}
	expected := state.snapshot.Version
	if state.written {
		expected = state.newVersion
	}
	return s.orderRepo.RestorePurchaseOrder(ctx, *state.snapshot, expected, session.UserID)
}

// linkedReturns keeps the records that count against a stored purchase order.
func linkedReturns(records []domain.ReturnRecord) []domain.ReturnRecord {
	linked := make([]domain.ReturnRecord, 0, len(records))
	for _, rec := range records {
		if rec.AffectsPurchaseOrder() {
			linked = append(linked, rec)
		}
	}
	return linked
}

func requireSession(session domain.Session) error {
	if strings.TrimSpace(session.UserID) == "" {
		return fmt.Errorf("%w: a session user is required", apperrors.ErrValidation)
	}
	return nil
}

// storeErr tags repository failures that carry no classification with ErrStore.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{apperrors.ErrStore, apperrors.ErrNotFound, apperrors.ErrConflict, apperrors.ErrValidation, apperrors.ErrDuplicate} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", apperrors.ErrStore, err)
}
