package domain

// FeatureFlags toggles optional side effects of return mutations.
type FeatureFlags struct {
	ReconcilePurchaseOrders bool `json:"reconcilePurchaseOrders"`
	ApplySupplierBalance    bool `json:"applySupplierBalance"`
}

// DefaultFeatureFlags enables every side effect.
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{ReconcilePurchaseOrders: true, ApplySupplierBalance: true}
}

// Session identifies who performs a mutation and with which flags.
// Callers build it explicitly; services never look it up on their own.
type Session struct {
	UserID string
	Flags  FeatureFlags
}
