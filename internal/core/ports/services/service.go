package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	CurrencyRate CurrencyRateSvcFacade
	Account      AccountSvcFacade
	Balance      BalanceSvcFacade
	Deposit      DepositSvcFacade
	IPO          IPOSvcFacade
	Subscription SubscriptionSvcFacade
	Allocation   AllocationSvcFacade
	Settlement   SettlementSvcFacade
}

// EventTracker receives product analytics events. It must not block and must
// tolerate being unconfigured.
type EventTracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}
