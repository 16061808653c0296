package domain

// AllocationSummary describes the outcome of closing one IPO.
type AllocationSummary struct {
	IPOID          string `json:"ipoID"`
	Symbol         string `json:"symbol"`
	Demand         int64  `json:"demand"`
	Capacity       int64  `json:"capacity"`
	Allocated      int64  `json:"allocated"`
	Oversubscribed bool   `json:"oversubscribed"`
	Subscriptions  int    `json:"subscriptions"`
	Rejected       int    `json:"rejected"`
	Settled        int    `json:"settled"`
	// Skipped is set when another run already closed the IPO.
	Skipped bool `json:"skipped"`
}

// SweepReport aggregates one run of the allocation sweep.
type SweepReport struct {
	Opened int                 `json:"opened"`
	Closed []AllocationSummary `json:"closed"`
	Listed int                 `json:"listed"`
	Failed map[string]string   `json:"failed,omitempty"` // ipoID -> error
}
