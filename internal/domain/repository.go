package domain

import "context"

// CatalogSource is a paged read over the listings catalog.
// Faults are reported as *FetchError.
type CatalogSource interface {
	FetchPage(ctx context.Context, offset, pageSize int) ([]CatalogEntry, error)
}

// FaultAction is what pagination does after a faulted page
type FaultAction int

const (
	// FaultContinue logs the fault and requests the next page
	FaultContinue FaultAction = iota
	// FaultStop ends pagination quietly, keeping accumulated results
	FaultStop
	// FaultAbort ends pagination and surfaces the fault to the caller
	FaultAbort
)

func (a FaultAction) String() string {
	switch a {
	case FaultContinue:
		return "continue"
	case FaultStop:
		return "stop"
	case FaultAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// FaultPolicy decides how pagination reacts to a fetch fault
type FaultPolicy interface {
	Classify(fault *FetchError) FaultAction
}
