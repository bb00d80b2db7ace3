package usecase

import (
	"net/http"

	"github.com/honeybarrel/backend/internal/domain"
)

// StatusFaultPolicy is the default FaultPolicy. Client faults stop
// pagination unless their status is listed as transient; server faults
// continue; parse faults stop; network faults abort.
type StatusFaultPolicy struct {
	TransientStatuses map[int]bool
}

// NewStatusFaultPolicy treats 408 and 429 as transient
func NewStatusFaultPolicy() *StatusFaultPolicy {
	return &StatusFaultPolicy{
		TransientStatuses: map[int]bool{
			http.StatusRequestTimeout:  true,
			http.StatusTooManyRequests: true,
		},
	}
}

// Classify implements domain.FaultPolicy
func (p *StatusFaultPolicy) Classify(fault *domain.FetchError) domain.FaultAction {
	if fault == nil {
		return domain.FaultContinue
	}

	switch fault.Kind {
	case domain.FaultNetwork:
		return domain.FaultAbort
	case domain.FaultParse:
		// An unreadable page counts as zero records
		return domain.FaultStop
	case domain.FaultClient:
		if p.TransientStatuses[fault.StatusCode] {
			return domain.FaultContinue
		}
		return domain.FaultStop
	default:
		return domain.FaultContinue
	}
}
