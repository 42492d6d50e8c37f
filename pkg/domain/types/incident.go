package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type IncidentID string

const EmptyIncidentID IncidentID = ""

func NewIncidentID() IncidentID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return IncidentID(id.String())
}

func (x IncidentID) String() string {
	return string(x)
}

func (x IncidentID) Validate() error {
	if x == EmptyIncidentID {
		return goerr.New("empty incident ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid incident ID format", goerr.V("id", x))
	}
	return nil
}

type IncidentStatus string

const (
	IncidentStatusDetected   IncidentStatus = "DETECTED"
	IncidentStatusActive     IncidentStatus = "ACTIVE"
	IncidentStatusStabilized IncidentStatus = "STABILIZED"
	IncidentStatusClosed     IncidentStatus = "CLOSED"
)

func (s IncidentStatus) String() string {
	return string(s)
}

func (s IncidentStatus) Validate() error {
	switch s {
	case IncidentStatusDetected, IncidentStatusActive, IncidentStatusStabilized, IncidentStatusClosed:
		return nil
	}
	return goerr.New("invalid incident status", goerr.V("status", s))
}

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) String() string {
	return string(s)
}

func (s Severity) Validate() error {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return nil
	}
	return goerr.New("invalid severity", goerr.V("severity", s))
}
