package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type AuditEntryID string

const EmptyAuditEntryID AuditEntryID = ""

func NewAuditEntryID() AuditEntryID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return AuditEntryID(id.String())
}

func (x AuditEntryID) String() string {
	return string(x)
}

func (x AuditEntryID) Validate() error {
	if x == EmptyAuditEntryID {
		return goerr.New("empty audit entry ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid audit entry ID format", goerr.V("id", x))
	}
	return nil
}
