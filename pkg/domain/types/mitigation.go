package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type MitigationID string

const EmptyMitigationID MitigationID = ""

func NewMitigationID() MitigationID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return MitigationID(id.String())
}

func (x MitigationID) String() string {
	return string(x)
}

func (x MitigationID) Validate() error {
	if x == EmptyMitigationID {
		return goerr.New("empty mitigation ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid mitigation ID format", goerr.V("id", x))
	}
	return nil
}

type MitigationType string

const (
	MitigationTypeDosProfile MitigationType = "DOS_PROFILE"
	MitigationTypeHeavyURL   MitigationType = "HEAVY_URL"
	MitigationTypeGeoBlock   MitigationType = "GEO_BLOCK"
	MitigationTypeRateLimit  MitigationType = "RATE_LIMIT"
	MitigationTypeSignature  MitigationType = "SIGNATURE"
	MitigationTypeBotDefense MitigationType = "BOT_DEFENSE"
	MitigationTypeOther      MitigationType = "OTHER"
)

func (t MitigationType) String() string {
	return string(t)
}

func (t MitigationType) Validate() error {
	switch t {
	case MitigationTypeDosProfile, MitigationTypeHeavyURL, MitigationTypeGeoBlock,
		MitigationTypeRateLimit, MitigationTypeSignature, MitigationTypeBotDefense,
		MitigationTypeOther:
		return nil
	}
	return goerr.New("invalid mitigation type", goerr.V("type", t))
}

type MitigationStatus string

const (
	MitigationStatusPlanned     MitigationStatus = "PLANNED"
	MitigationStatusInProgress  MitigationStatus = "IN_PROGRESS"
	MitigationStatusImplemented MitigationStatus = "IMPLEMENTED"
	MitigationStatusRolledBack  MitigationStatus = "ROLLED_BACK"
)

func (s MitigationStatus) String() string {
	return string(s)
}

func (s MitigationStatus) Validate() error {
	switch s {
	case MitigationStatusPlanned, MitigationStatusInProgress, MitigationStatusImplemented, MitigationStatusRolledBack:
		return nil
	}
	return goerr.New("invalid mitigation status", goerr.V("status", s))
}
