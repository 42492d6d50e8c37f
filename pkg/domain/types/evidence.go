package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type EvidenceID string

const EmptyEvidenceID EvidenceID = ""

func NewEvidenceID() EvidenceID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return EvidenceID(id.String())
}

func (x EvidenceID) String() string {
	return string(x)
}

func (x EvidenceID) Validate() error {
	if x == EmptyEvidenceID {
		return goerr.New("empty evidence ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid evidence ID format", goerr.V("id", x))
	}
	return nil
}

type EvidenceType string

const (
	EvidenceTypeIPList        EvidenceType = "IP_LIST"
	EvidenceTypeSubnetReport  EvidenceType = "SUBNET_REPORT"
	EvidenceTypeWebLogArchive EvidenceType = "WEB_LOG_ARCHIVE"
	EvidenceTypeQkview        EvidenceType = "QKVIEW"
	EvidenceTypePcap          EvidenceType = "PCAP"
	EvidenceTypeScreenshot    EvidenceType = "SCREENSHOT"
	EvidenceTypeOther         EvidenceType = "OTHER"
)

func (t EvidenceType) String() string {
	return string(t)
}

func (t EvidenceType) Validate() error {
	switch t {
	case EvidenceTypeIPList, EvidenceTypeSubnetReport, EvidenceTypeWebLogArchive,
		EvidenceTypeQkview, EvidenceTypePcap, EvidenceTypeScreenshot, EvidenceTypeOther:
		return nil
	}
	return goerr.New("invalid evidence type", goerr.V("type", t))
}
