package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type CommID string

const EmptyCommID CommID = ""

func NewCommID() CommID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return CommID(id.String())
}

func (x CommID) String() string {
	return string(x)
}

func (x CommID) Validate() error {
	if x == EmptyCommID {
		return goerr.New("empty communication ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid communication ID format", goerr.V("id", x))
	}
	return nil
}

type CommChannel string

const (
	CommChannelChat  CommChannel = "CHAT"
	CommChannelEmail CommChannel = "EMAIL"
)

func (c CommChannel) String() string {
	return string(c)
}

func (c CommChannel) Validate() error {
	switch c {
	case CommChannelChat, CommChannelEmail:
		return nil
	}
	return goerr.New("invalid communication channel", goerr.V("channel", c))
}
