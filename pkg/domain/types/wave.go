package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type WaveID string

const EmptyWaveID WaveID = ""

func NewWaveID() WaveID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return WaveID(id.String())
}

func (x WaveID) String() string {
	return string(x)
}

func (x WaveID) Validate() error {
	if x == EmptyWaveID {
		return goerr.New("empty wave ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid wave ID format", goerr.V("id", x))
	}
	return nil
}
