package safe

import (
	"context"
	"io"

	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", logging.ErrAttr(err))
	}
}
