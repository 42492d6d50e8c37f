package errs

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

// Handle reports an unrecoverable error to Sentry and the context logger.
func Handle(ctx context.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[CRITICAL] logger crashed during error handling: original_error=%s, panic=%v\n",
				err.Error(), r)
		}
	}()

	logAttrs := []any{slog.Any("error", err)}
	logger := logging.From(ctx)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range goerr.Values(err) {
			scope.SetExtra(k, v)
		}
	})
	if evID := hub.CaptureException(err); evID != nil {
		logAttrs = append(logAttrs, slog.Any("sentry.id", evID))
	}

	logger.Error("Error: "+err.Error(), logAttrs...)
}
