package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secmon-lab/casebook/pkg/cli/config"
	server "github.com/secmon-lab/casebook/pkg/controller/http"
	"github.com/secmon-lab/casebook/pkg/repository/memory"
	"github.com/secmon-lab/casebook/pkg/service/alerting"
	"github.com/secmon-lab/casebook/pkg/service/drive"
	"github.com/secmon-lab/casebook/pkg/service/messenger"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		addr      string
		sentryCfg config.Sentry
		remoteCfg config.Remote
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("CASEBOOK_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
		},
		sentryCfg.Flags(),
		remoteCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.Default().Info("starting server",
				"addr", addr,
				"sentry", sentryCfg,
				"remote", remoteCfg,
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			uc := usecase.New(
				usecase.WithRepository(memory.New()),
				usecase.WithDriveClient(drive.New(remoteCfg.DriveAPIURL())),
				usecase.WithMessengerClient(messenger.New(remoteCfg.MessagingAPIURL())),
				usecase.WithAlertClient(alerting.New()),
				usecase.WithSettings(remoteCfg.Configure()),
			)

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(uc),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}
}
