package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/iurnickita/swadbot/internal/auth"
	"github.com/iurnickita/swadbot/internal/config"
	"github.com/iurnickita/swadbot/internal/dashboard"
	"github.com/iurnickita/swadbot/internal/handler"
	"github.com/iurnickita/swadbot/internal/logger"
	"github.com/iurnickita/swadbot/internal/service"
	"github.com/iurnickita/swadbot/internal/service/waclient"
	"github.com/iurnickita/swadbot/internal/session"
	"github.com/iurnickita/swadbot/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "swad",
		Usage: "WhatsApp order bot and order dashboard for Swad Homemade Pickles",
		Commands: []*cli.Command{
			{
				Name:   "bot",
				Usage:  "serve the WhatsApp webhook",
				Action: runBot,
			},
			{
				Name:   "dashboard",
				Usage:  "serve the orders dashboard",
				Action: runDashboard,
			},
			{
				Name:  "token",
				Usage: "print a dashboard access token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Value: "owner", Usage: "token subject"},
					&cli.DurationFlag{Name: "ttl", Value: 30 * 24 * time.Hour, Usage: "token lifetime"},
				},
				Action: runToken,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return config.Config{}, nil, err
	}

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, zaplog, nil
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
}

func runBot(c *cli.Context) error {
	cfg, zaplog, err := setup()
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	// без секретов бот запускается, ошибки проявятся при отправке
	if missing := cfg.MissingSecrets(); len(missing) > 0 {
		zaplog.Warn("WhatsApp secrets not set, set them before running", zap.Strings("missing", missing))
	}

	store, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()
	zaplog.Info("database ready", zap.String("driver", cfg.Store.Driver), zap.String("dsn", cfg.Store.DBDsn))

	messenger := waclient.NewClient(cfg.Service, zaplog)
	service := service.NewService(store, session.NewStore(), messenger, zaplog)

	ctx, stop := signalContext(c)
	defer stop()
	return handler.Serve(ctx, cfg.Handler, service, zaplog)
}

func runDashboard(c *cli.Context) error {
	cfg, zaplog, err := setup()
	if err != nil {
		return err
	}
	defer zaplog.Sync()

	auth := auth.NewAuth(cfg.Auth)
	if !auth.Enabled() {
		zaplog.Warn("DASHBOARD_TOKEN_SECRET not set, dashboard is open")
	}

	store, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signalContext(c)
	defer stop()
	return dashboard.Serve(ctx, cfg.Dashboard, store, auth, zaplog)
}

func runToken(c *cli.Context) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	token, err := auth.NewAuth(cfg.Auth).IssueToken(c.String("subject"), c.Duration("ttl"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
