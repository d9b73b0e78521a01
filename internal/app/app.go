// Package app composes the process: config, infrastructure, services, the
// bot surface, and the payment webhook listener.
package app

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	corebootstrap "github.com/m3rciful/eventbot/core/bootstrap"
	"github.com/m3rciful/eventbot/core/logger"
	tg "github.com/m3rciful/eventbot/core/telegram"
	tghelpers "github.com/m3rciful/eventbot/core/telegram/helpers"
	"github.com/m3rciful/eventbot/core/telegram/router"
	"github.com/m3rciful/eventbot/core/telegram/state"
	"github.com/m3rciful/eventbot/internal/bot"
	"github.com/m3rciful/eventbot/internal/payment"
	"github.com/m3rciful/eventbot/internal/schedule"
	"github.com/m3rciful/eventbot/internal/service"
	"github.com/m3rciful/eventbot/internal/storage"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

const shutdownGrace = 10 * time.Second

// App holds the composed process.
type App struct {
	cfg *Config
	db  *sqlx.DB

	stateMgr state.Manager
	tasks    *schedule.Registry
	notifier *bot.Notifier

	sessions *service.Sessions
	webhook  *payment.WebhookServer
	surface  *bot.Bot
}

// Bootstrap initializes logging, the database, migrations, services, and
// the bot surface.
func Bootstrap(cfg *Config) (*App, error) {
	res, err := corebootstrap.Run(corebootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}
	db := res.DB

	tasks := schedule.NewRegistry()
	notifier := bot.NewNotifier()
	stateMgr := state.NewMemoryManager()

	profiles := service.NewProfiles(storage.NewProfiles(db))
	sessions := service.NewSessions(storage.NewSessions(db), tasks, notifier, cfg.Flow.SessionDuration())
	ledger := service.NewLedger(storage.NewLedger(db), sessions, notifier, cfg.Flow.SessionDuration())
	questions := service.NewQuestions(storage.NewQuestions(db), notifier, cfg.Core.Telegram.AdminID)
	stats := service.NewStats(storage.NewStats(db))

	checkout := payment.NewClient(cfg.Payment)
	webhook := payment.NewWebhookServer(cfg.Payment, ledger)

	surface := bot.New(
		bot.Options{
			AdminID:       cfg.Core.Telegram.AdminID,
			WatchdogDelay: cfg.Flow.WatchdogDelay(),
			PriceAmount:   cfg.Payment.Amount,
			PriceCurrency: cfg.Payment.Currency,
			CardImageDir:  cfg.Flow.CardImageDir,
		},
		bot.Deps{
			State:     stateMgr,
			Tasks:     tasks,
			Profiles:  profiles,
			Ledger:    ledger,
			Sessions:  sessions,
			Questions: questions,
			Stats:     stats,
			Checkout:  checkout,
			Notifier:  notifier,
		},
	)

	return &App{
		cfg:      cfg,
		db:       db,
		stateMgr: stateMgr,
		tasks:    tasks,
		notifier: notifier,
		sessions: sessions,
		webhook:  webhook,
		surface:  surface,
	}, nil
}

// TelegramRunOptions assembles the bot runtime: registry, routes,
// middlewares, and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	a.surface.Register(reg)

	reg.SetTextFallback(func(c tele.Context) error {
		return tghelpers.SendText(c, "I didn't catch that. Use the menu below or /start.")
	})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.stateMgr, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt tg.Runtime) error {
	a.notifier.Bind(rt.Bot, rt.Dispatcher)
	a.webhook.Start()
	if err := a.sessions.RecoverActive(ctx); err != nil {
		return err
	}
	return nil
}

func (a *App) onStop(ctx context.Context, _ tg.Runtime) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := a.webhook.Shutdown(shutdownCtx); err != nil {
		logger.L.With("component", "app").Warn("webhook shutdown failed",
			slog.String("event", "shutdown"),
			slog.String("err", err.Error()),
		)
	}
	a.tasks.Close()
	a.notifier.Bind(nil, nil)
	if err := a.db.Close(); err != nil {
		return err
	}
	return nil
}
