// Package bot implements the Telegram surface: menus, the intake and
// registration conversations, the personal cabinet, help, and admin tools.
package bot

import (
	"context"
	"time"

	tg "github.com/m3rciful/eventbot/core/telegram"
	"github.com/m3rciful/eventbot/core/telegram/commands"
	"github.com/m3rciful/eventbot/core/telegram/middleware"
	"github.com/m3rciful/eventbot/core/telegram/state"
	"github.com/m3rciful/eventbot/internal/flow"
	"github.com/m3rciful/eventbot/internal/payment"
	"github.com/m3rciful/eventbot/internal/schedule"
	"github.com/m3rciful/eventbot/internal/service"

	tele "gopkg.in/telebot.v4"
)

// CheckoutCreator opens a payment checkout and returns its URL.
type CheckoutCreator interface {
	CreateCheckout(ctx context.Context, md payment.Metadata) (string, error)
}

// TaskRegistry is the slice of the schedule registry the bot needs for
// inactivity watchdogs.
type TaskRegistry interface {
	Schedule(key string, at time.Time, fn schedule.Task)
	Cancel(key string) bool
}

// Options carry the bot-level settings.
type Options struct {
	AdminID       int64
	WatchdogDelay time.Duration
	PriceAmount   int64
	PriceCurrency string
	// CardImageDir holds loyalty card images named card_<n>.png.
	CardImageDir string
}

// Deps are the collaborators behind the handlers.
type Deps struct {
	State     state.Manager
	Tasks     TaskRegistry
	Profiles  *service.Profiles
	Ledger    *service.Ledger
	Sessions  *service.Sessions
	Questions *service.Questions
	Stats     *service.Stats
	Checkout  CheckoutCreator
	Notifier  *Notifier
}

// Bot wires handlers to services.
type Bot struct {
	opts Options
	deps Deps
}

// New builds the bot surface.
func New(opts Options, deps Deps) *Bot {
	return &Bot{opts: opts, deps: deps}
}

// stateGetter adapts the FSM manager to the state middleware.
type stateGetter struct{ m state.Manager }

func (s stateGetter) GetState(userID int64) string {
	return string(s.m.GetState(userID))
}

// inState gates a callback handler on an exact FSM step.
func (b *Bot) inState(st state.State, h tele.HandlerFunc) tele.HandlerFunc {
	return middleware.State(stateGetter{m: b.deps.State}, string(st))(h)
}

// Register wires every command, button alias, callback, and FSM step.
func (b *Bot) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     b.handleStart,
		Description: "Start and main menu",
	})
	reg.RegisterCommand("/games", commands.Command{
		Handler:     b.handleGamesMenu,
		Description: "Games menu",
		Aliases:     []string{btnGames},
	})
	reg.RegisterCommand("/cabinet", commands.Command{
		Handler:     b.handleCabinetMenu,
		Description: "Personal cabinet",
		Aliases:     []string{btnCabinet},
	})
	reg.RegisterCommand("/rules", commands.Command{
		Handler:     b.handleRules,
		Description: "Club rules",
		Aliases:     []string{btnRules},
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     b.handleHelp,
		Description: "Ask the admin a question",
		Aliases:     []string{btnHelp},
	})

	// Hidden commands backing reply-keyboard buttons.
	reg.RegisterCommand("/fill", commands.Command{
		Handler:     b.handleFillProfile,
		Description: "Start profile intake",
		Hidden:      true,
		Aliases:     []string{btnFillProfile},
	})
	reg.RegisterCommand("/book", commands.Command{
		Handler:     b.handleGameStart,
		Description: "Book a game",
		Hidden:      true,
		Aliases: []string{
			"Meet&Eat", "Lock Stock", "Liars Bar", "Quick Dates",
		},
	})
	reg.RegisterCommand("/myprofile", commands.Command{
		Handler:     b.handleMyProfile,
		Description: "Show stored profile",
		Hidden:      true,
		Aliases:     []string{btnMyProfile},
	})
	reg.RegisterCommand("/myvisits", commands.Command{
		Handler:     b.handleMyVisits,
		Description: "Show visit history",
		Hidden:      true,
		Aliases:     []string{btnMyVisits},
	})
	reg.RegisterCommand("/loyalty", commands.Command{
		Handler:     b.handleLoyaltyCard,
		Description: "Show loyalty card",
		Hidden:      true,
		Aliases:     []string{btnLoyalty},
	})
	reg.RegisterCommand("/menu", commands.Command{
		Handler:     b.handleBackToMain,
		Description: "Back to main menu",
		Hidden:      true,
		Aliases:     []string{btnBackToMain},
	})

	// Admin surface. The alias path bypasses the command router's admin
	// middleware, so each handler re-checks the sender itself.
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     b.handleAdmin,
		Description: "Counters and management",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/manage", commands.Command{
		Handler:     b.handleManageGames,
		Description: "List active sessions",
		AdminOnly:   true,
		Hidden:      true,
		Aliases:     []string{btnManageGames},
	})
	reg.RegisterCommand("/answer", commands.Command{
		Handler:     b.handleAnswer,
		Description: "Answer a question: /answer <id> <text>",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/delete", commands.Command{
		Handler:     b.handleDeleteSession,
		Description: "Delete a session: /delete <id>",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/edit", commands.Command{
		Handler:     b.handleEditSession,
		Description: "Move a session: /edit <id> <date>",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbRegContinue, b.inState(flow.StateRulesConfirm, b.handleRegContinue))
	_ = reg.RegisterCallback(cbWeek, b.inState(flow.StateWeekChoice, b.handleWeekChoice))
	_ = reg.RegisterCallback(cbDay, b.inState(flow.StateDayChoice, b.handleDayChoice))
	_ = reg.RegisterCallback(cbBackMain, b.handleBackMainCB)
	_ = reg.RegisterCallback(cbBackCabinet, b.handleBackCabinetCB)
	_ = reg.RegisterCallback(cbToGames, b.handleToGamesCB)
	_ = reg.RegisterCallback(cbEditProfile, b.handleEditProfileCB)
	_ = reg.RegisterCallback(cbMoreHelp, b.handleMoreHelpCB)

	state.RegisterHandler(flow.StateAwaitingName, b.handleIntakeName)
	state.RegisterHandler(flow.StateAwaitingAge, b.handleIntakeAge)
	state.RegisterHandler(flow.StateAwaitingAnswer, b.handleIntakeAnswer)
	state.RegisterHandler(flow.StateAwaitingQuestion, b.handleQuestionText)
}

// isAdmin reports whether the update comes from the configured admin.
func (b *Bot) isAdmin(c tele.Context) bool {
	return b.opts.AdminID != 0 && c.Sender() != nil && c.Sender().ID == b.opts.AdminID
}
