package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/eventbot/core/logger"
	"github.com/m3rciful/eventbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/eventbot/core/telegram/helpers"
	"github.com/m3rciful/eventbot/internal/flow"
	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/payment"
	"github.com/m3rciful/eventbot/internal/storage"
	"log/slog"
)

func (b *Bot) handleGamesMenu(c tele.Context) error {
	return tghelpers.SendText(c, gamesMenuText, &tele.SendOptions{ReplyMarkup: gamesMenu()})
}

func (b *Bot) handleRules(c tele.Context) error {
	var sb strings.Builder
	for i, g := range []models.GameType{
		models.GameMeetEat, models.GameLockStock, models.GameBarLiar, models.GameQuickDates,
	} {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(rulesText(g))
	}
	return tghelpers.SendMD(c, sb.String(), backToMainKB())
}

// handleGameStart enters the registration flow for the pressed game button.
// Quick Dates is refused outright for stored age < 18: no transition.
func (b *Bot) handleGameStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	gameType, ok := gameTypeByTitle(c.Text())
	if !ok {
		return nil
	}

	if gameType.AdultOnly() {
		profile, err := b.deps.Profiles.Get(ctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, profileMissing)
		}
		if err != nil {
			return err
		}
		if profile.Age < flow.AdultAge {
			return tghelpers.SendText(c, quickDatesDenied)
		}
	}

	b.deps.State.SetTemp(userID, flow.DraftGameType, string(gameType))
	b.deps.State.SetState(userID, flow.StateRulesConfirm)
	return tghelpers.SendMD(c, rulesText(gameType), rulesConfirmKB())
}

// handleRegContinue moves to the week picker and arms the inactivity
// watchdog for this flow instance.
func (b *Bot) handleRegContinue(c tele.Context) error {
	userID := c.Sender().ID
	b.deps.State.SetState(userID, flow.StateWeekChoice)
	b.startWatchdog(userID)
	return tghelpers.EditMD(c, chooseWeekText, weekKB())
}

func (b *Bot) startWatchdog(userID int64) {
	fireAt := time.Now().Add(b.opts.WatchdogDelay)
	b.deps.Tasks.Schedule(flow.WatchdogKey(userID), fireAt, func(ctx context.Context) {
		st := b.deps.State.GetState(userID)
		if !strings.HasPrefix(string(st), "reg:") {
			return
		}
		if err := b.deps.Notifier.Notify(ctx, userID, watchdogNudge); err != nil {
			logger.TG.Warn("watchdog nudge failed",
				slog.String("event", "flow.watchdog"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
	})
}

func (b *Bot) handleWeekChoice(c tele.Context) error {
	userID := c.Sender().ID
	choice := callbacks.CallbackPayload(c)

	base, ok := flow.WeekBase(choice, time.Now())
	if !ok {
		return nil
	}
	gameTypeStr, ok := b.deps.State.GetTempString(userID, flow.DraftGameType)
	if !ok {
		// Draft lost (e.g. restart); drop the flow back to the menu.
		b.deps.State.Clear(userID)
		return tghelpers.EditMD(c, mainMenuText, backToMainKB())
	}
	gameType := models.GameType(gameTypeStr)

	b.deps.State.SetTemp(userID, flow.DraftWeekBase, base)
	b.deps.State.SetState(userID, flow.StateDayChoice)

	options := flow.DayOptions(gameType, base)
	return tghelpers.EditMD(c, chooseDayText,
		dayKB(gameType, options, b.opts.PriceAmount, b.opts.PriceCurrency))
}

// handleDayChoice opens the checkout and ends the flow; confirmation arrives
// later through the payment webhook.
func (b *Bot) handleDayChoice(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	choice, err := flow.ParseDayChoice(callbacks.CallbackPayload(c))
	if err != nil {
		logger.TG.Warn("day payload rejected",
			slog.String("event", "flow.day"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil
	}

	url, err := b.deps.Checkout.CreateCheckout(ctx, payment.Metadata{
		UserID:     userID,
		GameType:   choice.GameType,
		GameDate:   choice.Date,
		Restaurant: choice.Restaurant,
	})
	if err != nil {
		return err
	}

	b.deps.State.Clear(userID)
	b.deps.Tasks.Cancel(flow.WatchdogKey(userID))

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.URL("Pay", url)))
	text := fmt.Sprintf("Total: %d %s for %s on %s.",
		b.opts.PriceAmount, b.opts.PriceCurrency,
		choice.GameType.Title(), choice.Date.Format("2006-01-02"))
	return tghelpers.EditMD(c, text, markup)
}

// handleToGamesCB abandons the current flow and returns to the games menu.
func (b *Bot) handleToGamesCB(c tele.Context) error {
	userID := c.Sender().ID
	b.deps.State.Clear(userID)
	b.deps.Tasks.Cancel(flow.WatchdogKey(userID))
	return tghelpers.SendText(c, gamesMenuText, &tele.SendOptions{ReplyMarkup: gamesMenu()})
}

// handleBackMainCB resets the flow from an inline button.
func (b *Bot) handleBackMainCB(c tele.Context) error {
	userID := c.Sender().ID
	b.deps.State.Clear(userID)
	b.deps.Tasks.Cancel(flow.WatchdogKey(userID))
	return tghelpers.EditOrSendMD(c, mainMenuText, backToMainKB())
}
