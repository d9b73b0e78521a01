package bot

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/eventbot/core/telegram/helpers"
	"github.com/m3rciful/eventbot/internal/flow"
	"github.com/m3rciful/eventbot/internal/models"
	"github.com/m3rciful/eventbot/internal/storage"
)

// handleStart greets returning users with the main menu and sends new users
// to profile intake.
func (b *Bot) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	profile, err := b.deps.Profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err == nil && profile.Completed {
		greeting := fmt.Sprintf("Hi, %s! Welcome back.", profile.Name)
		return tghelpers.SendText(c, greeting, &tele.SendOptions{ReplyMarkup: mainMenu()})
	}

	if err := tghelpers.SendText(c, introText); err != nil {
		return err
	}
	return tghelpers.SendText(c, fillProfilePrompt, &tele.SendOptions{ReplyMarkup: fillProfileMenu()})
}

// handleFillProfile enters the intake flow.
func (b *Bot) handleFillProfile(c tele.Context) error {
	userID := c.Sender().ID
	b.deps.State.Clear(userID)
	b.deps.State.SetState(userID, flow.StateAwaitingName)
	return tghelpers.SendText(c, askNameText)
}

func (b *Bot) handleIntakeName(c tele.Context) error {
	userID := c.Sender().ID
	b.deps.State.SetTemp(userID, flow.DraftName, c.Text())
	b.deps.State.SetState(userID, flow.StateAwaitingAge)
	return tghelpers.SendText(c, askAgeText)
}

// handleIntakeAge validates age input. Bad input re-prompts without a
// transition; under-18 proceeds with the restriction notice.
func (b *Bot) handleIntakeAge(c tele.Context) error {
	userID := c.Sender().ID
	age, err := flow.ParseAge(c.Text())
	if err != nil {
		return tghelpers.SendText(c, badAgeText)
	}

	b.deps.State.SetTemp(userID, flow.DraftAge, int64(age))
	if age < flow.AdultAge {
		if err := tghelpers.SendText(c, underageNotice); err != nil {
			return err
		}
	}
	if err := tghelpers.SendText(c, liabilityNotice); err != nil {
		return err
	}
	b.deps.State.SetState(userID, flow.StateAwaitingAnswer)
	return tghelpers.SendText(c, askAnswerText)
}

// handleIntakeAnswer completes intake: the profile is persisted in one step,
// drafts and state are dropped.
func (b *Bot) handleIntakeAnswer(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	name, _ := b.deps.State.GetTempString(userID, flow.DraftName)
	age, _ := b.deps.State.GetTempInt64(userID, flow.DraftAge)

	_, err := b.deps.Profiles.Complete(ctx, models.Profile{
		UserID: userID,
		Name:   name,
		Age:    int(age),
		Answer: c.Text(),
	})
	if err != nil {
		return err
	}

	b.deps.State.Clear(userID)
	done := fmt.Sprintf("Profile complete, %s! 🎉", name)
	return tghelpers.SendText(c, done, &tele.SendOptions{ReplyMarkup: mainMenu()})
}

// handleBackToMain resets any in-flight flow and shows the main menu.
func (b *Bot) handleBackToMain(c tele.Context) error {
	userID := c.Sender().ID
	b.deps.State.Clear(userID)
	b.deps.Tasks.Cancel(flow.WatchdogKey(userID))
	return tghelpers.SendText(c, mainMenuText, &tele.SendOptions{ReplyMarkup: mainMenu()})
}
