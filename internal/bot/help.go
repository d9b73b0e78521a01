package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/eventbot/core/telegram/helpers"
	"github.com/m3rciful/eventbot/internal/flow"
	"github.com/m3rciful/eventbot/internal/storage"
)

// handleHelp opens the question flow.
func (b *Bot) handleHelp(c tele.Context) error {
	b.deps.State.SetState(c.Sender().ID, flow.StateAwaitingQuestion)
	return tghelpers.SendText(c, helpPrompt)
}

// handleQuestionText stores the question and forwards it to the admin.
func (b *Bot) handleQuestionText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	if _, err := b.deps.Questions.Submit(ctx, userID, c.Text()); err != nil {
		return err
	}
	b.deps.State.Clear(userID)
	return tghelpers.SendText(c, helpReceived)
}

// handleAnswer delivers the admin's reply to the asker: /answer <id> <text>.
func (b *Bot) handleAnswer(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	parts := strings.SplitN(c.Text(), " ", 3)
	if len(parts) < 3 {
		return tghelpers.SendText(c, "Usage: /answer <id> <text>")
	}
	qID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return tghelpers.SendText(c, "Usage: /answer <id> <text>")
	}
	answer := parts[2]

	userID, err := b.deps.Questions.Answer(ctx, qID, answer)
	if errors.Is(err, storage.ErrNotFound) {
		return tghelpers.SendText(c, fmt.Sprintf("Question #%d not found.", qID))
	}
	if err != nil {
		return err
	}

	reply := fmt.Sprintf("Answer to your question:\n%s", answer)
	if err := b.deps.Notifier.Send(ctx, userID, reply, answerKB()); err != nil {
		return tghelpers.SendText(c, fmt.Sprintf("Saved, but delivery to %d failed: %v", userID, err))
	}
	return tghelpers.SendText(c, fmt.Sprintf("Answer #%d delivered.", qID))
}

// handleMoreHelpCB lets the asker start another question from the answer.
func (b *Bot) handleMoreHelpCB(c tele.Context) error {
	return b.handleHelp(c)
}
