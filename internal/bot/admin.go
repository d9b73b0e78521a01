package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/eventbot/core/telegram/helpers"
	"github.com/m3rciful/eventbot/core/telegram/keyboard"
	"github.com/m3rciful/eventbot/internal/storage"
)

// handleAdmin shows the counters snapshot and the management menu.
// Non-admin senders are silently ignored.
func (b *Bot) handleAdmin(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	stats, err := b.deps.Stats.Snapshot(ctx)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"Statistics:\nUsers: %d\nRegistrations: %d\nPayments: %d\nVisits: %d",
		stats.TotalUsers, stats.TotalRegistrations, stats.TotalPayments, stats.TotalVisits,
	)
	markup := keyboard.ReplyButtons([]string{btnManageGames, btnBackToMain})
	return tghelpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: markup})
}

// handleManageGames lists active sessions with their management commands.
func (b *Bot) handleManageGames(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	sessions, err := b.deps.Sessions.ListActive(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if len(sessions) == 0 {
		sb.WriteString("No active games")
	} else {
		for i, s := range sessions {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%d: %s %s (%d players)",
				s.GameID, s.GameType.Title(), s.GameDate.Format("2006-01-02"), len(s.Participants))
		}
	}
	sb.WriteString("\nCommands: /delete <id>, /edit <id> <date>")
	return tghelpers.SendText(c, sb.String())
}

// handleDeleteSession removes a session and cancels its expiry task.
func (b *Bot) handleDeleteSession(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	parts := strings.Fields(c.Text())
	if len(parts) != 2 {
		return tghelpers.SendText(c, "Usage: /delete <id>")
	}
	gameID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return tghelpers.SendText(c, "Usage: /delete <id>")
	}

	deleted, err := b.deps.Sessions.Delete(ctx, gameID)
	if err != nil {
		return err
	}
	if !deleted {
		return tghelpers.SendText(c, fmt.Sprintf("Session %d not found.", gameID))
	}
	return tghelpers.SendText(c, fmt.Sprintf("Session %d deleted.", gameID))
}

// handleEditSession moves a session to a new date: /edit <id> <date>.
func (b *Bot) handleEditSession(c tele.Context) error {
	if !b.isAdmin(c) {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	parts := strings.Fields(c.Text())
	if len(parts) != 3 {
		return tghelpers.SendText(c, "Usage: /edit <id> <date>")
	}
	gameID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return tghelpers.SendText(c, "Usage: /edit <id> <date>")
	}
	newDate, ok := tghelpers.ParseFlexibleDate(parts[2])
	if !ok {
		return tghelpers.SendText(c, "Date must look like 2025-05-01 or 01.05.2025.")
	}

	sess, err := b.deps.Sessions.Reschedule(ctx, gameID, newDate)
	if errors.Is(err, storage.ErrNotFound) {
		return tghelpers.SendText(c, fmt.Sprintf("Session %d not found.", gameID))
	}
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Session %d moved to %s.",
		sess.GameID, sess.GameDate.Format("2006-01-02")))
}
