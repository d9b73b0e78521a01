package bot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	tghelpers "github.com/m3rciful/eventbot/core/telegram/helpers"
	"github.com/m3rciful/eventbot/internal/storage"
)

const (
	loyaltyFirstGift  = 6
	loyaltySecondGift = 12
)

func (b *Bot) handleCabinetMenu(c tele.Context) error {
	return tghelpers.SendText(c, cabinetMenuText, &tele.SendOptions{ReplyMarkup: personalMenu()})
}

func (b *Bot) handleMyProfile(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	profile, err := b.deps.Profiles.Get(ctx, c.Sender().ID)
	if errors.Is(err, storage.ErrNotFound) {
		return tghelpers.SendText(c, profileMissing)
	}
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Name: %s\nAge: %d\nAbout: %s", profile.Name, profile.Age, profile.Answer)
	return tghelpers.SendMD(c, text, cabinetEntryKB())
}

func (b *Bot) handleMyVisits(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	past, future, err := b.deps.Ledger.VisitHistory(ctx, c.Sender().ID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Past visits: %s\nUpcoming: %s", formatDates(past), formatDates(future))
	return tghelpers.SendMD(c, text, visitsKB())
}

func formatDates(dates []time.Time) string {
	if len(dates) == 0 {
		return noVisitsText
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	return strings.Join(out, ", ")
}

// handleLoyaltyCard shows the attended-visit count with the matching card
// image when one exists on disk.
func (b *Bot) handleLoyaltyCard(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	count, err := b.deps.Ledger.LoyaltyCount(ctx, c.Sender().ID)
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("Visits: %d. Gifts at %d and %d!", count, loyaltyFirstGift, loyaltySecondGift)

	tier := count
	if tier > loyaltySecondGift {
		tier = loyaltySecondGift
	}
	path := filepath.Join(b.opts.CardImageDir, fmt.Sprintf("card_%d.png", tier))
	if _, statErr := os.Stat(path); statErr == nil {
		photo := &tele.Photo{File: tele.FromDisk(path), Caption: caption}
		return tghelpers.SendPhoto(c, photo, backToMainKB())
	}
	return tghelpers.SendMD(c, caption, backToMainKB())
}

func (b *Bot) handleBackCabinetCB(c tele.Context) error {
	return tghelpers.SendText(c, cabinetMenuText, &tele.SendOptions{ReplyMarkup: personalMenu()})
}

// handleEditProfileCB re-enters the intake flow from the cabinet.
func (b *Bot) handleEditProfileCB(c tele.Context) error {
	return b.handleFillProfile(c)
}
