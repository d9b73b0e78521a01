package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/eventbot/core/telegram/keyboard"
	"github.com/m3rciful/eventbot/internal/flow"
	"github.com/m3rciful/eventbot/internal/models"
)

// Reply keyboard labels. Each one is an alias of a hidden command, so the
// text router resolves button presses like commands.
const (
	btnCabinet     = "Personal cabinet"
	btnGames       = "Games"
	btnRules       = "Rules"
	btnHelp        = "Help"
	btnFillProfile = "Fill in profile"
	btnMyProfile   = "My profile"
	btnMyVisits    = "My visits"
	btnLoyalty     = "Loyalty card"
	btnManageGames = "Manage games"
	btnBackToMain  = "Back to main menu"
)

// Callback keys.
const (
	cbRegContinue = "reg_continue"
	cbWeek        = "week"
	cbDay         = "day"
	cbBackMain    = "back_main"
	cbBackCabinet = "back_cabinet"
	cbToGames     = "to_games"
	cbEditProfile = "edit_profile"
	cbMoreHelp    = "more_help"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnCabinet, btnGames},
		[]string{btnRules, btnHelp},
	)
}

func gamesMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{models.GameMeetEat.Title(), models.GameLockStock.Title()},
		[]string{models.GameBarLiar.Title(), models.GameQuickDates.Title()},
		[]string{btnBackToMain},
	)
}

func personalMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{btnMyProfile, btnMyVisits},
		[]string{btnLoyalty, btnBackToMain},
	)
}

func fillProfileMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{btnFillProfile})
}

func rulesConfirmKB() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Continue to booking", Unique: cbRegContinue},
		{Text: "Back to games", Unique: cbToGames},
	})
}

func weekKB() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "This week", Unique: cbWeek, Data: flow.WeekCurrent},
		{Text: "Next week", Unique: cbWeek, Data: flow.WeekNext},
	})
}

// dayKB renders day options: Meet&Eat slots one per row with their cuisine,
// everything else packed three per row.
func dayKB(gameType models.GameType, options []flow.DayOption, amount int64, currency string) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(options))
	for _, opt := range options {
		choice := flow.DayChoice{
			GameType:   gameType,
			Date:       opt.Date,
			Restaurant: opt.Cuisine,
		}
		var label string
		if opt.Cuisine != "" {
			label = fmt.Sprintf("%s (%s) - %d %s", opt.Cuisine, opt.Date.Format("02.01"), amount, currency)
		} else {
			label = fmt.Sprintf("%s %s - %d %s", opt.Date.Format("Monday"), opt.Date.Format("02.01"), amount, currency)
		}
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   label,
			Unique: cbDay,
			Data:   choice.Encode(),
		})
	}
	if gameType == models.GameMeetEat {
		return keyboard.InlineButtons(buttons)
	}
	return keyboard.InlineButtonsNPerRow(buttons, 3)
}

func backToMainKB() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnBackToMain, Unique: cbBackMain},
	})
}

func cabinetEntryKB() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Edit profile", Unique: cbEditProfile},
		{Text: "Back", Unique: cbBackCabinet},
	})
}

func visitsKB() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Book a new game", Unique: cbToGames},
		{Text: "Back", Unique: cbBackCabinet},
	})
}

func answerKB() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: answeredMoreBtn, Unique: cbMoreHelp},
		{Text: backToMenuBtn, Unique: cbBackMain},
	})
}

// gameTypeByTitle resolves a games-menu button label back to its type.
func gameTypeByTitle(label string) (models.GameType, bool) {
	for _, g := range []models.GameType{
		models.GameMeetEat, models.GameLockStock, models.GameBarLiar, models.GameQuickDates,
	} {
		if g.Title() == label {
			return g, true
		}
	}
	return "", false
}
