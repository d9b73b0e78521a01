// Package flow defines the conversation state machines and their pure
// decision logic: intake steps, week/day option generation, and the encoded
// day choice carried through callbacks.
package flow

import (
	"strconv"

	"github.com/m3rciful/eventbot/core/telegram/state"
)

// Intake flow steps.
const (
	StateAwaitingName   state.State = "intake:awaiting_name"
	StateAwaitingAge    state.State = "intake:awaiting_age"
	StateAwaitingAnswer state.State = "intake:awaiting_answer"
)

// Registration flow steps.
const (
	StateRulesConfirm state.State = "reg:rules_confirm"
	StateWeekChoice   state.State = "reg:week_choice"
	StateDayChoice    state.State = "reg:day_choice"
)

// Help flow step.
const StateAwaitingQuestion state.State = "help:awaiting_question"

// Draft keys used in the state manager's TempData.
const (
	DraftName     = "name"
	DraftAge      = "age"
	DraftGameType = "game_type"
	DraftWeekBase = "week_base"
)

// WatchdogKey names the inactivity nudge task for one user's registration
// flow. One key per (user, flow), so a restarted flow supersedes the old
// watchdog instead of racing it.
func WatchdogKey(userID int64) string {
	return "watchdog:reg:" + strconv.FormatInt(userID, 10)
}

// AdultAge is the threshold for the age-restricted game type.
const AdultAge = 18
