package bot

import "github.com/m3rciful/eventbot/internal/models"

const (
	introText = "Welcome to the social games club! 🎲\n" +
		"We run dinner meetups, party games, and quick dates every week.\n" +
		"Fill in a short profile to get started."

	fillProfilePrompt = "Fill in the profile to get started:"
	askNameText       = "What's your name?"
	askAgeText        = "How old are you?"
	askAnswerText     = "One last question: what's your favourite way to spend an evening?"
	badAgeText        = "Please send your age as a number."
	underageNotice    = "⚠️ Participants under 18 can't join dating events. Everything else is open to you."
	liabilityNotice   = "⚠️ If you misstate your age, the responsibility is yours."

	mainMenuText     = "Main menu:"
	gamesMenuText    = "Pick a game:"
	cabinetMenuText  = "Personal cabinet:"
	chooseWeekText   = "Pick a week:"
	chooseDayText    = "Pick a day:"
	quickDatesDenied = "Quick Dates is restricted to participants 18 and over."
	watchdogNudge    = "We're still waiting for your choice! ⏳"

	helpPrompt   = "Write your question and the admin will reply here."
	helpReceived = "Question sent! You'll get an answer soon."

	profileMissing = "Profile not found. Use /start to fill it in."
	noVisitsText   = "None yet"

	answeredMoreBtn = "Ask another question"
	backToMenuBtn   = "Back to main menu"
)

// rulesText returns the rules blurb shown before booking a game.
func rulesText(g models.GameType) string {
	switch g {
	case models.GameMeetEat:
		return "Meet&Eat 🍝\n" +
			"Six strangers, one themed restaurant evening. We book the table, you bring the conversation.\n" +
			"Be on time; the table is held for 15 minutes."
	case models.GameLockStock:
		return "Lock Stock 🃏\n" +
			"A team card night in the club bar. Teams are drawn on the spot, rules are explained before the first round."
	case models.GameBarLiar:
		return "Liars Bar 🍸\n" +
			"A social deduction evening. Keep a straight face and find the liars at your table."
	case models.GameQuickDates:
		return "Quick Dates 💘\n" +
			"Classic speed dating: seven minutes per pair, matches exchanged at the end. Ages 18 and over."
	}
	return "Check the rules with the organisers before booking."
}
