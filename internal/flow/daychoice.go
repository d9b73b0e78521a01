package flow

import (
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/eventbot/internal/models"
)

const (
	dayChoiceVersion = "v1"
	dayChoiceSep     = ":"
	dateLayout       = "2006-01-02"
)

// DayChoice is the structured payload of the day-picker callback. It is
// versioned so stale buttons from an older encoding fail parsing instead of
// booking the wrong thing.
type DayChoice struct {
	GameType   models.GameType
	Date       time.Time
	Restaurant string
}

// Encode renders the choice as a callback payload.
func (d DayChoice) Encode() string {
	return strings.Join([]string{
		dayChoiceVersion,
		string(d.GameType),
		d.Date.Format(dateLayout),
		d.Restaurant,
	}, dayChoiceSep)
}

// ParseDayChoice decodes and validates a day-picker payload.
func ParseDayChoice(payload string) (DayChoice, error) {
	parts := strings.SplitN(payload, dayChoiceSep, 4)
	if len(parts) != 4 {
		return DayChoice{}, fmt.Errorf("flow: malformed day payload %q", payload)
	}
	if parts[0] != dayChoiceVersion {
		return DayChoice{}, fmt.Errorf("flow: unsupported day payload version %q", parts[0])
	}
	gameType := models.GameType(parts[1])
	if !gameType.Known() {
		return DayChoice{}, fmt.Errorf("flow: unknown game type %q", parts[1])
	}
	date, err := time.Parse(dateLayout, parts[2])
	if err != nil {
		return DayChoice{}, fmt.Errorf("flow: bad day payload date %q", parts[2])
	}
	return DayChoice{
		GameType:   gameType,
		Date:       date,
		Restaurant: parts[3],
	}, nil
}
