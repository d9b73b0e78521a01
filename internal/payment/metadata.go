package payment

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m3rciful/eventbot/internal/models"
)

const dateLayout = "2006-01-02"

// Metadata is the booking context carried through the checkout round trip.
// It is embedded in the session at creation and comes back verbatim on the
// completion event.
type Metadata struct {
	UserID     int64
	GameType   models.GameType
	GameDate   time.Time
	Restaurant string
}

// Encode renders the metadata as checkout key/value pairs.
func (m Metadata) Encode() map[string]string {
	return map[string]string{
		"user_id":    strconv.FormatInt(m.UserID, 10),
		"game_type":  string(m.GameType),
		"game_date":  m.GameDate.Format(dateLayout),
		"restaurant": m.Restaurant,
	}
}

// ParseMetadata validates and decodes checkout metadata. Unknown game types
// and malformed ids or dates are rejected so a tampered or foreign event
// never reaches the ledger.
func ParseMetadata(md map[string]string) (Metadata, error) {
	userID, err := strconv.ParseInt(md["user_id"], 10, 64)
	if err != nil || userID <= 0 {
		return Metadata{}, fmt.Errorf("payment: bad user_id %q", md["user_id"])
	}
	gameType := models.GameType(md["game_type"])
	if !gameType.Known() {
		return Metadata{}, fmt.Errorf("payment: unknown game_type %q", md["game_type"])
	}
	gameDate, err := time.Parse(dateLayout, md["game_date"])
	if err != nil {
		return Metadata{}, fmt.Errorf("payment: bad game_date %q", md["game_date"])
	}
	return Metadata{
		UserID:     userID,
		GameType:   gameType,
		GameDate:   gameDate,
		Restaurant: md["restaurant"],
	}, nil
}
