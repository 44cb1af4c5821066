package fantasyteam

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

// TeamPlayer is a frozen snapshot of a player taken when the team is created.
type TeamPlayer struct {
	PlayerID string
	Name     string
	Role     player.Role
	TeamName string
	Credits  player.Credits
}

// Team is a user's 11-player selection for one match. It is immutable once
// created.
type Team struct {
	ID            string
	UserID        string
	MatchID       string
	Name          string
	CaptainID     string
	ViceCaptainID string
	TotalCredits  player.Credits
	Players       []TeamPlayer
	CreatedAt     time.Time
}

func (t Team) ValidateBasic() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if t.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

func (t Team) HasPlayer(playerID string) bool {
	for _, p := range t.Players {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}
