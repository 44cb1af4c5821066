package fantasyteam

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
)

var (
	ErrInvalidTeamSize       = errors.New("invalid team size")
	ErrCaptainNotInTeam      = errors.New("captain is not in team")
	ErrViceCaptainNotInTeam  = errors.New("vice-captain is not in team")
	ErrCaptainIsViceCaptain  = errors.New("captain and vice-captain must differ")
	ErrExceededBudget        = errors.New("credit budget exceeded")
	ErrDuplicatePlayerInTeam = errors.New("duplicate player in team")
	ErrInvalidPlayerSnapshot = errors.New("invalid player snapshot")
)

// Rules stores team-building validation parameters.
type Rules struct {
	SquadSize          int
	TotalCreditsBudget player.Credits
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:          11,
		TotalCreditsBudget: 1000,
	}
}

// ValidateTeam checks, in order: team size, captain membership, vice-captain
// membership, captain/vice-captain distinctness and the credit budget. Player
// snapshot sanity is checked last.
func ValidateTeam(team Team, rules Rules) error {
	if len(team.Players) != rules.SquadSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidTeamSize, rules.SquadSize, len(team.Players))
	}
	if !team.HasPlayer(team.CaptainID) {
		return fmt.Errorf("%w: %s", ErrCaptainNotInTeam, team.CaptainID)
	}
	if !team.HasPlayer(team.ViceCaptainID) {
		return fmt.Errorf("%w: %s", ErrViceCaptainNotInTeam, team.ViceCaptainID)
	}
	if team.CaptainID == team.ViceCaptainID {
		return fmt.Errorf("%w: %s", ErrCaptainIsViceCaptain, team.CaptainID)
	}

	total := TotalCredits(team.Players)
	if total > rules.TotalCreditsBudget {
		return fmt.Errorf("%w: cap=%s used=%s", ErrExceededBudget, rules.TotalCreditsBudget, total)
	}

	seen := make(map[string]struct{}, len(team.Players))
	for _, p := range team.Players {
		if p.PlayerID == "" {
			return fmt.Errorf("%w: player id is required", ErrInvalidPlayerSnapshot)
		}
		if p.Credits < 0 {
			return fmt.Errorf("%w: negative credits for player %s", ErrInvalidPlayerSnapshot, p.PlayerID)
		}
		if _, exists := seen[p.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInTeam, p.PlayerID)
		}
		seen[p.PlayerID] = struct{}{}
	}

	return nil
}

func TotalCredits(players []TeamPlayer) player.Credits {
	var total player.Credits
	for _, p := range players {
		total += p.Credits
	}
	return total
}
