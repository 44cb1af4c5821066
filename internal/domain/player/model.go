package player

import (
	"fmt"
	"strings"
)

// Role is a cricket playing role used for team building.
type Role string

const (
	RoleBatsman      Role = "Batsman"
	RoleBowler       Role = "Bowler"
	RoleAllRounder   Role = "All-Rounder"
	RoleWicketKeeper Role = "Wicket-Keeper"
)

var AllRoles = map[Role]struct{}{
	RoleBatsman:      {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketKeeper: {},
}

// Player is a selectable cricketer in a match squad. Credits are attached per
// squad fetch and frozen only when a team snapshot is created.
type Player struct {
	ID           string
	Name         string
	Role         Role
	Country      string
	BattingStyle string
	BowlingStyle string
	ImageURL     string
	Credits      Credits
}

// SquadTeam is one real team's list of eligible players for a match.
type SquadTeam struct {
	TeamName  string
	ShortName string
	ImageURL  string
	Players   []Player
}

// Stat is one row of a player's career statistics.
type Stat struct {
	Function  string
	MatchType string
	Stat      string
	Value     string
}

// Profile is the player-information view returned by the provider.
type Profile struct {
	ID           string
	Name         string
	Country      string
	Role         Role
	BattingStyle string
	BowlingStyle string
	PlaceOfBirth string
	DateOfBirth  string
	ImageURL     string
	Stats        []Stat
}

// InferRole maps provider role text onto a Role. When the text is absent or
// unrecognised, bowling style marks a bowler and everything else a batsman.
func InferRole(raw, battingStyle, bowlingStyle string) Role {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(value, "wk"), strings.Contains(value, "keeper"):
		return RoleWicketKeeper
	case strings.Contains(value, "allrounder"), strings.Contains(value, "all-rounder"), strings.Contains(value, "all rounder"):
		return RoleAllRounder
	case strings.Contains(value, "bowl"):
		return RoleBowler
	case strings.Contains(value, "bat"):
		return RoleBatsman
	}

	hasBatting := strings.TrimSpace(battingStyle) != ""
	hasBowling := strings.TrimSpace(bowlingStyle) != ""
	switch {
	case hasBowling && !hasBatting:
		return RoleBowler
	default:
		return RoleBatsman
	}
}

func ParseRole(raw string) (Role, error) {
	role := Role(strings.TrimSpace(raw))
	if _, ok := AllRoles[role]; ok {
		return role, nil
	}
	return "", fmt.Errorf("invalid player role: %q", raw)
}
