package contest

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// Status is the contest lifecycle. It only moves forward:
// upcoming -> live -> completed.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

var (
	ErrContestFull    = errors.New("contest is full")
	ErrContestClosed  = errors.New("contest is closed")
	ErrMatchMismatch  = errors.New("team belongs to a different match")
	ErrDuplicateEntry = errors.New("user already joined contest")
)

var statusRank = map[Status]int{
	StatusUpcoming:  0,
	StatusLive:      1,
	StatusCompleted: 2,
}

// Contest is a competitive pool scoped to one match. Entry fee is kept as a
// generic field and is zero for every provisioned contest.
type Contest struct {
	ID             string
	MatchID        string
	Name           string
	Slug           string
	EntryFee       int64
	PrizePool      int64
	MaxEntries     int
	CurrentEntries int
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c Contest) IsFull() bool {
	return c.CurrentEntries >= c.MaxEntries
}

func (c Contest) IsOpen() bool {
	return c.Status == StatusUpcoming
}

func (c Contest) SpotsLeft() int {
	if c.IsFull() {
		return 0
	}
	return c.MaxEntries - c.CurrentEntries
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contest id is required")
	}
	if c.MatchID == "" {
		return fmt.Errorf("contest match id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("contest name is required")
	}
	if c.MaxEntries <= 0 {
		return fmt.Errorf("contest max entries must be greater than zero")
	}
	if c.EntryFee < 0 || c.PrizePool < 0 {
		return fmt.Errorf("contest entry fee and prize pool must not be negative")
	}
	if _, ok := statusRank[c.Status]; !ok {
		return fmt.Errorf("invalid contest status: %s", c.Status)
	}
	return nil
}

// CanTransition reports whether status may move from one value to another.
// Only forward moves are allowed, including upcoming straight to completed.
func CanTransition(from, to Status) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Predecessors lists the statuses that may advance to the given one.
func Predecessors(to Status) []Status {
	out := make([]Status, 0, 2)
	for _, from := range []Status{StatusUpcoming, StatusLive, StatusCompleted} {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

// Entry links one user's team to one contest. Rank is filled in by an
// external ranking process.
type Entry struct {
	ID        string
	ContestID string
	UserID    string
	TeamID    string
	Points    float64
	Rank      *int
	CreatedAt time.Time
}

type LeaderboardRow struct {
	EntryID  string
	UserID   string
	UserName string
	TeamID   string
	TeamName string
	Points   float64
	Rank     *int
}

// Template describes a contest created by default for every new match.
type Template struct {
	Name       string
	EntryFee   int64
	PrizePool  int64
	MaxEntries int
}

var DefaultTemplates = []Template{
	{Name: "Mega Contest", EntryFee: 0, PrizePool: 10000, MaxEntries: 1000},
	{Name: "Practice Contest", EntryFee: 0, PrizePool: 0, MaxEntries: 100},
}

// FromTemplate builds an upcoming contest for a match. The slug is the
// idempotency key together with the match id.
func FromTemplate(id, matchID string, tpl Template, now time.Time) Contest {
	return Contest{
		ID:         id,
		MatchID:    matchID,
		Name:       tpl.Name,
		Slug:       slug.Make(tpl.Name),
		EntryFee:   tpl.EntryFee,
		PrizePool:  tpl.PrizePool,
		MaxEntries: tpl.MaxEntries,
		Status:     StatusUpcoming,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
