package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/eventgames/snakeladders-go/internal/domain/shared"
	"github.com/eventgames/snakeladders-go/pkg/utils"
)

// FinishPosition is the cell a player must land on exactly to finish.
const FinishPosition = 100

// Player is a participant token on the board. Identity, name, color, team and
// turn order are fixed at creation; position, Finished and FinishedAt mutate
// during play. Players are never deleted during a session.
type Player struct {
	ID         string
	Name       string
	Color      string
	TeamID     string
	TeamColor  string
	Position   int
	Finished   bool
	FinishedAt *time.Time
	TurnOrder  int
}

// NewPlayer validates and constructs a player. The name is trimmed and must
// be unique case-insensitively among existing players. When team is non-nil
// the player inherits its color; otherwise color must be supplied by the
// caller (the bulk factory generates evenly spaced hues).
func NewPlayer(name string, turnOrder int, color string, team *Team, existing []*Player) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "player name must not be empty")
	}
	if turnOrder < 0 {
		return nil, shared.NewValidationError("turnOrder", "turn order must not be negative")
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, name) {
			return nil, shared.NewValidationError("name", fmt.Sprintf("player name %q is already taken", name))
		}
	}

	player := &Player{
		ID:        utils.GenerateID("player"),
		Name:      name,
		Color:     color,
		Position:  0,
		TurnOrder: turnOrder,
	}
	if team != nil {
		player.TeamID = team.ID
		player.TeamColor = team.Color.Hex
		player.Color = team.Color.Hex
	}
	return player, nil
}

// NewPlayers builds the full player list for a game with strictly increasing
// turn order 0..n-1. teams may be nil for free-for-all games; when provided,
// teams[i] is the team of names[i] (nil entries allowed). Players without a
// team color get an evenly spaced hue around the color wheel, guaranteeing
// visually distinct colors for any player count.
func NewPlayers(names []string, teams []*Team) ([]*Player, error) {
	if len(names) < 2 {
		return nil, shared.NewValidationError("players", "a game needs at least 2 players")
	}
	if teams != nil && len(teams) != len(names) {
		return nil, shared.NewValidationError("teams", "team assignments must match player count")
	}

	players := make([]*Player, 0, len(names))
	for i, name := range names {
		var team *Team
		if teams != nil {
			team = teams[i]
		}
		color := HueColor(i, len(names))
		p, err := NewPlayer(name, i, color, team, players)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

// HueColor generates an evenly spaced HSL color for the index-th of total
// players: hue = index * 360 / total at fixed saturation and lightness.
func HueColor(index, total int) string {
	hue := 0
	if total > 0 {
		hue = index * 360 / total
	}
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue)
}

// FindPlayer returns the player with the given id, or an error when unknown.
func FindPlayer(players []*Player, id string) (*Player, error) {
	for _, p := range players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.NewUnknownPlayerError(id)
}

// ActivePlayers returns the players still in rotation, in turn order.
func ActivePlayers(players []*Player) []*Player {
	active := make([]*Player, 0, len(players))
	for _, p := range players {
		if !p.Finished {
			active = append(active, p)
		}
	}
	return active
}

// Rank returns the 1-based final rank of the player among finished players,
// ordered by finish time (earliest finish = best rank). Unfinished players
// have no rank and report 0.
func Rank(players []*Player, id string) int {
	target, err := FindPlayer(players, id)
	if err != nil || !target.Finished || target.FinishedAt == nil {
		return 0
	}

	rank := 1
	for _, p := range players {
		if p.ID == id || !p.Finished || p.FinishedAt == nil {
			continue
		}
		if p.FinishedAt.Before(*target.FinishedAt) {
			rank++
		}
	}
	return rank
}
