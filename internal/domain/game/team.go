package game

import (
	"fmt"
	"strings"

	"github.com/eventgames/snakeladders-go/internal/domain/shared"
	"github.com/eventgames/snakeladders-go/pkg/utils"
)

// TeamColor is a named color from the fixed team palette.
type TeamColor struct {
	Name string
	Hex  string
}

// TeamPalette is the fixed ordered list of colors cycled through when
// auto-generating teams.
var TeamPalette = []TeamColor{
	{Name: "crimson", Hex: "#DC143C"},
	{Name: "royalblue", Hex: "#4169E1"},
	{Name: "seagreen", Hex: "#2E8B57"},
	{Name: "goldenrod", Hex: "#DAA520"},
	{Name: "darkorchid", Hex: "#9932CC"},
	{Name: "coral", Hex: "#FF7F50"},
	{Name: "teal", Hex: "#008080"},
	{Name: "slategray", Hex: "#708090"},
}

const (
	minTeams = 2
	maxTeams = 8
)

// Team groups players under a shared color. Teams are created at setup and
// immutable afterward, except for color reassignment before game start.
type Team struct {
	ID    string
	Name  string
	Color TeamColor
}

// NewTeam validates and constructs a single team. Name comparison against
// existing teams is case-insensitive after trimming; the color must not be
// taken by another team.
func NewTeam(name string, color TeamColor, existing []*Team) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "team name must not be empty")
	}
	for _, t := range existing {
		if strings.EqualFold(t.Name, name) {
			return nil, shared.NewValidationError("name", fmt.Sprintf("team name %q is already taken", name))
		}
		if t.Color.Name == color.Name {
			return nil, shared.NewValidationError("color", fmt.Sprintf("color %q is already taken", color.Name))
		}
	}

	return &Team{
		ID:    utils.GenerateID("team"),
		Name:  name,
		Color: color,
	}, nil
}

// NewTeams builds the full team list for a game, cycling colors from the
// palette. Team count is restricted to [2,8].
func NewTeams(names []string) ([]*Team, error) {
	if len(names) < minTeams || len(names) > maxTeams {
		return nil, shared.NewValidationError("teams",
			fmt.Sprintf("team count must be between %d and %d, got %d", minTeams, maxTeams, len(names)))
	}

	teams := make([]*Team, 0, len(names))
	for i, name := range names {
		t, err := NewTeam(name, TeamPalette[i%len(TeamPalette)], teams)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

// Recolor assigns a new palette color to the team. Only callable before the
// game starts; the store enforces that.
func (t *Team) Recolor(color TeamColor, others []*Team) error {
	for _, o := range others {
		if o.ID != t.ID && o.Color.Name == color.Name {
			return shared.NewValidationError("color", fmt.Sprintf("color %q is already taken", color.Name))
		}
	}
	t.Color = color
	return nil
}
