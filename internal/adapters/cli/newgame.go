package cli

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/eventgames/snakeladders-go/internal/application/session"
	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/infrastructure/database"
)

// NewNewCommand creates the new-game command
func NewNewCommand() *cobra.Command {
	var playersFlag string
	var teamsFlag string
	var mapFlag string
	var seed int64

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Set up a new game",
		Long: `Set up a new game with the given players, optional teams and board map.

With teams, players are assigned round-robin and inherit their team's color.
The random map draws a fresh snake/ladder layout; the fixed map gives every
game the same board.

Examples:
  snakeladders new --players Ana,Bruno,Carla
  snakeladders new --players Ana,Bruno,Carla,Dario --teams Red,Blue
  snakeladders new --players Ana,Bruno --map random`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := splitList(playersFlag)
			if len(names) < 2 {
				return fmt.Errorf("--players needs at least 2 comma-separated names")
			}

			cfg, db, repo, err := openRepository()
			if err != nil {
				return err
			}
			defer database.Close(db)

			var teams []*game.Team
			var assignments []*game.Team
			if teamNames := splitList(teamsFlag); len(teamNames) > 0 {
				teams, err = game.NewTeams(teamNames)
				if err != nil {
					return err
				}
				assignments = make([]*game.Team, len(names))
				for i := range names {
					assignments[i] = teams[i%len(teams)]
				}
			}

			players, err := game.NewPlayers(names, assignments)
			if err != nil {
				return err
			}

			var rng *rand.Rand
			if seed != 0 {
				rng = rand.New(rand.NewSource(seed))
			}
			gen := board.NewGenerator(rng)

			var hazards []board.Hazard
			mapType := game.MapTypeFixed
			switch mapFlag {
			case "fixed":
				hazards, err = gen.Fixed()
			case "random":
				mapType = game.MapTypeRandom
				hazards, err = gen.Random(board.RandomConfig{
					Count:  cfg.Game.HazardCount,
					MinGap: cfg.Game.MinGap,
					MaxGap: cfg.Game.MaxGap,
				})
			default:
				return fmt.Errorf("--map must be fixed or random, got %q", mapFlag)
			}
			if err != nil {
				return err
			}

			svc := session.NewService(nil, nil)
			state, err := svc.Initialize(players, hazards, teams, nil, mapType)
			if err != nil {
				return err
			}
			if cfg.Game.DiceMaxPoints != game.DefaultDiceMax {
				if err := svc.UpdateDiceConfig(cfg.Game.DiceMaxPoints); err != nil {
					return err
				}
			}
			if err := svc.Persist(context.Background(), repo); err != nil {
				return err
			}

			fmt.Printf("Game %s ready: %d players, %d hazards (%s map)\n",
				state.ID, len(state.Players), len(state.Hazards), state.MapType)
			first, err := state.Player(state.CurrentRollerID)
			if err == nil {
				fmt.Printf("%s rolls first\n", first.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&playersFlag, "players", "", "Comma-separated player names (required)")
	cmd.Flags().StringVar(&teamsFlag, "teams", "", "Comma-separated team names (2-8, optional)")
	cmd.Flags().StringVar(&mapFlag, "map", "fixed", "Board map: fixed or random")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the random map (0 = time-based)")
	_ = cmd.MarkFlagRequired("players")

	return cmd
}
