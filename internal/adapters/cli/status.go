package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/infrastructure/database"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var showBoard bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current game state",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, repo, err := openRepository()
			if err != nil {
				return err
			}
			defer database.Close(db)

			svc, err := restoreSession(repo)
			if err != nil {
				return err
			}
			state := svc.Snapshot()
			if state == nil {
				fmt.Println("No saved game. Run 'snakeladders new' to start one.")
				return nil
			}

			fmt.Printf("Game %s (%s map, round %d)\n", state.ID, state.MapType, state.CurrentRound)
			fmt.Printf("Dice: d%d", state.Dice.MaxPoints)
			if state.Dice.PendingMaxPoints != nil {
				fmt.Printf(" (d%d next round)", *state.Dice.PendingMaxPoints)
			}
			fmt.Println()

			if state.Finished {
				fmt.Println("Status: finished")
			} else if state.Started {
				fmt.Println("Status: in progress")
			} else {
				fmt.Println("Status: waiting for first roll")
			}

			fmt.Println("\nPlayers:")
			for _, p := range state.Players {
				marker := " "
				if p.ID == state.CurrentRollerID && !state.Finished {
					marker = ">"
				}
				line := fmt.Sprintf("%s %-16s pos %3d", marker, p.Name, p.Position)
				if p.TeamID != "" {
					line += fmt.Sprintf("  team %s", p.TeamID)
				}
				if p.Finished {
					line += fmt.Sprintf("  finished #%d", game.Rank(state.Players, p.ID))
				}
				fmt.Println(line)
			}

			if showBoard {
				fmt.Println("\nHazards:")
				printHazards(state.Hazards)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showBoard, "board", false, "List the board's snakes and ladders")

	return cmd
}

func printHazards(hazards []board.Hazard) {
	sorted := make([]board.Hazard, len(hazards))
	copy(sorted, hazards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for _, h := range sorted {
		label := "ladder"
		if h.Kind == board.KindSnake {
			label = "snake"
		}
		fmt.Printf("  %-6s %3d -> %3d\n", label, h.Start, h.End)
	}
}
