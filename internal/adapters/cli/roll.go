package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventgames/snakeladders-go/internal/application/session"
	"github.com/eventgames/snakeladders-go/internal/domain/board"
	"github.com/eventgames/snakeladders-go/internal/domain/game"
	"github.com/eventgames/snakeladders-go/internal/infrastructure/database"
)

// NewRollCommand creates the roll command
func NewRollCommand() *cobra.Command {
	var targetFlag string
	var stayFlag bool

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Roll the dice and play out the turn",
		Long: `Roll the dice for the current roller and play out the whole turn:
move the target token, resolve any snake or ladder, check the win
condition, save the game and pass the turn.

The target defaults to the roller; in team play any active teammate can
be nominated with --target. Landing on a ladder opens a 5-second choice
window that defaults to climbing; --stay declines up front.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, repo, err := openRepository()
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
				return fmt.Errorf("no game in progress, run 'snakeladders new' first")
			}

			roller, err := state.Player(state.CurrentRollerID)
			if err != nil {
				return err
			}

			target := roller
			if targetFlag != "" {
				target, err = resolvePlayer(state, targetFlag)
				if err != nil {
					return err
				}
				if err := svc.SetSelectedTarget(target.ID); err != nil {
					return err
				}
			}

			result, err := svc.RollDice()
			if err != nil {
				return err
			}
			pair := result.Pair()
			fmt.Printf("%s rolls %d (%d + %d) for %s\n",
				roller.Name, result.Value, pair[0], pair[1], target.Name)

			outcome, err := svc.MovePlayer(target.ID, result.Value)
			if err != nil {
				return err
			}
			if outcome.Overshoot {
				fmt.Printf("Overshoot! %s needs exactly %d to finish and stays at %d\n",
					target.Name, game.FinishPosition-outcome.From, outcome.From)
			} else {
				fmt.Printf("%s moves %d -> %d\n", target.Name, outcome.From, outcome.To)
			}

			if hazard, ok := svc.CheckSnakeOrLadder(outcome.To); ok {
				if err := resolveHazard(svc, target, hazard, stayFlag, cfg.Game.LadderWindow); err != nil {
					return err
				}
			}

			won, err := svc.CheckWinCondition(target.ID)
			if err != nil {
				return err
			}
			if won {
				if err := svc.MarkPlayerFinished(target.ID); err != nil {
					return err
				}
				snap := svc.Snapshot()
				fmt.Printf("%s finished in place %d!\n", target.Name, game.Rank(snap.Players, target.ID))
				if snap.Finished {
					fmt.Println("All players finished - game over.")
				}
			}

			if err := svc.Persist(context.Background(), repo); err != nil {
				return err
			}

			if err := svc.NextTurn(); err != nil {
				return err
			}
			if err := svc.Persist(context.Background(), repo); err != nil {
				return err
			}

			snap := svc.Snapshot()
			if !snap.Finished {
				next, err := snap.Player(snap.CurrentRollerID)
				if err == nil {
					fmt.Printf("Next roller: %s (round %d)\n", next.Name, snap.CurrentRound)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetFlag, "target", "", "Player whose token moves (default: the roller)")
	cmd.Flags().BoolVar(&stayFlag, "stay", false, "Decline a ladder instead of climbing")

	return cmd
}

// resolveHazard applies snakes automatically and runs the ladder choice
// window: explicit input or the timeout default "climb", whichever comes
// first, exactly once.
func resolveHazard(svc *session.Service, target *game.Player, hazard board.Hazard, stay bool, window time.Duration) error {
	if hazard.Kind == board.KindSnake {
		fmt.Printf("Snake! %s slides %d -> %d\n", target.Name, hazard.Start, hazard.End)
		return svc.ApplySpecialMove(target.ID, hazard)
	}

	if stay {
		fmt.Printf("%s stays at %d, ignoring the ladder to %d\n", target.Name, hazard.Start, hazard.End)
		return nil
	}

	climb := promptLadderChoice(target.Name, hazard, window)
	if !climb {
		fmt.Printf("%s stays at %d\n", target.Name, hazard.Start)
		return nil
	}
	fmt.Printf("Ladder! %s climbs %d -> %d\n", target.Name, hazard.Start, hazard.End)
	return svc.ApplySpecialMove(target.ID, hazard)
}

// promptLadderChoice asks on stdin with the choice window running. The
// prompt resolves once: either the typed answer or the climb default.
func promptLadderChoice(name string, hazard board.Hazard, window time.Duration) bool {
	fmt.Printf("%s landed on a ladder %d -> %d. Climb? [Y/n] (auto-climb in %s) ", name, hazard.Start, hazard.End, window)

	answer := make(chan bool, 1)
	prompt := session.NewLadderPrompt(window, func(climb bool) {
		answer <- climb
	})

	go func() {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		prompt.Choose(!strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "n"))
	}()

	return <-answer
}
