package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventgames/snakeladders-go/internal/infrastructure/database"
)

// NewDiceCommand creates the dice command
func NewDiceCommand() *cobra.Command {
	var maxPoints int
	var nextRound bool

	cmd := &cobra.Command{
		Use:   "dice",
		Short: "Change the maximum dice value",
		Long: `Change the maximum dice value for the current game. By default the
change applies immediately; with --next-round it is held back and takes
effect when the round rolls over, so everyone in the current round rolls
under the same bound.`,
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
			if svc.Snapshot() == nil {
				return fmt.Errorf("no game in progress, run 'snakeladders new' first")
			}

			if nextRound {
				if err := svc.UpdateDiceConfigPending(maxPoints); err != nil {
					return err
				}
				fmt.Printf("Dice will change to d%d at the next round\n", maxPoints)
			} else {
				if err := svc.UpdateDiceConfig(maxPoints); err != nil {
					return err
				}
				fmt.Printf("Dice changed to d%d\n", maxPoints)
			}

			return svc.Persist(context.Background(), repo)
		},
	}

	cmd.Flags().IntVar(&maxPoints, "max", 0, "New maximum dice value (required)")
	cmd.Flags().BoolVar(&nextRound, "next-round", false, "Apply at the next round boundary")
	cmd.MarkFlagRequired("max")

	return cmd
}
