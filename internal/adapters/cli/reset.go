package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eventgames/snakeladders-go/internal/infrastructure/database"
)

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Abandon the current game and clear the save",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, repo, err := openRepository()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if !force {
				fmt.Print("Abandon the current game? [y/N] ")
				reader := bufio.NewReader(os.Stdin)
				line, _ := reader.ReadString('\n')
				if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := repo.Clear(context.Background()); err != nil {
				return err
			}
			fmt.Println("Game cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
