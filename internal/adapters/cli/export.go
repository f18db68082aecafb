package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventgames/snakeladders-go/internal/adapters/persistence"
	"github.com/eventgames/snakeladders-go/internal/infrastructure/database"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the game state and move history as JSON",
		Long: `Export the current game state together with the recorded move history
to a JSON file. The export is one-way: it is a human-readable report,
not a save file, and cannot be imported back.`,
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
				return fmt.Errorf("no game to export")
			}

			if outFile == "" {
				outFile = fmt.Sprintf("snakeladders-%s.json", time.Now().UTC().Format("20060102-150405"))
			}
			exportedAt := time.Now().UTC().Format(time.RFC3339Nano)
			if err := persistence.ExportToFile(outFile, state, svc.History(), exportedAt); err != nil {
				return err
			}
			fmt.Printf("Exported game %s to %s\n", state.ID, outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "Output file (default: snakeladders-<timestamp>.json)")

	return cmd
}
