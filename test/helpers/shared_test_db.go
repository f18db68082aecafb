package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/eventgames/snakeladders-go/internal/infrastructure/database"
)

// SharedTestDB is the singleton database instance used across BDD scenarios
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database.
// Called once in TestMain before running any scenarios.
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables clears all data so each scenario starts clean
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	return SharedTestDB.Exec("DELETE FROM local_store").Error
}

// CloseSharedTestDB releases the shared test database
func CloseSharedTestDB() {
	if SharedTestDB != nil {
		database.Close(SharedTestDB)
		SharedTestDB = nil
	}
}
