package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/eventgames/snakeladders-go/test/bdd/steps"
	"github.com/eventgames/snakeladders-go/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeGameplayScenario(sc)
	steps.InitializePersistenceScenario(sc)
}

func TestMain(m *testing.M) {
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("failed to initialize shared test database: " + err.Error())
	}
	defer helpers.CloseSharedTestDB()

	os.Exit(m.Run())
}
