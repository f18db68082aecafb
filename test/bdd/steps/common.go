package steps

import (
	"fmt"
	"strings"

	"github.com/eventgames/snakeladders-go/internal/application/session"
)

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func findPlayerID(svc *session.Service, name string) (string, error) {
	for _, p := range svc.Snapshot().Players {
		if p.Name == name {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("no player named %q", name)
}
