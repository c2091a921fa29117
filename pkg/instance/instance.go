package instance

import (
	"os"

	"github.com/angelmondragon/filmorate-backend/pkg/env"
)

// GetID names the running API process for log correlation. It prefers an
// explicit FILMORATE_INSTANCE_ID, then the platform dyno name, then the
// hostname.
func GetID() string {
	if id := env.FirstOf("", "FILMORATE_INSTANCE_ID", "DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
