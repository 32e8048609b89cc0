package endpoints

import (
	"github.com/hablemosbien/bookforge/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health
		&HealthEndpoint{},

		// Generation lifecycle
		&GenerateBookEndpoint{},
		&GetBookEndpoint{},
		&DownloadBookEndpoint{},
		&ResetBookEndpoint{},

		// Settings
		&SettingsEndpoint{},
	}
}
