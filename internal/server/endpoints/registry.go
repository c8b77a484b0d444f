package endpoints

import (
	"github.com/jackzampolin/markscan/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// MaxUploadMemory bounds in-memory multipart parsing for uploads.
	MaxUploadMemory int64
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		&HealthEndpoint{},

		// UI endpoints
		&IndexEndpoint{},
		&StateEndpoint{},
		&ExtractEndpoint{MaxMemory: cfg.MaxUploadMemory},
	}
}
