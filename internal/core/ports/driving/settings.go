package driving

import "github.com/custodia-labs/dvf-ingest/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings merged over the defaults.
	Get() (*domain.Settings, error)

	// Set validates and stores one setting by dotted key.
	Set(key string, value any) error

	// ConfigPath returns where settings are persisted.
	ConfigPath() string
}
