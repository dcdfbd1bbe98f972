package backend

import (
	"fmt"
	"time"

	"complaints/internal/config"
	"complaints/internal/store/sheets"
)

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// Memory backend seed directory
	DataDirectory string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// SQLite
	SQLiteDBPath string

	// Google Sheets
	Sheets sheets.Config

	// Read-through cache in front of the gateway. CacheTTL of zero disables it.
	RedisURL  string
	CacheTTL  time.Duration
	CacheSize int
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:          backendType,
		DataDirectory: appConfig.DataDir,
		MongoURI:      appConfig.MongoURI,
		MongoDatabase: appConfig.MongoDatabase,
		SQLiteDBPath:  appConfig.SQLiteDBPath,
		Sheets: sheets.Config{
			SpreadsheetID:      appConfig.GoogleSpreadsheetID,
			ComplaintsSheet:    appConfig.GoogleComplaintsSheet,
			CategoriesSheet:    appConfig.GoogleCategoriesSheet,
			CategoriesHeader:   appConfig.GoogleCategoriesHeader,
			ServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
			ServiceAccountFile: appConfig.GoogleServiceAccountFile,
		},
		RedisURL:  appConfig.RedisURL,
		CacheTTL:  appConfig.StoreCacheTTL,
		CacheSize: 8,
	}, nil
}

// Mirror returns the configuration of the worker's mirror target: same
// connection settings, another backend type, and no cache.
func (c Config) Mirror(t BackendType) Config {
	c.Type = t
	c.RedisURL = ""
	c.CacheTTL = 0
	return c
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case MongoBackend:
		if c.MongoURI == "" {
			return fmt.Errorf("MongoDB URI is required for mongo backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case SheetsBackend:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets backend")
		}
	case MemoryBackend:
		// DataDirectory defaults to "data"
	}
	return nil
}
