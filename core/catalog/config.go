package catalog

// Config holds configuration for the master list source.
type Config struct {
	// URL is a published spreadsheet CSV export. Takes precedence over Object.
	URL string `mapstructure:"url" default:""`
	// Object is the name of a CSV object in the storage bucket.
	Object string `mapstructure:"object" default:"catalog/master.csv"`
	// TimeoutSeconds bounds the HTTP fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// SyncOnStart triggers a sync when the server boots.
	SyncOnStart bool `mapstructure:"sync_on_start" default:"true"`
}
