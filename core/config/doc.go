// Package config provides configuration management for stock-matcher.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key, scan cooldown, export prefix
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Database: MySQL, PostgreSQL or SQLite connection details
//   - Catalog: master list source (published CSV URL or bucket object)
//   - State: session persistence driver (memory, sql, object, redis)
//   - Redis: redis connection URL
//
// Environment keys are the section and field joined by an underscore, e.g.
// SERVER_PORT, CATALOG_URL, STATE_DRIVER.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
