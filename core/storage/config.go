package storage

// Config holds the S3-compatible object storage settings. The bucket holds the
// master list object, the object state backend and published exports.
type Config struct {
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	Bucket    string `mapstructure:"bucket" default:"inventory"`
	// Region is used when the bucket has to be created. Empty lets the server pick.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
