package statestore

// Drivers accepted by Config.Driver.
const (
	DriverMemory = "memory"
	DriverSQL    = "sql"
	DriverObject = "object"
	DriverRedis  = "redis"
)

// Config holds configuration for state persistence.
type Config struct {
	// Driver selects the backend (memory, sql, object, redis).
	Driver string `mapstructure:"driver" default:"memory"`
	// Key is the redis key holding the state.
	Key string `mapstructure:"key" default:"stockmatch:state"`
	// ObjectPrefix is the bucket prefix for the object backend.
	ObjectPrefix string `mapstructure:"object_prefix" default:"state/"`
}
