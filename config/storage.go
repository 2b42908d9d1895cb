package config

// StorageMode selects the durable storage backend.
type StorageMode string

const (
	// StorageModeRedis persists durable keys in Redis.
	StorageModeRedis StorageMode = "redis"
	// StorageModeMemory keeps everything in process memory. Durable keys
	// then behave like session keys; intended for development and tests.
	StorageModeMemory StorageMode = "memory"
)

// StorageConfig contains durable storage configuration.
type StorageConfig struct {
	// Mode selects the durable backend.
	Mode StorageMode `env:"STORAGE_MODE" envDefault:"redis"`

	// Redis connection settings for the durable scope.
	Redis RedisConfig `envPrefix:"REDIS_"`

	// KeyPrefix namespaces every durable key.
	KeyPrefix string `env:"STORAGE_KEY_PREFIX" envDefault:"console:"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
