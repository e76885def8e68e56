package redis

// Config holds the connection settings for the Redis client.
type Config struct {
	Addr           string `env:"ADDRESS" envDefault:""`
	Username       string `env:"USERNAME" envDefault:""`
	Password       string `env:"PASSWORD" envDefault:""`
	DB             int    `env:"DB" envDefault:"0"`
	DefaultChannel string `env:"DEFAULT_CHANNEL" envDefault:"depth"`
}

// Enabled reports whether an address has been configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}
