package config

import "time"

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// SessionTTL bounds abandoned game sessions. Zero keeps them forever.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"0"`
}

type AuthConfig struct {
	JWTSecret string        `env:"APP_JWT_SECRET"`
	TokenTTL  time.Duration `env:"APP_TOKEN_TTL" envDefault:"24h"`
}
