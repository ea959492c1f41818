package config

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string         `env:"ENV" env-required:"true" yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type HTTPConfig struct {
	Host              string        `env:"HTTP_HOST" env-default:"0.0.0.0" yaml:"host"`
	Port              string        `env:"HTTP_PORT" env-default:"8080" yaml:"port"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s" yaml:"shutdown_timeout"`
}

type JWTConfig struct {
	Issuer          string        `env:"JWT_ISSUER" env-default:"taskboard" yaml:"issuer"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true" yaml:"signing_key"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m" yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h" yaml:"refresh_token_ttl"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-required:"true" yaml:"host"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432" yaml:"port"`
	Username       string        `env:"POSTGRES_USERNAME" env-required:"true" yaml:"username"`
	Password       string        `env:"POSTGRES_PASSWORD" env-required:"true" yaml:"password"`
	Database       string        `env:"POSTGRES_DATABASE" env-required:"true" yaml:"database"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable" yaml:"ssl_mode"`
	MaxConns       int32         `env:"POSTGRES_MAX_CONNS" env-default:"10" yaml:"max_conns"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s" yaml:"connect_timeout"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s" yaml:"ping_timeout"`
}

// ConnString returns the postgres connection URL.
func (c PostgresConfig) ConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     c.Database,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}
