// Package config loads server settings from the environment and an optional
// .env file. Real environment variables take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/zonehunt/internal/geo"
	"github.com/mcoot/zonehunt/internal/model"
	"github.com/mcoot/zonehunt/internal/services/session"
)

// DefaultEnvFile is read when present
const DefaultEnvFile = ".env"

// Config holds everything the server process needs to start
type Config struct {
	Host string
	Port int

	DirectorKey     string
	StorageType     string
	CredentialsFile string
	RedisURL        string
	RequireAccount  bool

	TickInterval time.Duration
	Session      session.Config

	LogLevel slog.Level
}

// LookupFunc resolves a variable name, reporting whether it was set
type LookupFunc func(key string) (string, bool)

// Load reads DefaultEnvFile if it exists and then the process environment
func Load(lookupEnv LookupFunc) (*Config, error) {
	fileVars, err := godotenv.Read(DefaultEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", DefaultEnvFile, err)
	}
	return Parse(layered(lookupEnv, fileVars))
}

// LoadFile is like Load but reads an explicit env file, which must exist
func LoadFile(path string, lookupEnv LookupFunc) (*Config, error) {
	fileVars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(layered(lookupEnv, fileVars))
}

func layered(lookupEnv LookupFunc, fileVars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}
}

// Parse builds a Config from lookup, applying defaults for unset variables
func Parse(lookup LookupFunc) (*Config, error) {
	p := parser{lookup: lookup}
	sessionCfg := session.DefaultConfig()

	cfg := &Config{
		Host:            p.str("HOST", ""),
		Port:            p.integer("PORT", 8080),
		DirectorKey:     p.str("DIRECTOR_KEY", ""),
		StorageType:     strings.ToLower(p.str("STORAGE_TYPE", "memory")),
		CredentialsFile: p.str("CREDENTIALS_FILE", "data/credentials.txt"),
		RedisURL:        p.str("REDIS_URL", ""),
		RequireAccount:  p.boolean("REQUIRE_ACCOUNT", false),
		TickInterval:    p.duration("TICK_INTERVAL", time.Second),
		LogLevel:        p.level("LOG_LEVEL", slog.LevelInfo),
	}

	sessionCfg.WarningInterval = p.duration("WARNING_INTERVAL", sessionCfg.WarningInterval)
	sessionCfg.KickTimeout = p.duration("KICK_TIMEOUT", sessionCfg.KickTimeout)
	sessionCfg.HintMinDelay = p.duration("HINT_MIN_DELAY", sessionCfg.HintMinDelay)
	sessionCfg.HintMaxDelay = p.duration("HINT_MAX_DELAY", sessionCfg.HintMaxDelay)
	sessionCfg.ResetPolicy = model.ResetPolicy(strings.ToLower(p.str("RESET_POLICY", string(sessionCfg.ResetPolicy))))
	sessionCfg.FreezeWhileDisconnected = p.boolean("FREEZE_WHILE_DISCONNECTED", sessionCfg.FreezeWhileDisconnected)
	sessionCfg.InitialZone = model.Zone{
		Latitude:  p.float("ZONE_LATITUDE", sessionCfg.InitialZone.Latitude),
		Longitude: p.float("ZONE_LONGITUDE", sessionCfg.InitialZone.Longitude),
		Radius:    p.float("ZONE_RADIUS", sessionCfg.InitialZone.Radius),
	}
	cfg.Session = sessionCfg

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %d out of range", c.Port))
	}
	switch c.StorageType {
	case "memory", "file":
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL: required when STORAGE_TYPE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE: unknown backend %q", c.StorageType))
	}
	if c.StorageType == "file" && c.CredentialsFile == "" {
		errs = append(errs, errors.New("CREDENTIALS_FILE: required when STORAGE_TYPE=file"))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, errors.New("TICK_INTERVAL: must be positive"))
	}

	s := c.Session
	if s.WarningInterval <= 0 {
		errs = append(errs, errors.New("WARNING_INTERVAL: must be positive"))
	}
	if s.KickTimeout <= 0 {
		errs = append(errs, errors.New("KICK_TIMEOUT: must be positive"))
	}
	if s.HintMinDelay <= 0 || s.HintMaxDelay < s.HintMinDelay {
		errs = append(errs, errors.New("HINT_MIN_DELAY/HINT_MAX_DELAY: need 0 < min <= max"))
	}
	switch s.ResetPolicy {
	case model.ResetKeepRoster, model.ResetClearRoster:
	default:
		errs = append(errs, fmt.Errorf("RESET_POLICY: unknown policy %q", s.ResetPolicy))
	}
	if !geo.ValidZone(s.InitialZone) {
		errs = append(errs, errors.New("ZONE_LATITUDE/ZONE_LONGITUDE/ZONE_RADIUS: invalid zone"))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// parser collects every malformed variable instead of stopping at the first
type parser struct {
	lookup LookupFunc
	errs   []error
}

func (p *parser) raw(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (p *parser) str(key, def string) string {
	if v, ok := p.raw(key); ok {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a number", key, v))
		return def
	}
	return f
}

func (p *parser) boolean(key string, def bool) bool {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a duration", key, v))
		return def
	}
	return d
}

func (p *parser) level(key string, def slog.Level) slog.Level {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a log level", key, v))
		return def
	}
	return lvl
}
