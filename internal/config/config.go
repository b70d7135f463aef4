package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "GYMDESK"
	configName = "gymdesk"
	configType = "yaml"

	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Keys understood by Load. Nested keys map to env vars with "_" (resend.api_key -> GYMDESK_RESEND_API_KEY).
const (
	KeyAddr           = "addr"
	KeyDBPath         = "db_path"
	KeyEnv            = "env"
	KeyStaticDir      = "static_dir"
	KeyGymName        = "gym_name"
	KeyTimezone       = "timezone"
	KeyTickInterval   = "tick_interval"
	KeyCSRFKey        = "csrf_key"
	KeyTrustedOrigins = "trusted_origins"
	KeyRateLimit      = "rate_limit_per_second"
	KeySlowQueryMs    = "slow_query_ms"
	KeySlowRequestMs  = "slow_request_ms"
	KeyPerfRingSize   = "perf_ring_size"
	KeyResendAPIKey   = "resend.api_key"
	KeyResendFrom     = "resend.from"
	KeyAdminEmail     = "admin.email"
	KeyAdminPassword  = "admin.password"
)

var (
	ErrInvalidEnv          = errors.New("env must be production or development")
	ErrInvalidTickInterval = errors.New("tick_interval must be positive")
	ErrCSRFKeyRequired     = errors.New("csrf_key is required in production")
	ErrEmptyAddr           = errors.New("addr must not be empty")
)

// Config is the resolved runtime configuration for every gymdesk command.
type Config struct {
	Addr           string
	DBPath         string
	Env            string
	StaticDir      string
	GymName        string
	Timezone       string
	TickInterval   time.Duration
	CSRFKey        string
	TrustedOrigins []string
	RateLimit      int
	SlowQueryMs    int
	SlowRequestMs  int
	PerfRingSize   int
	ResendAPIKey   string
	ResendFrom     string
	AdminEmail     string
	AdminPassword  string
}

// FlagKeys maps command-line flag names to config keys. Flags only override when set.
var FlagKeys = map[string]string{
	"addr":     KeyAddr,
	"db":       KeyDBPath,
	"env":      KeyEnv,
	"static":   KeyStaticDir,
	"timezone": KeyTimezone,
	"tick":     KeyTickInterval,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyDBPath, "gymdesk.db")
	v.SetDefault(KeyEnv, EnvDevelopment)
	v.SetDefault(KeyStaticDir, "")
	v.SetDefault(KeyGymName, "GymDesk")
	v.SetDefault(KeyTimezone, "")
	v.SetDefault(KeyTickInterval, time.Second)
	v.SetDefault(KeyCSRFKey, "")
	v.SetDefault(KeyTrustedOrigins, []string{})
	v.SetDefault(KeyRateLimit, 10)
	v.SetDefault(KeySlowQueryMs, 50)
	v.SetDefault(KeySlowRequestMs, 200)
	v.SetDefault(KeyPerfRingSize, 10000)
	v.SetDefault(KeyResendAPIKey, "")
	v.SetDefault(KeyResendFrom, "GymDesk <noreply@gymdesk.local>")
	v.SetDefault(KeyAdminEmail, "")
	v.SetDefault(KeyAdminPassword, "")
}

// Load resolves configuration from defaults, an optional YAML file, GYMDESK_* env vars and flags,
// in increasing order of precedence.
// PRE: path is empty (search ./gymdesk.yaml) or names a readable YAML file; flags may be nil
// POST: Returns a validated Config
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := Config{
		Addr:           v.GetString(KeyAddr),
		DBPath:         v.GetString(KeyDBPath),
		Env:            strings.ToLower(v.GetString(KeyEnv)),
		StaticDir:      v.GetString(KeyStaticDir),
		GymName:        v.GetString(KeyGymName),
		Timezone:       v.GetString(KeyTimezone),
		TickInterval:   v.GetDuration(KeyTickInterval),
		CSRFKey:        v.GetString(KeyCSRFKey),
		TrustedOrigins: v.GetStringSlice(KeyTrustedOrigins),
		RateLimit:      v.GetInt(KeyRateLimit),
		SlowQueryMs:    v.GetInt(KeySlowQueryMs),
		SlowRequestMs:  v.GetInt(KeySlowRequestMs),
		PerfRingSize:   v.GetInt(KeyPerfRingSize),
		ResendAPIKey:   v.GetString(KeyResendAPIKey),
		ResendFrom:     v.GetString(KeyResendFrom),
		AdminEmail:     v.GetString(KeyAdminEmail),
		AdminPassword:  v.GetString(KeyAdminPassword),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at serve time.
func (c Config) Validate() error {
	if c.Env != EnvProduction && c.Env != EnvDevelopment {
		return fmt.Errorf("%w: got %q", ErrInvalidEnv, c.Env)
	}
	if c.TickInterval <= 0 {
		return ErrInvalidTickInterval
	}
	if strings.TrimSpace(c.Addr) == "" {
		return ErrEmptyAddr
	}
	if c.IsProduction() && c.CSRFKey == "" {
		return ErrCSRFKeyRequired
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// IsProduction reports whether secure cookies and a fixed CSRF key are required.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Location resolves Timezone; empty means the host's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
