package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	envPrefix                 = "SMARTHR_"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		TrustedProxies     []string `json:"trustedProxies" yaml:"trustedProxies"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
			ShutdownTimeout   time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Redis is optional; it backs the shared login throttle when configured.
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Mail *MailConfig `json:"mail" yaml:"mail"`

	Throttle *ThrottleConfig `json:"throttle" yaml:"throttle"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

// AuthConfig holds every business timer and threshold of the auth core.
type AuthConfig struct {
	BcryptCost        int `json:"bcryptCost" yaml:"bcryptCost"`
	PasswordMinLength int `json:"passwordMinLength" yaml:"passwordMinLength"`

	MaxLoginAttempts int           `json:"maxLoginAttempts" yaml:"maxLoginAttempts"`
	LockoutWindow    time.Duration `json:"lockoutWindow" yaml:"lockoutWindow"`

	AccessTokenTTL      time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
	RefreshTokenTTL     time.Duration `json:"refreshTokenTtl" yaml:"refreshTokenTtl"`
	RotateRefreshTokens bool          `json:"rotateRefreshTokens" yaml:"rotateRefreshTokens"`

	PasswordResetTTL     time.Duration `json:"passwordResetTtl" yaml:"passwordResetTtl"`
	EmailVerificationTTL time.Duration `json:"emailVerificationTtl" yaml:"emailVerificationTtl"`

	FrontendBaseURL   string `json:"frontendBaseUrl" yaml:"frontendBaseUrl"`
	ExposeDebugTokens bool   `json:"exposeDebugTokens" yaml:"exposeDebugTokens"`

	EnumerationDelay struct {
		Min time.Duration `json:"min" yaml:"min"`
		Max time.Duration `json:"max" yaml:"max"`
	} `json:"enumerationDelay" yaml:"enumerationDelay"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// MailConfig configures outbound SMTP delivery and the async dispatcher.
type MailConfig struct {
	Enabled     bool          `json:"enabled" yaml:"enabled"`
	Host        string        `json:"host" yaml:"host"`
	Port        int           `json:"port" yaml:"port"`
	Username    string        `json:"username" yaml:"username"`
	Password    string        `json:"password" yaml:"password"`
	From        string        `json:"from" yaml:"from"`
	BufferSize  int           `json:"bufferSize" yaml:"bufferSize"`
	SendTimeout time.Duration `json:"sendTimeout" yaml:"sendTimeout"`
}

type ThrottleConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	Backend        string `json:"backend" yaml:"backend"`
	LoginBurst     int    `json:"loginBurst" yaml:"loginBurst"`
	LoginPerMinute int    `json:"loginPerMinute" yaml:"loginPerMinute"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads <name>.yaml through koanf and overlays SMARTHR_* environment variables.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// SMARTHR_AUTH_LOCKOUTWINDOW -> auth.lockoutWindow
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(strings.TrimPrefix(k, envPrefix), existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	name := "config"
	paths := []string{"config", "../config", "../../config"}
	if custom := os.Getenv(envPrefix + "CONFIG"); custom != "" {
		name = strings.TrimSuffix(filepath.Base(custom), filepath.Ext(custom))
		paths = append([]string{filepath.Dir(custom)}, paths...)
	}

	cfg, err := LoadWithEnv[Config](name, paths...)
	if err != nil {
		return nil, err
	}

	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	cfg.ApplyDefaults()

	return cfg, nil
}

// ApplyDefaults fills every unset knob with the production default.
func (cfg *Config) ApplyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.Timeouts.ShutdownTimeout <= 0 {
		cfg.HTTP.Timeouts.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{RotateRefreshTokens: true}
	}
	cfg.Auth.applyDefaults()

	// Debug tokens never leave a non-debug deployment.
	if !cfg.Env.Debug {
		cfg.Auth.ExposeDebugTokens = false
	}

	if cfg.Mail == nil {
		cfg.Mail = &MailConfig{}
	}
	if cfg.Mail.BufferSize <= 0 {
		cfg.Mail.BufferSize = 64
	}
	if cfg.Mail.SendTimeout <= 0 {
		cfg.Mail.SendTimeout = 10 * time.Second
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = "no-reply@smarthr360.local"
	}

	if cfg.Throttle == nil {
		cfg.Throttle = &ThrottleConfig{}
	}
	if cfg.Throttle.Backend == "" {
		cfg.Throttle.Backend = "memory"
	}
	if cfg.Throttle.LoginBurst <= 0 {
		cfg.Throttle.LoginBurst = 10
	}
	if cfg.Throttle.LoginPerMinute <= 0 {
		cfg.Throttle.LoginPerMinute = 30
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func (a *AuthConfig) applyDefaults() {
	if a.BcryptCost <= 0 {
		a.BcryptCost = 12
	}
	if a.PasswordMinLength <= 0 {
		a.PasswordMinLength = 8
	}
	if a.MaxLoginAttempts <= 0 {
		a.MaxLoginAttempts = 5
	}
	if a.LockoutWindow <= 0 {
		a.LockoutWindow = 15 * time.Minute
	}
	if a.AccessTokenTTL <= 0 {
		a.AccessTokenTTL = 15 * time.Minute
	}
	if a.RefreshTokenTTL <= 0 {
		a.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if a.PasswordResetTTL <= 0 {
		a.PasswordResetTTL = time.Hour
	}
	if a.EmailVerificationTTL <= 0 {
		a.EmailVerificationTTL = 24 * time.Hour
	}
	if a.FrontendBaseURL == "" {
		a.FrontendBaseURL = "http://localhost:3000"
	}
	a.FrontendBaseURL = strings.TrimRight(a.FrontendBaseURL, "/")
	if a.EnumerationDelay.Min <= 0 {
		a.EnumerationDelay.Min = 20 * time.Millisecond
	}
	if a.EnumerationDelay.Max < a.EnumerationDelay.Min {
		a.EnumerationDelay.Max = a.EnumerationDelay.Min + 20*time.Millisecond
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads SMARTHR_POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := envPrefix + "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
