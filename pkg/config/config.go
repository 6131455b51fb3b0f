package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/admissions/config"
	ConfigFileName    = "admissions.yml"
)

// Config holds all admissions service settings.
// Secrets (session signing key, mail API key) come from the environment
// only and never from the config file.
type Config struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies"`

	// SessionTTLMinutes is the lifetime of an admin session in minutes
	SessionTTLMinutes int `yaml:"session_ttl_minutes"`

	// ScoreMin and ScoreMax bound each evaluation criterion score
	ScoreMin int `yaml:"score_min"`
	ScoreMax int `yaml:"score_max"`

	// MailAPIEndpoint is the hosted mail API URL; empty disables mail
	MailAPIEndpoint string `yaml:"mail_api_endpoint"`

	// MailFrom is the sender address for notification mail
	MailFrom string `yaml:"mail_from"`

	// OIDCIssuer and OIDCClientID configure the optional OIDC sign-in
	OIDCIssuer   string `yaml:"oidc_issuer"`
	OIDCClientID string `yaml:"oidc_client_id"`

	// SessionSigningKey signs session tokens (env ADMISSIONS_SESSION_KEY)
	SessionSigningKey string `yaml:"-"`

	// MailAPIKey authenticates to the mail API (env ADMISSIONS_MAIL_API_KEY)
	MailAPIKey string `yaml:"-"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func newDefault() *Config {
	return &Config{
		TrustedProxies:    []string{},
		SessionTTLMinutes: 480,
		ScoreMin:          0,
		ScoreMax:          10,
		MailFrom:          "admissions@cidadeviva.education",
		sources:           make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("ADMISSIONS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "session_ttl_minutes", "score_min", "score_max",
		"mail_api_endpoint", "mail_from", "oidc_issuer", "oidc_client_id",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.SessionTTLMinutes != 0 {
		c.SessionTTLMinutes = file.SessionTTLMinutes
		c.sources["session_ttl_minutes"] = "file"
	}
	if file.ScoreMax != 0 {
		c.ScoreMin = file.ScoreMin
		c.ScoreMax = file.ScoreMax
		c.sources["score_min"] = "file"
		c.sources["score_max"] = "file"
	}
	if file.MailAPIEndpoint != "" {
		c.MailAPIEndpoint = file.MailAPIEndpoint
		c.sources["mail_api_endpoint"] = "file"
	}
	if file.MailFrom != "" {
		c.MailFrom = file.MailFrom
		c.sources["mail_from"] = "file"
	}
	if file.OIDCIssuer != "" {
		c.OIDCIssuer = file.OIDCIssuer
		c.sources["oidc_issuer"] = "file"
	}
	if file.OIDCClientID != "" {
		c.OIDCClientID = file.OIDCClientID
		c.sources["oidc_client_id"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("ADMISSIONS_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("ADMISSIONS_SESSION_TTL_MINUTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTTLMinutes = i
			c.sources["session_ttl_minutes"] = "environment"
		}
	}
	if val := os.Getenv("ADMISSIONS_SCORE_MIN"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ScoreMin = i
			c.sources["score_min"] = "environment"
		}
	}
	if val := os.Getenv("ADMISSIONS_SCORE_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ScoreMax = i
			c.sources["score_max"] = "environment"
		}
	}
	if val := os.Getenv("ADMISSIONS_MAIL_API_ENDPOINT"); val != "" {
		c.MailAPIEndpoint = val
		c.sources["mail_api_endpoint"] = "environment"
	}
	if val := os.Getenv("ADMISSIONS_MAIL_FROM"); val != "" {
		c.MailFrom = val
		c.sources["mail_from"] = "environment"
	}
	if val := os.Getenv("ADMISSIONS_OIDC_ISSUER"); val != "" {
		c.OIDCIssuer = val
		c.sources["oidc_issuer"] = "environment"
	}
	if val := os.Getenv("ADMISSIONS_OIDC_CLIENT_ID"); val != "" {
		c.OIDCClientID = val
		c.sources["oidc_client_id"] = "environment"
	}

	c.SessionSigningKey = os.Getenv("ADMISSIONS_SESSION_KEY")
	c.MailAPIKey = os.Getenv("ADMISSIONS_MAIL_API_KEY")
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionTTL returns the session lifetime as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *Config) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("session_ttl_minutes must be positive")
	}
	if c.ScoreMin >= c.ScoreMax {
		return fmt.Errorf("score_min must be below score_max")
	}
	if c.MailAPIEndpoint != "" && c.MailAPIKey == "" {
		return fmt.Errorf("ADMISSIONS_MAIL_API_KEY is required when mail_api_endpoint is set")
	}

	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
