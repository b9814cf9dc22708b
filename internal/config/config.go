package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the moderation service.
type Server struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`

	// Operators allowed to call the admin API.
	APIKeys []APIKey `yaml:"api_keys"`

	// Overrides for result and broadcast texts; empty entries keep the defaults.
	Messages Messages `yaml:"messages"`

	// How often expired bans/mutes are deleted. 0 disables the janitor.
	PurgeInterval time.Duration `yaml:"purge_interval"`
}

// HTTPConfig holds the admin API listener settings.
type HTTPConfig struct {
	BindAddress  string        `yaml:"bind_address"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns host:port for net.Listen.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.BindAddress, h.Port)
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// NATSConfig configures cross-process broadcast of moderation announcements.
// With Embedded set the service runs its own NATS server on Port.
// With URL empty and Embedded unset, announcements stay in-process.
type NATSConfig struct {
	URL      string `yaml:"url"`
	Subject  string `yaml:"subject"`
	Embedded bool   `yaml:"embedded"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
}

// Enabled reports whether announcements should be published to NATS.
func (n NATSConfig) Enabled() bool {
	return n.URL != "" || n.Embedded
}

// APIKey is one operator credential. Hash is a bcrypt hash of the key.
type APIKey struct {
	Name        string `yaml:"name"`
	Hash        string `yaml:"hash"`
	AccessLevel int32  `yaml:"access_level"`
}

// Messages mirrors admin.Messages for YAML.
type Messages struct {
	Banned     string `yaml:"banned"`
	Unbanned   string `yaml:"unbanned"`
	Muted      string `yaml:"muted"`
	Unmuted    string `yaml:"unmuted"`
	Kicked     string `yaml:"kicked"`
	Killed     string `yaml:"killed"`
	KillResult string `yaml:"kill_result"`
	Offline    string `yaml:"offline"`
	Warped     string `yaml:"warped"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		HTTP: HTTPConfig{
			BindAddress:  "127.0.0.1",
			Port:         5400,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "moderation",
			Password: "moderation",
			DBName:   "moderation",
			SSLMode:  "disable",
		},
		NATS: NATSConfig{
			Subject: "server.announce",
			Host:    "127.0.0.1",
			Port:    4222,
		},
		PurgeInterval: 5 * time.Minute,
	}
}

// LoadServer loads service config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail late at runtime.
func (c Server) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	if c.NATS.Enabled() && c.NATS.Subject == "" {
		return fmt.Errorf("nats.subject must be set when nats is enabled")
	}
	seen := make(map[string]bool, len(c.APIKeys))
	for i, k := range c.APIKeys {
		if k.Name == "" {
			return fmt.Errorf("api_keys[%d]: name is required", i)
		}
		if k.Hash == "" {
			return fmt.Errorf("api_keys[%d] (%s): hash is required", i, k.Name)
		}
		if seen[k.Name] {
			return fmt.Errorf("api_keys[%d]: duplicate name %q", i, k.Name)
		}
		seen[k.Name] = true
	}
	return nil
}
