package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Assignee modes. Jira deployments disagree on whether the assignee
// argument is an account ID (Cloud) or a username (Server); both
// conventions exist in the wild, so the choice is configuration.
const (
	AssigneeModeAccountID = "account-id"
	AssigneeModeName      = "name"
)

// FileConfig defines the structure loaded from the optional YAML file.
// Environment variables override anything set here.
type FileConfig struct {
	JiraHost     string `yaml:"jira_host"`
	JiraEmail    string `yaml:"jira_email"`
	JiraAPIToken string `yaml:"jira_api_token"`
	AssigneeMode string `yaml:"assignee_mode"`
}

// Config holds the final application configuration, merged from file and
// environment variables. Environment variables use the prefix "JIRABRIDGE_".
type Config struct {
	// Config File Path (loaded first from env)
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	// Jira connection settings. All three are required; startup fails
	// without them.
	JiraHost     string `envconfig:"JIRA_HOST"`
	JiraEmail    string `envconfig:"JIRA_EMAIL"`
	JiraAPIToken string `envconfig:"JIRA_API_TOKEN"`

	// AssigneeMode selects how assignee arguments are shaped in
	// mutation payloads: "account-id" or "name".
	AssigneeMode string `envconfig:"ASSIGNEE_MODE" default:"account-id"`

	ListenAddr               string        `envconfig:"LISTEN_ADDR" default:":8080"`
	HTTPClientTimeout        time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	ShutdownTimeout          time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	SearchMaxResults         int           `envconfig:"SEARCH_MAX_RESULTS" default:"50"`
	OtelExporterOtlpEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string        `envconfig:"LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Validate checks the settings that must be present before the server can
// talk to Jira at all. Absence is a fatal startup error, never a per-call
// error.
func (c *Config) Validate() error {
	var missing []string
	if c.JiraHost == "" {
		missing = append(missing, "JIRABRIDGE_JIRA_HOST")
	}
	if c.JiraEmail == "" {
		missing = append(missing, "JIRABRIDGE_JIRA_EMAIL")
	}
	if c.JiraAPIToken == "" {
		missing = append(missing, "JIRABRIDGE_JIRA_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	switch c.AssigneeMode {
	case AssigneeModeAccountID, AssigneeModeName:
	default:
		return fmt.Errorf("invalid assignee mode %q (expected %q or %q)",
			c.AssigneeMode, AssigneeModeAccountID, AssigneeModeName)
	}
	return nil
}

// Load loads configuration first from environment variables (to get the
// file path), then from the YAML file if one is specified, and finally
// processes environment variables again so they override file settings.
func Load() (*Config, error) {
	var initialCfg Config
	if err := envconfig.Process("jirabridge", &initialCfg); err != nil {
		return nil, fmt.Errorf("failed to process initial environment variables: %w", err)
	}

	finalCfg := initialCfg

	if initialCfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(initialCfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		var fileCfg FileConfig
		if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		slog.Info("Loaded configuration from file.", "path", initialCfg.ConfigFilePath)

		// File values fill gaps; environment variables win. The
		// credentials have no defaults, so an empty field means the
		// variable was unset. AssigneeMode carries a default, so check
		// the variable itself.
		if finalCfg.JiraHost == "" {
			finalCfg.JiraHost = fileCfg.JiraHost
		}
		if finalCfg.JiraEmail == "" {
			finalCfg.JiraEmail = fileCfg.JiraEmail
		}
		if finalCfg.JiraAPIToken == "" {
			finalCfg.JiraAPIToken = fileCfg.JiraAPIToken
		}
		if _, set := os.LookupEnv("JIRABRIDGE_ASSIGNEE_MODE"); !set && fileCfg.AssigneeMode != "" {
			finalCfg.AssigneeMode = fileCfg.AssigneeMode
		}
	}

	if err := finalCfg.Validate(); err != nil {
		return nil, err
	}
	return &finalCfg, nil
}
