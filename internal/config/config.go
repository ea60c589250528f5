// =============================================================================
// X3 Flat Bridge - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration: local
// directories for the offline pipeline, logging settings, output naming, and
// the ERP endpoint parameters used by the SOAP layer.
//
// CONFIGURATION FILE:
//   One YAML file (config.yaml by default). Credentials are NOT stored in
//   the file: the endpoint section names the environment variables to read
//   them from.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is where saved flat export files are placed for the offline
	// 'process' command.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is where decoded JSON/XLSX outputs are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is where processed export files are moved after
	// successful decoding.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path of the application log file. Empty means stderr
	// only.
	LogFile string `yaml:"log_file"`

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines output file names. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {module}    - export module code (e.g. "ZCLIENT")
	// Default: "{module}_{timestamp}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency caps how many saved export files 'process' decodes at
	// once. Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps 'process' going when one file fails.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error"`

	// =========================================================================
	// ENDPOINT SETTINGS
	// =========================================================================

	// Endpoint configures the ERP SOAP endpoint.
	Endpoint EndpointConfig `yaml:"endpoint"`
}

// EndpointConfig holds the ERP web-service parameters. The values mirror
// the CAdxCallContext the backend expects on every call.
type EndpointConfig struct {
	// URL is the full web-service URL
	// (e.g. "http://host:8124/soap-generic/.../CAdxWebServiceXmlCC").
	URL string `yaml:"url"`

	// PoolAlias selects the backend's connection pool. Default: "ZBPI"
	PoolAlias string `yaml:"pool_alias"`

	// PoolID is usually left empty.
	PoolID string `yaml:"pool_id"`

	// Language is the backend language code for the call context.
	// Default: "FRA"
	Language string `yaml:"language"`

	// ExportPublicName is the published export service name.
	// Default: "AOWSEXPORT"
	ExportPublicName string `yaml:"export_public_name"`

	// ImportPublicName is the published import service name.
	// Default: "AOWSIMPORT"
	ImportPublicName string `yaml:"import_public_name"`

	// TimeoutSeconds bounds one request/response exchange. Default: 30
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UsernameEnv and PasswordEnv name the environment variables holding
	// the basic-auth credentials.
	// Defaults: "X3_USERNAME", "X3_PASSWORD"
	UsernameEnv string `yaml:"username_env"`
	PasswordEnv string `yaml:"password_env"`

	// Modules maps the logical export kinds to the backend's export model
	// codes, and carries the import model for order submission.
	Modules ModuleConfig `yaml:"modules"`
}

// ModuleConfig names the export/import model codes configured in the ERP.
type ModuleConfig struct {
	// Login is the export model returning the B/A/D/C customer profile.
	// Default: "ZCLIENT"
	Login string `yaml:"login"`

	// Orders is the export model returning E/L sales documents.
	// Default: "ZCOMMANDE"
	Orders string `yaml:"orders"`

	// Materials is the export model returning the I/S/P catalog.
	// Default: "ZARTICLE"
	Materials string `yaml:"materials"`

	// OrderImport is the import model consuming the outbound order file.
	// Default: "ZSOH"
	OrderImport string `yaml:"order_import"`
}

// =============================================================================
// LOADING
// =============================================================================

// LoadMainConfig loads, defaults, and validates the configuration file.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Timeout returns the endpoint timeout as a duration.
func (e EndpointConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Credentials reads the basic-auth credentials from the configured
// environment variables.
func (e EndpointConfig) Credentials() (username, password string, err error) {
	username = os.Getenv(e.UsernameEnv)
	password = os.Getenv(e.PasswordEnv)
	if username == "" || password == "" {
		return "", "", fmt.Errorf("credentials not set: export %s and %s", e.UsernameEnv, e.PasswordEnv)
	}
	return username, password, nil
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{module}_{timestamp}_{uuid}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}

	e := &config.Endpoint
	if e.PoolAlias == "" {
		e.PoolAlias = "ZBPI"
	}
	if e.Language == "" {
		e.Language = "FRA"
	}
	if e.ExportPublicName == "" {
		e.ExportPublicName = "AOWSEXPORT"
	}
	if e.ImportPublicName == "" {
		e.ImportPublicName = "AOWSIMPORT"
	}
	if e.TimeoutSeconds == 0 {
		e.TimeoutSeconds = 30
	}
	if e.UsernameEnv == "" {
		e.UsernameEnv = "X3_USERNAME"
	}
	if e.PasswordEnv == "" {
		e.PasswordEnv = "X3_PASSWORD"
	}

	m := &e.Modules
	if m.Login == "" {
		m.Login = "ZCLIENT"
	}
	if m.Orders == "" {
		m.Orders = "ZCOMMANDE"
	}
	if m.Materials == "" {
		m.Materials = "ZARTICLE"
	}
	if m.OrderImport == "" {
		m.OrderImport = "ZSOH"
	}
}

// validateMainConfig validates the configuration and creates the local
// directories when missing.
func validateMainConfig(config *MainConfig) error {
	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.InputArchiveDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
