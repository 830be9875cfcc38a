package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix       = "BACKPORT"
	DefaultPageSize = 50
)

// DefaultCopyFields are the custom field display names copied onto every
// backport when the config file does not name its own list.
var DefaultCopyFields = []string{"Change Log Group", "Change Log Message"}

type Config struct {
	TrackerURL string   `mapstructure:"tracker_url" yaml:"tracker_url"`
	APIToken   string   `mapstructure:"api_token" yaml:"api_token"`
	CopyFields []string `mapstructure:"copy_fields" yaml:"copy_fields"`
	PageSize   int      `mapstructure:"page_size" yaml:"page_size"`
}

func configDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".backport")
}

func Path() string {
	return filepath.Join(configDir(), "config.yaml")
}

func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads the config file and applies BACKPORT_* environment overrides
// (BACKPORT_TRACKER_URL, BACKPORT_API_TOKEN, ...). A missing file is fine
// as long as the environment supplies the tracker URL and token.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("tracker_url", "")
	v.SetDefault("api_token", "")
	v.SetDefault("copy_fields", DefaultCopyFields)
	v.SetDefault("page_size", DefaultPageSize)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	cfg.TrackerURL = strings.TrimRight(cfg.TrackerURL, "/")
	if len(cfg.CopyFields) == 0 {
		cfg.CopyFields = DefaultCopyFields
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	if cfg.TrackerURL == "" || cfg.APIToken == "" {
		return nil, fmt.Errorf("tracker URL or API token not configured, run 'backport config'")
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	return saveTo(Path(), cfg)
}

func saveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// RunSetup collects the connection settings interactively and writes the
// config file. Existing values are offered as the starting point.
func RunSetup() (*Config, error) {
	existing := Config{CopyFields: DefaultCopyFields, PageSize: DefaultPageSize}
	if cfg, err := loadFrom(Path()); err == nil {
		existing = *cfg
	}

	cfg := existing
	copyFields := strings.Join(cfg.CopyFields, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tracker URL").
				Placeholder("https://your-org.atlassian.net").
				Value(&cfg.TrackerURL).
				Validate(func(s string) error {
					if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
						return fmt.Errorf("URL must start with http:// or https://")
					}
					return nil
				}),
			huh.NewInput().
				Title("API Token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.APIToken),
		).Title("Tracker Connection"),

		huh.NewGroup(
			huh.NewInput().
				Title("Custom fields to copy (comma separated)").
				Placeholder(strings.Join(DefaultCopyFields, ", ")).
				Value(&copyFields),
		).Title("Backport Settings"),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	cfg.TrackerURL = strings.TrimRight(cfg.TrackerURL, "/")
	cfg.CopyFields = splitFieldList(copyFields)
	if len(cfg.CopyFields) == 0 {
		cfg.CopyFields = DefaultCopyFields
	}

	if err := Save(&cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\nConfig saved to %s\n", Path())
	return &cfg, nil
}

func splitFieldList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
