// Package config handles the .shxl directory and its config.yaml. Every
// project that runs shxl gets a .shxl/ folder in its root.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/role"
	"github.com/kingrea/shxl/internal/strategy"
)

const (
	// Dir is the name of the directory created in each project.
	Dir = ".shxl"

	defaultPlayers  = 10
	defaultStrategy = "random"
	defaultGames    = 100
	defaultWorkers  = 4
)

const defaultProjectConfigYAML = `# shxl project configuration
version: 1

# Table rules. Anti-policies only take effect with communists in play.
game:
  players: 10
  communists: true
  anti_policies: false
  emergency_powers: false
  # Reshuffle the whole draw pile after the five year plan adds its cards.
  five_year_plan_shuffle: false
  # 0 picks a fresh seed for every run.
  seed: 0

# Decider used for simulated seats: random or partisan.
strategy: random

simulate:
  games: 100
  workers: 4
`

// GameConfig captures the table rules.
type GameConfig struct {
	Players             int   `yaml:"players" env:"SHXL_PLAYERS"`
	Communists          bool  `yaml:"communists" env:"SHXL_COMMUNISTS"`
	AntiPolicies        bool  `yaml:"anti_policies" env:"SHXL_ANTI_POLICIES"`
	EmergencyPowers     bool  `yaml:"emergency_powers" env:"SHXL_EMERGENCY_POWERS"`
	FiveYearPlanShuffle bool  `yaml:"five_year_plan_shuffle" env:"SHXL_FIVE_YEAR_PLAN_SHUFFLE"`
	Seed                int64 `yaml:"seed" env:"SHXL_SEED"`
}

// SimulateConfig captures batch simulation preferences.
type SimulateConfig struct {
	Games   int `yaml:"games" env:"SHXL_SIM_GAMES"`
	Workers int `yaml:"workers" env:"SHXL_SIM_WORKERS"`
}

// ProjectConfig models .shxl/config.yaml.
type ProjectConfig struct {
	Version  int            `yaml:"version"`
	Game     GameConfig     `yaml:"game"`
	Strategy string         `yaml:"strategy" env:"SHXL_STRATEGY"`
	Simulate SimulateConfig `yaml:"simulate"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory shxl was run from.
	ProjectDir string
	// ShxlDir is ProjectDir/.shxl.
	ShxlDir string

	Project ProjectConfig
}

// InitDir creates the .shxl directory structure in projectDir and writes a
// default config.yaml when none exists.
//
// Structure created:
// .shxl/
// ├── logs/     <- game journal and diagnostics
// └── reports/  <- simulation summaries
func InitDir(projectDir string) error {
	root := filepath.Join(projectDir, Dir)
	for _, dir := range []string{
		filepath.Join(root, "logs"),
		filepath.Join(root, "reports"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: ensure %s: %w", dir, err)
		}
	}
	return ensureProjectConfig(filepath.Join(root, "config.yaml"))
}

// Load reads .shxl/config.yaml (defaults when missing) and applies
// environment overrides on top.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		ShxlDir:    filepath.Join(projectDir, Dir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays SHXL_* environment variables. Unset variables leave the
// current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(&c.Project); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ShxlDir, "logs")
}

// JournalPath is where game journals are written.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "journal.log")
}

// ReportsDir returns the path simulation reports are saved under.
func (c *Config) ReportsDir() string {
	return filepath.Join(c.ShxlDir, "reports")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ShxlDir, "config.yaml")
}

// Rules converts the game section into engine rules.
func (c *Config) Rules() game.Rules {
	g := c.Project.Game
	return game.Rules{
		Players:             g.Players,
		Communists:          g.Communists,
		AntiPolicies:        g.AntiPolicies,
		EmergencyPowers:     g.EmergencyPowers,
		FiveYearPlanShuffle: g.FiveYearPlanShuffle,
	}
}

// SetPlayers updates the table size and persists it.
func (c *Config) SetPlayers(n int) error {
	c.Project.Game.Players = n
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:  1,
		Game:     GameConfig{Players: defaultPlayers, Communists: true},
		Strategy: defaultStrategy,
		Simulate: SimulateConfig{Games: defaultGames, Workers: defaultWorkers},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Game.Players == 0 {
		pc.Game.Players = defaultPlayers
	}
	if pc.Simulate.Games == 0 {
		pc.Simulate.Games = defaultGames
	}
	if pc.Simulate.Workers == 0 {
		pc.Simulate.Workers = defaultWorkers
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Strategy = strings.ToLower(strings.TrimSpace(pc.Strategy))
	if pc.Strategy == "" {
		pc.Strategy = defaultStrategy
	}
	if !pc.Game.Communists {
		pc.Game.AntiPolicies = false
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Game.Players < role.MinPlayers || pc.Game.Players > role.MaxPlayers {
		return fmt.Errorf("game.players must be between %d and %d, got %d", role.MinPlayers, role.MaxPlayers, pc.Game.Players)
	}
	if !contains(strategy.Names(), pc.Strategy) {
		return fmt.Errorf("strategy must be one of %s", strings.Join(strategy.Names(), ", "))
	}
	if pc.Simulate.Games < 1 {
		return fmt.Errorf("simulate.games must be >= 1")
	}
	if pc.Simulate.Workers < 1 {
		return fmt.Errorf("simulate.workers must be >= 1")
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.ShxlDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure shxl dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
