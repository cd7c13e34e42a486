package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"wargame/game"
	"wargame/meta"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// File is the config location relative to the XDG config directories.
const File = "wargame/config.yaml"

var ErrInvalidConfig = errors.New("invalid config")

type ServerConfig struct {
	Listen string `yaml:"listen"`
	Redis  string `yaml:"redis"` // empty keeps moves in memory
}

type ExperimentConfig struct {
	Name   string `yaml:"name"`
	Games  int    `yaml:"games"`
	OutDir string `yaml:"out_dir"`
}

type Config struct {
	Dim        int           `yaml:"dim"`
	MaxTurns   int           `yaml:"max_turns"`
	MaxDepth   int           `yaml:"max_depth"`
	MinDepth   int           `yaml:"min_depth"`
	MaxTime    time.Duration `yaml:"max_time"`
	GameType   string        `yaml:"game_type"`
	AlphaBeta  bool          `yaml:"alpha_beta"`
	Heuristic  string        `yaml:"heuristic"`
	Randomize  bool          `yaml:"randomize"`
	Goroutines int           `yaml:"goroutines"`
	Broker     string        `yaml:"broker"`
	TraceDir   string        `yaml:"trace_dir"`
	LogLevel   string        `yaml:"log_level"`
	Render     bool          `yaml:"render"`

	Server     ServerConfig     `yaml:"server"`
	Experiment ExperimentConfig `yaml:"experiment"`

	// Path is the file the config was read from, empty for defaults only.
	Path string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Dim:        meta.BOARD_DIM,
		MaxTurns:   meta.MAX_TURNS,
		MaxDepth:   meta.MAX_DEPTH,
		MinDepth:   meta.MIN_DEPTH,
		MaxTime:    meta.MAX_TIME,
		GameType:   game.AttackerVsDefender.String(),
		AlphaBeta:  true,
		Heuristic:  game.HeuristicDefault,
		Randomize:  true,
		Goroutines: 1,
		TraceDir:   ".",
		LogLevel:   "info",
		Server:     ServerConfig{Listen: ":8001"},
		Experiment: ExperimentConfig{Name: "pruning", Games: 10, OutDir: "results"},
	}
}

// Load reads the yaml file at path on top of the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// DefaultPath finds the config file in the XDG config directories.
func DefaultPath() (string, error) {
	return xdg.SearchConfigFile(File)
}

// Parse resolves the configuration for a command: defaults, then the file named by --config
// (or found by DefaultPath), then any flags given in args.
func Parse(name string, args []string) (*Config, error) {
	first := Default()
	fs := NewFlagSet(name, first, os.Stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()
	path := first.Path
	if path == "" {
		path, _ = DefaultPath()
	}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// second pass so that flags win over the file
	if err := NewFlagSet(name, cfg, io.Discard).Parse(args); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// NewFlagSet binds the command line flags to cfg, using its current values as defaults.
func NewFlagSet(name string, cfg *Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Path, "config", cfg.Path, "Path of the yaml config file")
	fs.IntVar(&cfg.Dim, "dim", cfg.Dim, "Board dimension")
	fs.IntVar(&cfg.MaxTurns, "max_turns", cfg.MaxTurns, "Turn limit after which the defender wins, 0 for none")
	fs.IntVar(&cfg.MaxDepth, "max_depth", cfg.MaxDepth, "Search depth when the computer is ahead")
	fs.IntVar(&cfg.MinDepth, "min_depth", cfg.MinDepth, "Search depth when the computer is behind")
	fs.Var((*seconds)(&cfg.MaxTime), "max_time", "Search time budget per move, in seconds (5, 0.5) or as a duration (500ms)")
	fs.StringVar(&cfg.GameType, "game_type", cfg.GameType, "manual, attacker, defender or auto")
	fs.BoolVar(&cfg.AlphaBeta, "alpha_beta", cfg.AlphaBeta, "Enable alpha-beta pruning")
	fs.StringVar(&cfg.Heuristic, "heuristic", cfg.Heuristic, "Evaluation function: e0, e1 or e2")
	fs.BoolVar(&cfg.Randomize, "randomize", cfg.Randomize, "Shuffle the computer's candidate moves")
	fs.IntVar(&cfg.Goroutines, "goroutines", cfg.Goroutines, "Number of goroutines searching the root moves")
	fs.StringVar(&cfg.Broker, "broker", cfg.Broker, "Broker URL, e.g. http://localhost:8001/test")
	fs.StringVar(&cfg.TraceDir, "trace_dir", cfg.TraceDir, "Directory of the game trace, empty to disable")
	fs.StringVar(&cfg.LogLevel, "log_level", cfg.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&cfg.Render, "render", cfg.Render, "Draw the board in the terminal")
	fs.StringVar(&cfg.Server.Listen, "listen", cfg.Server.Listen, "Broker listen address")
	fs.StringVar(&cfg.Server.Redis, "redis", cfg.Server.Redis, "Redis URL of the broker store")
	fs.StringVar(&cfg.Experiment.Name, "name", cfg.Experiment.Name, "Experiment to run: pruning or depth")
	fs.IntVar(&cfg.Experiment.Games, "games", cfg.Experiment.Games, "Games per experiment configuration")
	fs.StringVar(&cfg.Experiment.OutDir, "out_dir", cfg.Experiment.OutDir, "Directory of the experiment results")
	return fs
}

// seconds is a duration flag that also takes a bare number of seconds.
type seconds time.Duration

func (s *seconds) String() string {
	return strconv.FormatFloat(time.Duration(*s).Seconds(), 'f', -1, 64)
}

func (s *seconds) Set(v string) error {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		*s = seconds(f * float64(time.Second))
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("want seconds or a duration: %w", err)
	}
	*s = seconds(d)
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Dim < 4 || c.Dim > 16:
		return fmt.Errorf("%w: board dimension %d not in [4, 16]", ErrInvalidConfig, c.Dim)
	case c.MaxTurns < 0:
		return fmt.Errorf("%w: negative max turns", ErrInvalidConfig)
	case c.MaxDepth < 1 || c.MinDepth < 1:
		return fmt.Errorf("%w: search depths must be positive", ErrInvalidConfig)
	case c.MinDepth > c.MaxDepth:
		return fmt.Errorf("%w: min depth %d above max depth %d", ErrInvalidConfig, c.MinDepth, c.MaxDepth)
	case c.MaxTime < 0:
		return fmt.Errorf("%w: negative max time", ErrInvalidConfig)
	case c.Goroutines < 1:
		return fmt.Errorf("%w: goroutines must be positive", ErrInvalidConfig)
	case c.Experiment.Games < 1:
		return fmt.Errorf("%w: experiments need at least one game", ErrInvalidConfig)
	}
	if _, err := game.ParseGameType(c.GameType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := game.HeuristicByName(c.Heuristic); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Options converts the config into game options. The config must be valid.
func (c *Config) Options() *game.Options {
	gameType, _ := game.ParseGameType(c.GameType)
	return &game.Options{
		Dim:            c.Dim,
		MaxDepth:       c.MaxDepth,
		MinDepth:       c.MinDepth,
		MaxTime:        c.MaxTime,
		GameType:       gameType,
		AlphaBeta:      c.AlphaBeta,
		MaxTurns:       c.MaxTurns,
		RandomizeMoves: c.Randomize,
		Broker:         c.Broker,
		Heuristic:      c.Heuristic,
		Goroutines:     c.Goroutines,
	}
}
