package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"termchess/engine"
	"termchess/logging"
	"termchess/notation"
)

var (
	cfgFile = "termchess/config.yaml"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare    int `yaml:"light_square"`
	DarkSquare     int `yaml:"dark_square"`
	WhitePiece     int `yaml:"white_piece"`
	BlackPiece     int `yaml:"black_piece"`
	CursorBG       int `yaml:"cursor_bg"`
	SelectedBG     int `yaml:"selected_bg"`
	HighlightBG    int `yaml:"highlight_bg"`
	LastPlayedBG   int `yaml:"last_played_bg"`
	CoordinateText int `yaml:"coordinates"`
}

type Theme struct {
	Glyphs                   notation.GlyphStyle `yaml:"glyphs"`
	DrawLastPlayedBackground bool                `yaml:"draw_last_played_bg"`
	Colors                   ConfigColors        `yaml:"colors"`
}

// GameSettings holds the defaults offered on the setup screen.
type GameSettings struct {
	AutoFlip          bool `yaml:"auto_flip"`
	ShowHints         bool `yaml:"show_hints"`
	StopAtKingCapture bool `yaml:"stop_at_king_capture"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type Config struct {
	Theme Theme        `yaml:"theme"`
	Game  GameSettings `yaml:"game"`
	Log   LogConfig    `yaml:"log"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Theme.Glyphs {
	case notation.GlyphUnicode, notation.GlyphLetters:
	default:
		return &InvalidConfig{fmt.Sprintf("unknown glyph style %q (use unicode or letters)", c.Theme.Glyphs)}
	}
	colors := c.Theme.Colors
	for _, v := range []int{colors.LightSquare, colors.DarkSquare, colors.WhitePiece, colors.BlackPiece,
		colors.CursorBG, colors.SelectedBG, colors.HighlightBG, colors.LastPlayedBG, colors.CoordinateText} {
		if v < 0 || v > 255 {
			return &InvalidConfig{fmt.Sprintf("palette colors must be within 0-255, got %d", v)}
		}
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return &InvalidConfig{fmt.Sprintf("unknown log format %q (use console or json)", c.Log.Format)}
	}
	return nil
}

// GameConfig returns the engine configuration matching the game settings.
func (c *Config) GameConfig() engine.GameConfig {
	return engine.GameConfig{
		AutoFlip:          c.Game.AutoFlip,
		ShowHints:         c.Game.ShowHints,
		StopAtKingCapture: c.Game.StopAtKingCapture,
	}
}

// LogOptions returns the logger options for this config.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		File:   c.Log.File,
	}
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("resolve config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filePath, data, perm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	if err := yaml.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
