package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"tedit/buffer"
	"tedit/log"
)

type Config struct {
	TabSize            int    `json:"tab_size"`
	LiteralTabs        bool   `json:"literal_tabs"`
	Theme              string `json:"theme"`
	TrimTrailingSpace  bool   `json:"trim_trailing_whitespace"`
	InsertFinalNewline bool   `json:"insert_final_newline"`
	ScrollMargin       int    `json:"scroll_margin"`
	LineNumbers        bool   `json:"line_numbers"`
}

// LanguageTabSize returns the indentation width for a language, falling
// back to the configured tab size.
func (c *Config) LanguageTabSize(language string) int {
	switch language {
	case "JavaScript", "TypeScript", "JSON", "HTML", "CSS", "YAML", "TOML":
		return 2
	case "Go", "Python", "Java", "C", "C++", "Rust", "PHP":
		return 4
	case "Makefile":
		return 8
	default:
		return c.TabSize
	}
}

// LanguageUseTabs returns whether a language should use real tabs vs spaces.
func (c *Config) LanguageUseTabs(language string) bool {
	switch language {
	case "Go", "Makefile":
		return true
	default:
		return c.LiteralTabs
	}
}

// TabPolicy resolves the tab handling for a file: language defaults first,
// then any .editorconfig found above path.
func (c *Config) TabPolicy(path, language string) buffer.TabPolicy {
	p := buffer.TabPolicy{
		Width:   c.LanguageTabSize(language),
		Literal: c.LanguageUseTabs(language),
	}
	if path == "" {
		return p
	}
	if ec := FindEditorConfig(path); ec != nil {
		p = ec.Apply(p)
	}
	return p
}

type ColorScheme struct {
	Name               string
	Background         tcell.Color
	Foreground         tcell.Color
	Selection          tcell.Color
	LineNumber         tcell.Color
	LineNumberActive   tcell.Color
	StatusBarBg        tcell.Color
	StatusBarFg        tcell.Color
	StatusBarModeBg    tcell.Color
	PaneBorder         tcell.Color
	SearchMatch        tcell.Color
	SearchCurrent      tcell.Color
	TrailingWhitespace tcell.Color
	PromptBg           tcell.Color
	PromptFg           tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:               "Dark",
		Background:         tcell.ColorBlack,
		Foreground:         tcell.ColorWhite,
		Selection:          tcell.ColorDarkBlue,
		LineNumber:         tcell.ColorGray,
		LineNumberActive:   tcell.ColorWhite,
		StatusBarBg:        tcell.ColorDarkBlue,
		StatusBarFg:        tcell.ColorWhite,
		StatusBarModeBg:    tcell.ColorBlue,
		PaneBorder:         tcell.ColorGray,
		SearchMatch:        tcell.ColorOlive,
		SearchCurrent:      tcell.ColorYellow,
		TrailingWhitespace: tcell.ColorMaroon,
		PromptBg:           tcell.ColorBlack,
		PromptFg:           tcell.ColorWhite,
	},
	"light": {
		Name:               "Light",
		Background:         tcell.ColorWhite,
		Foreground:         tcell.ColorBlack,
		Selection:          tcell.ColorLightBlue,
		LineNumber:         tcell.ColorGray,
		LineNumberActive:   tcell.ColorBlack,
		StatusBarBg:        tcell.ColorLightBlue,
		StatusBarFg:        tcell.ColorBlack,
		StatusBarModeBg:    tcell.ColorBlue,
		PaneBorder:         tcell.ColorGray,
		SearchMatch:        tcell.ColorLightYellow,
		SearchCurrent:      tcell.ColorYellow,
		TrailingWhitespace: tcell.ColorPink,
		PromptBg:           tcell.ColorLightGray,
		PromptFg:           tcell.ColorBlack,
	},
	"monokai": {
		Name:               "Monokai",
		Background:         tcell.NewRGBColor(39, 40, 34),
		Foreground:         tcell.NewRGBColor(248, 248, 242),
		Selection:          tcell.NewRGBColor(73, 72, 62),
		LineNumber:         tcell.NewRGBColor(144, 144, 128),
		LineNumberActive:   tcell.NewRGBColor(248, 248, 242),
		StatusBarBg:        tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:        tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg:    tcell.NewRGBColor(102, 217, 239),
		PaneBorder:         tcell.NewRGBColor(144, 144, 128),
		SearchMatch:        tcell.NewRGBColor(117, 113, 94),
		SearchCurrent:      tcell.NewRGBColor(230, 219, 116),
		TrailingWhitespace: tcell.NewRGBColor(249, 38, 114),
		PromptBg:           tcell.NewRGBColor(39, 40, 34),
		PromptFg:           tcell.NewRGBColor(248, 248, 242),
	},
}

func Default() *Config {
	return &Config{
		TabSize:            4,
		Theme:              "monokai",
		TrimTrailingSpace:  false,
		InsertFinalNewline: true,
		ScrollMargin:       3,
		LineNumbers:        true,
	}
}

// Validate clamps values that would make the editor misbehave.
func (c *Config) Validate() error {
	if c.TabSize < 1 || c.TabSize > 16 {
		return fmt.Errorf("tab_size must be between 1 and 16, got %d", c.TabSize)
	}
	if c.ScrollMargin < 0 {
		c.ScrollMargin = 0
	}
	if _, ok := Themes[c.Theme]; !ok {
		log.Warn(log.CatConfig, "unknown theme", "theme", c.Theme)
	}
	return nil
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	if p := os.Getenv("TEDIT_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tedit", "settings.json")
}

func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the settings file at path over the defaults. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug(log.CatConfig, "loaded config", "path", path, "theme", cfg.Theme)
	return cfg, nil
}

func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
