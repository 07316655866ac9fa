// Package config handles configuration loading and validation for fitsel.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/fitsel/internal/core/styles"
	"github.com/colonyops/fitsel/internal/core/tabs"
)

// Tab ids of the built-in tabs.
const (
	TabResults = "results"
	TabCals    = "caltab"
	TabObslogs = "obslogstab"
)

// ResultsGroup is the selection group the search results table registers.
const ResultsGroup = "customsearch"

// Config holds the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Tabs   []TabConfig  `yaml:"tabs"`
	Groups GroupsConfig `yaml:"groups"`
	TUI    TUIConfig    `yaml:"tui"`
}

// ServerConfig describes the archive server.
type ServerConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"` // 0 = unlimited
	UserAgent         string        `yaml:"user_agent"`
}

// TabConfig defines one tab of the content area.
type TabConfig struct {
	ID                string `yaml:"id"`
	Pane              string `yaml:"pane"`
	Title             string `yaml:"title"`
	Endpoint          string `yaml:"endpoint"`
	SelectionEndpoint string `yaml:"selection_endpoint"`
	SelectionDriven   bool   `yaml:"selection_driven"`
	SourceGroup       string `yaml:"source_group"`
	Allow             *bool  `yaml:"allow"` // nil = true
	HideDownloadBar   bool   `yaml:"hide_download_bar"`
	Eager             bool   `yaml:"eager"`
}

// Allowed reports whether the tab may fetch content.
func (t TabConfig) Allowed() bool {
	return t.Allow == nil || *t.Allow
}

// GroupsConfig selects which fragment groups become selectable.
type GroupsConfig struct {
	Include []string `yaml:"include"` // doublestar globs matched against group ids
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme         string `yaml:"theme"`
	MarkdownStyle string `yaml:"markdown_style"` // dark, light, notty
}

// DefaultTabs returns the results, calibrations, and observation log tabs.
func DefaultTabs() []TabConfig {
	return []TabConfig{
		{
			ID:       TabResults,
			Pane:     "searchresults",
			Title:    "Search Results",
			Endpoint: "/searchresults/body_only",
			Eager:    true,
		},
		{
			ID:              TabCals,
			Pane:            "calibration_results",
			Title:           "Calibrations",
			Endpoint:        "/associated_cals/body_only",
			SelectionDriven: true,
			SourceGroup:     ResultsGroup,
			HideDownloadBar: true,
		},
		{
			ID:       TabObslogs,
			Pane:     "obslog_results",
			Title:    "Observation Logs",
			Endpoint: "/associated_obslogs",
		},
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:           "https://archive.gemini.edu",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 4,
			UserAgent:         "fitsel",
		},
		Tabs: DefaultTabs(),
		Groups: GroupsConfig{
			Include: []string{"**"},
		},
		TUI: TUIConfig{
			Theme:         styles.DefaultTheme,
			MarkdownStyle: "dark",
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			// A tabs list in the file replaces the defaults rather than
			// merging element-wise.
			cfg.Tabs = nil
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = defaults.Server.Timeout
	}
	if c.Server.UserAgent == "" {
		c.Server.UserAgent = defaults.Server.UserAgent
	}
	if len(c.Tabs) == 0 {
		c.Tabs = defaults.Tabs
	}
	for i := range c.Tabs {
		if c.Tabs[i].Pane == "" {
			c.Tabs[i].Pane = c.Tabs[i].ID
		}
		if c.Tabs[i].Title == "" {
			c.Tabs[i].Title = c.Tabs[i].ID
		}
	}
	if len(c.Groups.Include) == 0 {
		c.Groups.Include = defaults.Groups.Include
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.MarkdownStyle == "" {
		c.TUI.MarkdownStyle = defaults.TUI.MarkdownStyle
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.base_url %q must be an absolute URL", c.Server.BaseURL)
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout cannot be negative")
	}

	if c.Server.RequestsPerSecond < 0 {
		return fmt.Errorf("server.requests_per_second cannot be negative")
	}

	if len(c.Tabs) == 0 {
		return fmt.Errorf("at least one tab is required")
	}

	seen := make(map[string]bool, len(c.Tabs))
	for i, t := range c.Tabs {
		if t.ID == "" {
			return fmt.Errorf("tabs[%d]: id is required", i)
		}
		if seen[t.ID] {
			return fmt.Errorf("tabs[%d]: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = true

		if t.SelectionDriven && t.SourceGroup == "" {
			return fmt.Errorf("tab %q: selection_driven requires source_group", t.ID)
		}
	}

	return nil
}

// TabSpecs converts the tab configuration for the tab controller.
func (c *Config) TabSpecs() []tabs.Spec {
	specs := make([]tabs.Spec, 0, len(c.Tabs))
	for _, t := range c.Tabs {
		specs = append(specs, tabs.Spec{
			ID:                t.ID,
			PaneID:            t.Pane,
			Title:             t.Title,
			Endpoint:          t.Endpoint,
			SelectionEndpoint: t.SelectionEndpoint,
			SelectionDriven:   t.SelectionDriven,
			SourceGroup:       t.SourceGroup,
			Allow:             t.Allowed(),
			HideDownloadBar:   t.HideDownloadBar,
			Eager:             t.Eager,
		})
	}
	return specs
}

// IncludeGroup reports whether a fragment group id matches groups.include.
// Invalid patterns never match; ValidateDeep reports them.
func (c *Config) IncludeGroup(groupID string) bool {
	for _, pattern := range c.Groups.Include {
		if ok, err := doublestar.Match(pattern, groupID); err == nil && ok {
			return true
		}
	}
	return false
}

// Palette returns the configured theme palette, falling back to the default.
func (c *Config) Palette() styles.Palette {
	if p, ok := styles.GetPalette(c.TUI.Theme); ok {
		return p
	}
	p, _ := styles.GetPalette(styles.DefaultTheme)
	return p
}
