package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/fitsel/internal/core/styles"
	"github.com/colonyops/fitsel/internal/core/validate"
)

// MarkdownStyles lists the accepted tui.markdown_style values.
var MarkdownStyles = []string{"dark", "light", "notty"}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility, glob syntax, and cross references between
// tabs. The configPath argument specifies the config file location to
// validate (empty string skips the config file check). This calls Validate()
// first for basic structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateTabs(),
		c.validateGroups(),
		c.validateTUI(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for _, t := range c.Tabs {
		if t.Endpoint == "" && !t.Eager {
			warnings = append(warnings, ValidationWarning{
				Category: "Tabs",
				Item:     t.ID,
				Message:  "tab has no endpoint and will always be empty",
			})
		}
		if !t.Allowed() {
			warnings = append(warnings, ValidationWarning{
				Category: "Tabs",
				Item:     t.ID,
				Message:  "tab is disabled and will never load",
			})
		}
	}

	if c.Server.RequestsPerSecond == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Server",
			Message:  "requests_per_second is 0, requests are not throttled",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateTabs checks endpoints and that selection-driven tabs read from a
// group some tab can produce.
func (c *Config) validateTabs() error {
	var errs criterio.FieldErrorsBuilder

	panes := make(map[string]string, len(c.Tabs))
	for i, t := range c.Tabs {
		field := fmt.Sprintf("tabs[%d]", i)

		if other, dup := panes[t.Pane]; dup {
			errs = errs.Append(field+".pane", fmt.Errorf("pane %q already used by tab %q", t.Pane, other))
		}
		panes[t.Pane] = t.ID

		for _, ep := range []struct{ name, value string }{
			{".endpoint", t.Endpoint},
			{".selection_endpoint", t.SelectionEndpoint},
		} {
			if err := validate.Endpoint(ep.value); err != nil {
				errs = errs.Append(field+ep.name, err)
			}
		}

		if t.SelectionDriven && t.Endpoint == "" && t.SelectionEndpoint == "" {
			errs = errs.Append(field+".selection_endpoint", fmt.Errorf("selection driven tab needs an endpoint"))
		}

		if t.SourceGroup != "" && !c.IncludeGroup(t.SourceGroup) {
			errs = errs.Append(field+".source_group",
				fmt.Errorf("group %q is excluded by groups.include", t.SourceGroup))
		}
	}

	return errs.ToError()
}

func (c *Config) validateGroups() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Groups.Include {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("groups.include[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}

func (c *Config) validateTUI() error {
	return criterio.ValidateStruct(
		criterio.Run("tui.theme", c.TUI.Theme, isKnownTheme),
		criterio.Run("tui.markdown_style", c.TUI.MarkdownStyle, isMarkdownStyle),
	)
}

func isKnownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func isMarkdownStyle(name string) error {
	if !slices.Contains(MarkdownStyles, name) {
		return fmt.Errorf("must be one of %s", strings.Join(MarkdownStyles, ", "))
	}
	return nil
}
