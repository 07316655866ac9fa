package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/fitsel/internal/core/config"
	"github.com/colonyops/fitsel/internal/core/styles"
	"github.com/colonyops/fitsel/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "fitsel config validate [options]",
				Description: "Validates the configuration file, checking tab definitions, group globs, and theme names.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	result := validate(cmd.flags.Config, cmd.flags.ConfigPath)
	out := c.Root().Writer

	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		writeValidation(out, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func validate(cfg *config.Config, path string) validationResult {
	result := validationResult{Valid: true, Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(path)
	if err == nil {
		return result
	}

	result.Valid = false
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}
		return result
	}

	result.Errors = append(result.Errors, validationError{Message: err.Error()})
	return result
}

func writeValidation(w io.Writer, result validationResult) {
	for _, warn := range result.Warnings {
		line := warn.Category + ": " + warn.Message
		if warn.Item != "" {
			line += fmt.Sprintf(" (%s)", warn.Item)
		}
		_, _ = fmt.Fprintln(w, styles.CommandStyle.Render("warning ")+line)
	}

	for _, e := range result.Errors {
		line := e.Message
		if e.Field != "" {
			line = e.Field + ": " + line
		}
		_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render("error ")+line)
	}

	if len(result.Warnings)+len(result.Errors) > 0 {
		_, _ = fmt.Fprintln(w)
	}

	if result.Valid {
		_, _ = fmt.Fprintln(w, styles.SuccessTextStyle.Render("Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}
