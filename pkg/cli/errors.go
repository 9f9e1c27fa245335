package cli

import "fmt"

// ConfigError reports a problem with the runtime configuration,
// optionally tied to a specific field path such as "store.backend".
type ConfigError struct {
	Field   string
	Message string
}

// NewConfigError builds a ConfigError. An empty field produces a
// message without the field path.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config error: " + e.Message
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError wraps a failure from a CLI subcommand so callers can
// report which command failed while keeping the cause unwrappable.
type CommandError struct {
	Command string
	Err     error
}

// NewCommandError wraps err as a failure of the named command.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
