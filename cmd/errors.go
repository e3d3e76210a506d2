package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UsageError reports wrong or missing command-line arguments
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %s", e.Msg)
}

// usageArgs turns a cobra argument validator failure into a UsageError
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Msg: err.Error()}
		}
		return nil
	}
}
