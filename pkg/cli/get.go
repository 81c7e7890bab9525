package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/record"
)

var getCmd = &cobra.Command{
	Use:     "get <id>",
	Short:   "Show a single user",
	Example: `  userdesk get 1
  userdesk get 1 --json`,
	Args: exactlyOneID,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		u, err := a.client.Get(cmd.Context(), record.ID(args[0]))
		if err != nil {
			return err
		}
		printUser("", u)
		return nil
	},
}

// exactlyOneID is a cobra.PositionalArgs that names the missing argument.
func exactlyOneID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &ExitError{Code: 2, Err: usageError(cmd, ErrMissingUser)}
	}
	return nil
}

func usageError(cmd *cobra.Command, err error) error {
	return &usageErr{err: err, usage: cmd.UseLine()}
}

type usageErr struct {
	err   error
	usage string
}

func (e *usageErr) Error() string {
	return e.err.Error() + "\n\nUsage: " + e.usage
}

func (e *usageErr) Unwrap() error {
	return e.err
}

func init() {
	rootCmd.AddCommand(getCmd)
}
