package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/cli/internal/output"
	"github.com/getmockd/userdesk/pkg/record"
)

var deleteYes bool

// DeleteOutput is the --json result of delete.
type DeleteOutput struct {
	ID      record.ID `json:"id"`
	Deleted bool      `json:"deleted"`
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user",
	Example: `  userdesk delete 1
  userdesk delete 1 --yes`,
	Args: exactlyOneID,
	RunE: func(cmd *cobra.Command, args []string) error {
		id := record.ID(args[0])

		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		if !deleteYes {
			if !interactive() {
				return ErrNeedsYes
			}
			ok, err := confirm(fmt.Sprintf("Delete user %s?", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(output.Stderr, "Cancelled")
				return nil
			}
		}

		if err := a.store.Remove(cmd.Context(), id); err != nil {
			return a.statusError(err)
		}

		printResult(DeleteOutput{ID: id, Deleted: true}, func() {
			fmt.Fprintf(output.Stdout, "Deleted user: %s\n", id)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
