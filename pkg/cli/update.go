package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/record"
	"github.com/getmockd/userdesk/pkg/remote"
	"github.com/getmockd/userdesk/pkg/session"
)

var updateFlags userFlags

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Edit a user",
	Long: `Edit a user on the users service.

Only the fields given as flags change; the rest keep their current values.
Without field flags an interactive form prefilled with the current values is shown.`,
	Example: `  userdesk update 1
  userdesk update 1 --full-name "Ana M."`,
	Args: exactlyOneID,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id := record.ID(args[0])

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	a.store.Refresh(cmd.Context())
	if a.store.Status().HasError() {
		return a.statusError(nil)
	}
	current, ok := a.store.Find(id)
	if !ok {
		return fmt.Errorf("user %s: %w", id, remote.ErrNotFound)
	}

	ctl := session.New(a.store)
	ctl.BeginEdit(current)

	fields := updateFlags.changed(cmd)
	if len(fields) == 0 {
		if !interactive() {
			return ErrNeedsInput
		}
		in, err := runUserForm("Edit user "+id.String(), ctl.Draft())
		if err != nil {
			return err
		}
		if err := ctl.SetInput(in); err != nil {
			return err
		}
	} else {
		if err := setFields(ctl, fields); err != nil {
			return err
		}
	}

	updated, err := ctl.Submit(cmd.Context())
	if err != nil {
		return a.statusError(err)
	}
	printUser("Updated", updated)
	return nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateFlags.bind(updateCmd)
}
