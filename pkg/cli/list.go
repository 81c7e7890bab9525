package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/record"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	Long: `List every user known to the users service.

The --filter expression is evaluated against each user with the variables
id, fullName, email and phone, and must return a boolean.`,
	Example: `  userdesk list
  userdesk list --filter 'email endsWith "@example.com"'
  userdesk list --filter 'fullName contains "Ana"' --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	// Compile before touching the network so a typo fails fast.
	var filter *record.Filter
	if listFilter != "" {
		f, err := record.CompileFilter(listFilter)
		if err != nil {
			return err
		}
		filter = f
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	a.store.Refresh(cmd.Context())
	if a.store.Status().HasError() {
		return a.statusError(nil)
	}

	users := a.store.Users()
	if filter != nil {
		if users, err = filter.Apply(users); err != nil {
			return err
		}
	}

	printUsers(users)
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Filter expression, e.g. 'email endsWith \"@x.com\"'")
}
