package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/record"
	"github.com/getmockd/userdesk/pkg/session"
)

// userFlags are the field flags shared by add and update.
type userFlags struct {
	fullName string
	email    string
	phone    string
}

func (f *userFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.fullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
}

// changed returns the field/value pairs given on the command line.
func (f *userFlags) changed(cmd *cobra.Command) map[string]string {
	out := make(map[string]string, 3)
	if cmd.Flags().Changed("full-name") {
		out[record.FieldFullName] = f.fullName
	}
	if cmd.Flags().Changed("email") {
		out[record.FieldEmail] = f.email
	}
	if cmd.Flags().Changed("phone") {
		out[record.FieldPhone] = f.phone
	}
	return out
}

var addFlags userFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user",
	Long: `Create a user on the users service.

Without field flags an interactive form is shown.`,
	Example: `  userdesk add
  userdesk add --full-name "Ana López" --email ana@example.com --phone +5217771234567`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctl := session.New(a.store)
	ctl.BeginCreate()

	fields := addFlags.changed(cmd)
	if len(fields) == 0 {
		if !interactive() {
			return ErrNeedsInput
		}
		in, err := runUserForm("New user", ctl.Draft())
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

	created, err := ctl.Submit(cmd.Context())
	if err != nil {
		return a.statusError(err)
	}
	printUser("Created", created)
	return nil
}

func setFields(ctl *session.Controller, fields map[string]string) error {
	for _, name := range []string{record.FieldFullName, record.FieldEmail, record.FieldPhone} {
		if v, ok := fields[name]; ok {
			if err := ctl.Set(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addFlags.bind(addCmd)
}
