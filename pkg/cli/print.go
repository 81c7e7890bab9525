package cli

import (
	"fmt"

	"github.com/getmockd/userdesk/pkg/cli/internal/output"
	"github.com/getmockd/userdesk/pkg/record"
)

// printResult outputs a single operation result.
//
// Contract: when --json is active, ONLY the JSON encoding of data is written
// to stdout. Human-readable prose (progress messages, hints) must go to stderr
// or be omitted entirely. textFn is called only in text mode.
func printResult(data any, textFn func()) {
	if jsonOutput {
		_ = output.JSON(data)
		return
	}
	textFn()
}

func printUsers(users []record.UserRecord) {
	if users == nil {
		users = []record.UserRecord{}
	}
	printResult(users, func() {
		if len(users) == 0 {
			fmt.Fprintln(output.Stdout, "No users found")
			return
		}
		w := output.Table()
		fmt.Fprintln(w, "ID\tFULL NAME\tEMAIL\tPHONE")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, output.Truncate(u.FullName, 32), u.Email, u.Phone)
		}
		_ = w.Flush()
	})
}

func printUser(verb string, u record.UserRecord) {
	printResult(u, func() {
		if verb != "" {
			fmt.Fprintf(output.Stdout, "%s user: %s\n", verb, u.ID)
		}
		w := output.Table()
		fmt.Fprintf(w, "ID:\t%s\n", u.ID)
		fmt.Fprintf(w, "Full name:\t%s\n", u.FullName)
		fmt.Fprintf(w, "Email:\t%s\n", u.Email)
		fmt.Fprintf(w, "Phone:\t%s\n", u.Phone)
		_ = w.Flush()
	})
}
