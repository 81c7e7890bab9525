// Package cli provides the command-line interface for userdesk.
//
// The cli package implements the commands an operator uses to manage the
// users of a remote users service:
//   - list: Display all users, optionally filtered with an expression
//   - get: Show a single user
//   - add: Create a user (interactive form when no field flags are given)
//   - update: Edit a user (form prefilled from the current record)
//   - delete: Remove a user after confirmation
//   - serve: Run a local users service for development and tests
//   - config: Display effective configuration and where each value came from
//   - version: Show userdesk version
//
// Every data command goes through a collection.Store, so failures surface as
// the store's status message and the process exits non-zero.
//
// Usage:
//
//	userdesk list
//	userdesk list --filter 'email endsWith "@example.com"'
//	userdesk add --full-name "Ana" --email a@x.com --phone +1
//	userdesk update 1 --full-name "Ana M."
//	userdesk delete 1 --yes
//	userdesk serve --addr :8080
package cli
