// Package workflows contains the business logic behind skseal's commands,
// separated from their CLI presentation.
//
// Each workflow takes an explicit Options struct and returns a Result
// struct, so commands stay thin (flag parsing and output formatting) and
// the logic stays testable without a terminal. Nothing in here reads flags
// or global state; the CLI resolves config into options first.
//
// Workflows return the sentinel errors from internal/errors; commands match
// them with errors.Is to choose user-facing messages.
package workflows
