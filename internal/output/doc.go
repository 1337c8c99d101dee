// Package output provides structured output handling for the monoscope CLI.
//
// Commands print through a Printer, which switches between JSON and
// human-readable output and disables lipgloss styling when the writer is
// not a terminal:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, isTTY).
//		WithStderr(cmd.ErrOrStderr())
//	printer.Log("start")             // "Monorepo prepare commit msg > start"
//	printer.Success(map[string]any{"scopes": scopes})
//	printer.Error(err)
//
// Errors carry exit codes through ExitError:
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad args, missing hook params, bad config
//	output.ExitSystemError // 2: git failed, .git not found, I/O error
//	output.ExitConflict    // 3: foreign hook in the way
package output
