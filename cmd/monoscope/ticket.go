package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/monoscope/internal/commitmsg"
)

// newTicketCmd creates the ticket command.
func newTicketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ticket <ticket> [message-file]",
		Short: "Prepend a ticket to a commit message file",
		Long: `Prepend "[<ticket>]" as the first line of a commit message file unless
the message already mentions the ticket.

Without a message file argument the path is taken from HUSKY_GIT_PARAMS
or GIT_PARAMS.

Examples:
  monoscope ticket ABC-123 .git/COMMIT_EDITMSG
  HUSKY_GIT_PARAMS=.git/COMMIT_EDITMSG monoscope ticket ABC-123`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runTicket,
	}
}

// runTicket executes the ticket command.
func runTicket(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	ticket := args[0]

	params, err := commitmsg.ParamsFromArgs(args[1:], os.Getenv)
	if err != nil {
		return reportError(printer, err)
	}
	path, err := params.MessageFile()
	if err != nil {
		return reportError(printer, err)
	}

	written, err := commitmsg.WriteTicket(path, ticket)
	if err != nil {
		return reportError(printer, err)
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"ticket":  ticket,
			"file":    path,
			"written": written,
		})
	}
	if !written {
		return printer.Success(map[string]any{"message": "Message already mentions " + ticket})
	}
	return printer.Success(map[string]any{"message": "Added [" + ticket + "] to " + path})
}
