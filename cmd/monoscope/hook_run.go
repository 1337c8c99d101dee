package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/monoscope/internal/commitmsg"
	"github.com/gorewood/monoscope/internal/git"
	"github.com/gorewood/monoscope/internal/hook"
	"github.com/gorewood/monoscope/internal/output"
	"github.com/gorewood/monoscope/internal/setup"
)

// hookRunOptions holds the flags of the hook run command.
type hookRunOptions struct {
	ticket  bool
	timeout time.Duration
}

// newHookCmd creates the hidden hook parent command for internal hook execution.
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Internal hook runner",
		Long:   `Internal command for running hook logic. Called by git hooks.`,
		Hidden: true,
	}

	cmd.AddCommand(newHookRunCmd())
	return cmd
}

// newHookRunCmd creates the hook run subcommand.
func newHookRunCmd() *cobra.Command {
	opts := &hookRunOptions{}

	cmd := &cobra.Command{
		Use:   "run <hook-name> [hook-args...]",
		Short: "Execute hook logic",
		Long: `Execute the logic for the specified hook. Called by installed git hooks.

For prepare-commit-msg the hook arguments are the ones git passes:
  <message-file> [<source> [<commit-sha>]]
When they are missing, HUSKY_GIT_PARAMS and then GIT_PARAMS are read.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHookRun(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ticket, "ticket", false, "Prepend the branch ticket to the commit message")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Bound the git calls (0 means no limit)")

	return cmd
}

// runHookRun executes the hook run command.
func runHookRun(cmd *cobra.Command, args []string, opts *hookRunOptions) error {
	hookName := args[0]

	switch hookName {
	case setup.HookName:
		return runPrepareCommitMsgHook(cmd, args[1:], opts)
	default:
		// Unknown hook - silently succeed to not block operations
		return nil
	}
}

// runPrepareCommitMsgHook runs the scope pipeline and logs each step.
// It never returns an error so the commit always proceeds.
func runPrepareCommitMsgHook(cmd *cobra.Command, hookArgs []string, opts *hookRunOptions) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd, cmd.ErrOrStderr())).
		WithStderr(cmd.ErrOrStderr())

	printer.Log("start")
	result, err := prepareCommitMsg(cmd, hookArgs, opts, printer)
	if err != nil {
		printer.Log("%s", output.Describe(err))
	}
	printer.Log("done")

	if printer.IsJSON() {
		if err != nil {
			payload := errorPayload(err)
			if result != nil {
				payload["result"] = result
			}
			_ = printer.WriteJSON(payload)
			return nil
		}
		_ = printer.WriteJSON(result)
	}
	return nil
}

// prepareCommitMsg resolves the boundary inputs (working directory, hook
// params, config) and runs the pipeline.
func prepareCommitMsg(cmd *cobra.Command, hookArgs []string, opts *hookRunOptions, logger hook.Logger) (*hook.Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read working directory", err)
	}

	// Missing params only matter once the ticket step needs the message file.
	params, paramsErr := commitmsg.ParamsFromArgs(hookArgs, os.Getenv)

	dotGit, err := git.FindDotGit(cwd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd, dotGit)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	runner := &hook.Runner{
		Config:    cfg,
		Params:    params,
		ParamsErr: paramsErr,
		Logger:    logger,
		Ticket:    opts.ticket,
	}
	return runner.Run(ctx, cwd)
}
