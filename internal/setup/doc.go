// Package setup installs and removes the monoscope git hook.
//
// The functions here do the file work; the hooks commands in cmd/monoscope
// handle flags and output:
//
//	hookPath := setup.ResolveHookPath(ctx, workTree, gitDir)
//	status := setup.CheckHookStatus(hookPath)
//	chained, err := setup.InstallHook(hookPath, chain, force)
//	removed, restored, err := setup.UninstallHook(hookPath)
package setup
