// Package output provides terminal output and exit-coded errors for the
// wpexport CLI.
//
// Every command builds a Printer from its cobra writers:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd),
//		output.ResolveColorMode(colorFlag(cmd), cmd.OutOrStdout())).
//		WithStderr(cmd.ErrOrStderr())
//
// Results go through Success, Table, KeyValue or WriteJSON. Failures go
// through Error, which renders {"error": "...", "code": N} in JSON mode.
//
// # Diagnostics
//
// Diag is the sink handed to the export core (normalize.Logf). It always
// writes to the error writer, in human and JSON mode alike, so messages such
// as a missing pattern category survive `--json` piping.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flags, invalid config, unknown post
//	output.ExitSystemError // 2: database or filesystem failure
//	output.ExitConflict    // 3: refused to overwrite an exported file
package output
