package cli

import (
	"context"
	"os"
)

// Execute runs the minidraw CLI with ctx and returns the error of the failed
// command, if any.
//
// Logging goes to stderr at info level; --verbose (-v) switches to debug,
// which also reports scene loading, rendering and cache activity. The logger
// is attached to the command context and available through
// loggerFromContext.
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
