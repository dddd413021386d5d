// Command confinode searches for and loads application configuration files.
//
//	confinode search --name app [path]
//	confinode load --name app ./conf/app.yaml
//	confinode loaders
//
// Every flag can also be set through a CONFINODE_ environment variable
// (CONFINODE_STOP_DIR, CONFINODE_LOG_LEVEL, ...).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "confinode:", err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			stop()
			os.Exit(exitErr.Code)
		}
		stop()
		os.Exit(1)
	}
}
