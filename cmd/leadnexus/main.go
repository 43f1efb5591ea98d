package main

import (
	"errors"
	"os"

	"github.com/cristianoliveira/leadnexus/cmd"
	"github.com/cristianoliveira/leadnexus/internal/app"
	"github.com/cristianoliveira/leadnexus/internal/colors"
	"github.com/cristianoliveira/leadnexus/internal/logging"
)

func main() {
	err := cmd.Execute()
	// Closing drains queued notifications to the console.
	if cerr := leadClient.Close(); cerr != nil {
		logging.Warn("closing client failed", "error", cerr.Error())
	}
	if err != nil {
		// Load failures were already printed from the queue.
		if !errors.Is(err, app.ErrLoadFailed) {
			colors.Error(err.Error())
		}
		os.Exit(1)
	}
}
