// Command bbsdump lists the commands decoded from ANSI art, ANSI Music
// and Atari ST IGS files.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCommand(ctx).Execute()
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "bbsdump: %v\n", err)
		os.Exit(1)
	}
}
