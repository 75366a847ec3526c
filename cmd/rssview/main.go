package main

import (
	"fmt"
	"os"

	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
)

func main() {
	rootCmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		th := tuitheme.New(tuitheme.RendererFor(os.Stderr, os.Getenv("NO_COLOR") != ""))
		fmt.Fprintf(os.Stderr, "%s: %v\n", th.StateWarn.Render("error"), err)
		os.Exit(1)
	}
}
