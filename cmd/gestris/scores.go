package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/qnkhuat/gestris/pkg/store"
)

func printScores(w io.Writer, ledger *store.Ledger) error {
	entries, err := ledger.Load()
	if err != nil {
		return err
	}

	title := color.New(color.FgCyan, color.Bold)
	title.Fprintln(w, "Highscores")

	if len(entries) == 0 {
		color.New(color.Faint).Fprintln(w, "  no scores yet")
		return nil
	}

	gold := color.New(color.FgYellow, color.Bold)
	for i, e := range entries {
		line := color.New(color.FgWhite)
		if i == 0 {
			line = gold
		}
		line.Fprintf(w, "%2d. %-10s %6d\n", i+1, e.Name, e.Score)
	}

	return nil
}
