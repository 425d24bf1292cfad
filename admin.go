package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

func historyCommand(ctx context.Context) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.history.Recent(ctx, CLI.History.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no games played yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tROUNDS\tPLAYERS\tWINNERS")
	for _, rec := range records {
		players := make([]string, len(rec.PlayerNames))
		for i, name := range rec.PlayerNames {
			score := 0
			if i < len(rec.FinalScores) {
				score = rec.FinalScores[i]
			}
			players[i] = fmt.Sprintf("%s (%d)", name, score)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			rec.ID,
			rec.Date.Format("2006-01-02 15:04"),
			rec.RoundCount,
			strings.Join(players, ", "),
			strings.Join(rec.WinnerNames, ", "),
		)
	}
	return w.Flush()
}

func questionsRemainingCommand() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("%d of %d questions unused\n", a.pool.RemainingCount(), a.pool.Size())
	return nil
}

func questionsResetCommand() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.pool.ResetPool()
	fmt.Printf("question pool reset, %d questions available\n", a.pool.RemainingCount())
	return nil
}
