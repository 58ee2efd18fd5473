package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"lyriclens/internal/store"
)

var (
	historyLimit int
	historyShow  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analysis results",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum results to list")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "print the full stored result for an ID")
}

func runHistory(cmd *cobra.Command, args []string) error {
	rs, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return err
	}
	defer rs.Close()

	if historyShow != "" {
		result, err := rs.Get(cmd.Context(), historyShow)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("no result with id %q", historyShow)
		}
		data, err := result.MarshalIndent()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	summaries, err := rs.ListRecent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if jsonOut {
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(summaries) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}
	for _, s := range summaries {
		name := s.Title
		if s.Artist != "" {
			name = s.Artist + " - " + s.Title
		}
		fmt.Printf("  %s  %-40s %6.1f  %-10s %s\n",
			s.ID, name, s.FinalScore, s.QualityLevel, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
