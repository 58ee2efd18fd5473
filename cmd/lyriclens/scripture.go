package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyriclens/internal/scripture"
)

var scriptureCmd = &cobra.Command{
	Use:   "scripture <reference>",
	Short: "Look up a scripture reference",
	Long: `Resolves a reference like "jn 3:16" or "1 cor 13:4" to its canonical
form and verse text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScripture,
}

func runScripture(cmd *cobra.Command, args []string) error {
	reference := strings.Join(args, " ")

	verses, err := scripture.Open(cfg.Scripture.DBPath)
	if err != nil {
		return err
	}
	defer verses.Close()

	ref, err := verses.Resolve(cmd.Context(), reference)
	if err != nil {
		return err
	}
	if ref == nil {
		return fmt.Errorf("no verse found for %q (normalized %q)",
			reference, scripture.Normalize(reference))
	}

	if jsonOut {
		data, err := json.MarshalIndent(ref, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("%s\n  %s\n", ref.Reference, ref.Text)
	return nil
}
