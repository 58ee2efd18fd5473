package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lyriclens/internal/analysis"
	"lyriclens/internal/provider"
	"lyriclens/internal/scripture"
	"lyriclens/internal/store"
)

var (
	analyzeTitle  string
	analyzeArtist string
	analyzeLyrics string
	analyzeNoSave bool
	providerKind  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one song's lyrics",
	Long: `Analyzes a single song. Lyrics are read from --lyrics-file, or from
stdin when the flag is absent.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeTitle, "title", "t", "", "song title")
	analyzeCmd.Flags().StringVarP(&analyzeArtist, "artist", "a", "", "artist name")
	analyzeCmd.Flags().StringVarP(&analyzeLyrics, "lyrics-file", "f", "", "path to a lyrics text file (default stdin)")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "skip recording the result in history")
	analyzeCmd.Flags().StringVarP(&providerKind, "provider", "p", "", "capability provider: keyword, openai, gemini")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	lyrics, err := readLyrics()
	if err != nil {
		return err
	}

	analyzer, cleanup, err := buildAnalyzer()
	if err != nil {
		return err
	}
	defer cleanup()

	song := analysis.Song{Title: analyzeTitle, Artist: analyzeArtist, Lyrics: lyrics}
	result, err := analyzer.Analyze(cmd.Context(), song)
	if err != nil {
		return err
	}

	if !analyzeNoSave {
		saveResult(cmd, result)
	}

	if jsonOut {
		data, err := result.MarshalIndent()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	printResult(result)
	return nil
}

func readLyrics() (string, error) {
	if analyzeLyrics != "" {
		data, err := os.ReadFile(analyzeLyrics)
		if err != nil {
			return "", fmt.Errorf("read lyrics file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read lyrics from stdin: %w", err)
	}
	return string(data), nil
}

// buildAnalyzer assembles the pipeline from config plus command flags.
// The returned cleanup closes the scripture store.
func buildAnalyzer() (*analysis.Analyzer, func(), error) {
	pcfg := cfg.Provider
	if providerKind != "" {
		pcfg.Kind = providerKind
	}
	prov, err := provider.New(pcfg)
	if err != nil {
		return nil, nil, err
	}

	weights, err := cfg.Weights()
	if err != nil {
		return nil, nil, err
	}

	opts := []analysis.Option{
		analysis.WithWeights(weights),
		analysis.WithPolicy(cfg.Policy()),
		analysis.WithThresholds(cfg.AnalysisThresholds()),
		analysis.WithChunking(cfg.Chunking.MaxChars, cfg.Chunking.Parallel),
	}
	if pcfg.Sentiment {
		opts = append(opts, analysis.WithSentiment(provider.NewProseSentiment()))
	}

	cleanup := func() {}
	verses, err := scripture.Open(cfg.Scripture.DBPath)
	if err != nil {
		logger.Warn("scripture store unavailable, references will be bare", zap.Error(err))
	} else {
		opts = append(opts, analysis.WithResolver(verses))
		cleanup = func() { verses.Close() }
	}

	return analysis.NewAnalyzer(prov, opts...), cleanup, nil
}

// saveResult records the result in history; persistence failures are
// logged but never fail the analysis.
func saveResult(cmd *cobra.Command, result *analysis.AnalysisResult) {
	rs, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		logger.Warn("result store unavailable", zap.Error(err))
		return
	}
	defer rs.Close()
	if err := rs.Save(cmd.Context(), result); err != nil {
		logger.Warn("failed to save result", zap.Error(err))
	}
}

func printResult(r *analysis.AnalysisResult) {
	name := strings.TrimSpace(r.Artist + " - " + r.Title)
	if name == "-" {
		name = "(untitled)"
	}
	fmt.Printf("%s\n", name)
	fmt.Printf("  Score:   %.1f / 100\n", r.FinalScore)
	fmt.Printf("  Concern: %s\n", r.QualityLevel)
	if len(r.Themes) > 0 {
		fmt.Println("  Themes:")
		for _, t := range r.Themes {
			fmt.Printf("    %-22s %.2f (%s)\n", t.Name, t.Confidence, t.Category)
		}
	}
	if len(r.Concerns) > 0 {
		fmt.Println("  Concerns:")
		for _, c := range r.Concerns {
			fmt.Printf("    %-22s %s (%.2f)\n", c.Category, c.Severity, c.Confidence)
		}
	}
	fmt.Printf("  Verdict: %s\n", r.Verdict.Summary)
	fmt.Printf("  Guidance: %s\n", r.Verdict.Guidance)
	if len(r.Scripture) > 0 {
		fmt.Println("  Scripture:")
		for _, s := range r.Scripture {
			if s.Text != "" {
				fmt.Printf("    %s - %s\n", s.Reference, s.Text)
			} else {
				fmt.Printf("    %s\n", s.Reference)
			}
		}
	}
}
