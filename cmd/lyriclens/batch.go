package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lyriclens/internal/analysis"
	"lyriclens/internal/batch"
	"lyriclens/internal/store"
)

var (
	batchDir      string
	batchManifest string
	batchWorkers  int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze many songs concurrently",
	Long: `Runs the analysis pipeline over a batch of songs. Input is either a
directory of .txt lyric files (--dir, file name becomes the title) or a
JSONL manifest (--manifest) with one {"title","artist","lyrics"} object
per line. One song failing never aborts the batch.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "directory of .txt lyric files")
	batchCmd.Flags().StringVarP(&batchManifest, "manifest", "m", "", "JSONL manifest of songs")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "worker count (0 uses the configured default)")
	batchCmd.Flags().StringVarP(&providerKind, "provider", "p", "", "capability provider: keyword, openai, gemini")
}

func runBatch(cmd *cobra.Command, args []string) error {
	songs, err := loadBatchSongs()
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		return fmt.Errorf("no songs to analyze")
	}

	analyzer, cleanup, err := buildAnalyzer()
	if err != nil {
		return err
	}
	defer cleanup()

	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}
	pool := batch.NewPool(analyzer, workers)
	jobID := pool.Submit(cmd.Context(), songs)
	logger.Info("batch submitted", zap.String("job_id", jobID), zap.Int("songs", len(songs)))

	result, err := pool.Await(cmd.Context(), jobID)
	if err != nil {
		return err
	}

	persistBatch(cmd, result.Results)

	if jsonOut {
		return printBatchJSON(result)
	}
	printBatchText(result)
	return nil
}

func loadBatchSongs() ([]analysis.Song, error) {
	switch {
	case batchDir != "" && batchManifest != "":
		return nil, fmt.Errorf("--dir and --manifest are mutually exclusive")
	case batchDir != "":
		return songsFromDir(batchDir)
	case batchManifest != "":
		return songsFromManifest(batchManifest)
	default:
		return nil, fmt.Errorf("one of --dir or --manifest is required")
	}
}

func songsFromDir(dir string) ([]analysis.Song, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch directory: %w", err)
	}
	var songs []analysis.Song
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		songs = append(songs, analysis.Song{
			Title:  strings.TrimSuffix(e.Name(), ".txt"),
			Lyrics: string(data),
		})
	}
	return songs, nil
}

func songsFromManifest(path string) ([]analysis.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var songs []analysis.Song
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var song analysis.Song
		if err := json.Unmarshal([]byte(text), &song); err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", line, err)
		}
		songs = append(songs, song)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return songs, nil
}

func persistBatch(cmd *cobra.Command, results []*analysis.AnalysisResult) {
	rs, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		logger.Warn("result store unavailable", zap.Error(err))
		return
	}
	defer rs.Close()
	for _, r := range results {
		if err := rs.Save(cmd.Context(), r); err != nil {
			logger.Warn("failed to save result", zap.String("title", r.Title), zap.Error(err))
		}
	}
}

func printBatchJSON(result *batch.Result) error {
	out := struct {
		JobID    string                     `json:"job_id"`
		Progress batch.Progress             `json:"progress"`
		Results  []*analysis.AnalysisResult `json:"results"`
		Failures map[string]string          `json:"failures,omitempty"`
	}{
		JobID:    result.JobID,
		Progress: result.Progress,
		Results:  result.Results,
	}
	if len(result.Failures) > 0 {
		out.Failures = make(map[string]string, len(result.Failures))
		for title, err := range result.Failures {
			out.Failures[title] = err.Error()
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printBatchText(result *batch.Result) {
	fmt.Printf("Batch %s: %d analyzed, %d failed\n\n",
		result.JobID, result.Progress.Done, result.Progress.Failed)
	for _, r := range result.Results {
		name := r.Title
		if r.Artist != "" {
			name = r.Artist + " - " + r.Title
		}
		fmt.Printf("  %-40s %6.1f  %s\n", name, r.FinalScore, r.QualityLevel)
	}
	if len(result.Failures) > 0 {
		titles := make([]string, 0, len(result.Failures))
		for title := range result.Failures {
			titles = append(titles, title)
		}
		sort.Strings(titles)
		fmt.Println("\nFailures:")
		for _, title := range titles {
			fmt.Printf("  %-40s %v\n", title, result.Failures[title])
		}
	}
}
