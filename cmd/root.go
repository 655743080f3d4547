package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "papergen",
	Short: "AI exam question paper generator",
	Long: "Papergen turns a syllabus description into an exam question paper and\n" +
		"answer key through a generative model, renders both as PDFs, and keeps\n" +
		"a history of everything it generated.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "",
		"Directory for papergen data files (overrides PAPERGEN_DATA_DIR; default: current directory)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using --data-dir (highest
// priority), then PAPERGEN_DATA_DIR, then the current directory.
func resolveDataDir(cmd *cobra.Command) string {
	if d, _ := cmd.Flags().GetString("data-dir"); d != "" {
		return d
	}
	if d := os.Getenv("PAPERGEN_DATA_DIR"); d != "" {
		return d
	}
	return "."
}

// dataPath joins a well-known data file name onto the data directory.
func dataPath(cmd *cobra.Command, name string) string {
	return filepath.Join(resolveDataDir(cmd), name)
}

const (
	bankFile      = "question_bank.json"
	historyFile   = "paper_history.json"
	templatesFile = "templates.json"
	requestsFile  = "requests.db"
)
