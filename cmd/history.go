package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"papergen/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previously generated papers",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past generations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		hist := history.Open(dataPath(cmd, historyFile))

		records := hist.List(limit)
		if len(records) == 0 {
			fmt.Println("No papers in history.")
			return nil
		}
		for _, rec := range records {
			printRecordLine(rec)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the full text of one paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		hist := history.Open(dataPath(cmd, historyFile))
		rec, ok := hist.Get(id)
		if !ok {
			return fmt.Errorf("no paper with id %d", id)
		}

		fmt.Printf("Paper #%d — %s / %s (%s, %d marks) at %s\n\n",
			rec.ID, rec.Metadata.Subject, rec.Metadata.Topic,
			rec.Metadata.Difficulty, rec.Metadata.TotalMarks, rec.Timestamp)
		fmt.Println(rec.Questions)
		if rec.Answers != "" {
			fmt.Println()
			fmt.Println(rec.Answers)
		}
		return nil
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search papers by subject or topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hist := history.Open(dataPath(cmd, historyFile))
		matches := hist.Search(args[0])
		if len(matches) == 0 {
			fmt.Println("No matching papers.")
			return nil
		}
		for _, rec := range matches {
			printRecordLine(rec)
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one paper from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		hist := history.Open(dataPath(cmd, historyFile))
		if !hist.Delete(id) {
			return fmt.Errorf("no paper with id %d", id)
		}
		fmt.Printf("deleted paper #%d\n", id)
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics across all generated papers",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := history.Open(dataPath(cmd, historyFile)).Statistics()

		fmt.Printf("Total papers:  %d\n", stats.TotalPapers)
		fmt.Printf("Average marks: %.1f\n", stats.AverageMarks)

		fmt.Println("\nBy subject:")
		for _, k := range sortedKeys(stats.BySubject) {
			fmt.Printf("  %-20s %d\n", k, stats.BySubject[k])
		}
		fmt.Println("\nBy difficulty:")
		for _, k := range sortedKeys(stats.ByDifficulty) {
			fmt.Printf("  %-20s %d\n", k, stats.ByDifficulty[k])
		}
		return nil
	},
}

func printRecordLine(rec history.Record) {
	answers := "questions only"
	if rec.Answers != "" {
		answers = "with answers"
	}
	fmt.Printf("#%-4d %s  %s / %s  %s, %d marks (%s)\n",
		rec.ID, rec.Timestamp, rec.Metadata.Subject, rec.Metadata.Topic,
		rec.Metadata.Difficulty, rec.Metadata.TotalMarks, answers)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "Show at most this many papers (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyStatsCmd)
}
