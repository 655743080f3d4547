package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"papergen/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the stored question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		topic, _ := cmd.Flags().GetString("topic")

		qbank := bank.Open(dataPath(cmd, bankFile))

		if subject != "" && topic != "" {
			return printBankTopic(qbank, subject, topic)
		}

		subjects := qbank.Subjects()
		if len(subjects) == 0 {
			fmt.Println("Question bank is empty.")
			return nil
		}
		sort.Strings(subjects)
		for _, s := range subjects {
			topics := qbank.Topics(s)
			sort.Strings(topics)
			for _, t := range topics {
				counts := make([]string, 0, 3)
				for _, cat := range bank.Categories() {
					counts = append(counts, fmt.Sprintf("%s: %d", cat, qbank.Count(s, t, cat)))
				}
				fmt.Printf("%s / %s — %s, %s, %s\n", s, t, counts[0], counts[1], counts[2])
			}
		}
		return nil
	},
}

func printBankTopic(qbank *bank.Bank, subject, topic string) error {
	empty := true
	for _, cat := range bank.Categories() {
		questions := qbank.Get(subject, topic, cat)
		if len(questions) == 0 {
			continue
		}
		empty = false
		fmt.Printf("%s (%d):\n", cat, len(questions))
		for i, q := range questions {
			fmt.Printf("  %d. %s\n", i+1, q)
		}
		fmt.Println()
	}
	if empty {
		fmt.Printf("No stored questions for %s / %s.\n", subject, topic)
	}
	return nil
}

func init() {
	bankCmd.Flags().String("subject", "", "Show stored questions for this subject")
	bankCmd.Flags().String("topic", "", "Show stored questions for this topic")
}
