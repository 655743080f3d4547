package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"papergen/internal/requestlog"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged model requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		reqLog, err := requestlog.Open(dataPath(cmd, requestsFile))
		if err != nil {
			return fmt.Errorf("open request log: %w", err)
		}
		defer reqLog.Close()

		entries, err := reqLog.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No model requests logged yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-12s  %-24s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 96))
		for _, e := range entries {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 24 {
				model = model[:24]
			}
			fmt.Printf("%-5d  %-19s  %-12s  %-24s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full prompt and response of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}

		reqLog, err := requestlog.Open(dataPath(cmd, requestsFile))
		if err != nil {
			return fmt.Errorf("open request log: %w", err)
		}
		defer reqLog.Close()

		entries, err := reqLog.Recent(cmd.Context(), 0)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.ID != id {
				continue
			}
			sep := strings.Repeat("─", 60)
			fmt.Printf("ID:       %d\n", e.ID)
			fmt.Printf("Time:     %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Model:    %s\n", e.Model)
			fmt.Printf("Purpose:  %s\n", e.Purpose)
			fmt.Printf("Tokens:   %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Printf("Latency:  %dms\n", e.LatencyMs)
			fmt.Printf("Success:  %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Printf("Error:    %s\n", e.ErrorMessage)
			}
			fmt.Println()
			fmt.Println(sep)
			fmt.Println("PROMPT")
			fmt.Println(sep)
			fmt.Println(e.Prompt)
			fmt.Println(sep)
			fmt.Println("RESPONSE")
			fmt.Println(sep)
			if e.Response != "" {
				fmt.Println(e.Response)
			} else {
				fmt.Println("(empty)")
			}
			return nil
		}
		return fmt.Errorf("request %d not found", id)
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show total token usage across all requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		reqLog, err := requestlog.Open(dataPath(cmd, requestsFile))
		if err != nil {
			return fmt.Errorf("open request log: %w", err)
		}
		defer reqLog.Close()

		in, out, err := reqLog.TokenTotals(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Input tokens:  %d\n", in)
		fmt.Printf("Output tokens: %d\n", out)
		fmt.Printf("Total tokens:  %d\n", in+out)
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
