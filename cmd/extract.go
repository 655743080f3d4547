package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"papergen/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract syllabus text from a PDF",
	Long: "Extract pulls the plain text out of a syllabus PDF, the same way the\n" +
		"generate command does with --syllabus-pdf, and prints it to stdout.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := extract.FromPDF(args[0])
		if err != nil {
			return fmt.Errorf("extract %s: %w", args[0], err)
		}
		fmt.Println(text)
		return nil
	},
}
