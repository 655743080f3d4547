package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"papergen/internal/template"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage saved generation templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := template.NewStore(dataPath(cmd, templatesFile))
		templates := store.Load()
		for _, name := range store.Names() {
			tpl := templates[name]
			fmt.Printf("%-20s mcq=%d three=%d five=%d  %s, %d marks, answers=%t\n",
				name, tpl.NumMCQ, tpl.Num3Marks, tpl.Num5Marks,
				tpl.Difficulty, tpl.TotalMarks, tpl.IncludeAnswers)
		}
		return nil
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a template from the given flags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		mcq, _ := f.GetInt("mcq")
		three, _ := f.GetInt("three-mark")
		five, _ := f.GetInt("five-mark")
		difficulty, _ := f.GetString("difficulty")
		answers, _ := f.GetBool("answers")

		tpl := template.Template{
			QuestionTypes: template.QuestionTypes{
				MCQ:         mcq > 0,
				Descriptive: three > 0 || five > 0,
			},
			NumMCQ:         mcq,
			Num3Marks:      three,
			Num5Marks:      five,
			TotalMarks:     mcq + three*3 + five*5,
			Difficulty:     difficulty,
			IncludeAnswers: answers,
		}

		store := template.NewStore(dataPath(cmd, templatesFile))
		if err := store.Add(args[0], tpl); err != nil {
			return err
		}
		fmt.Printf("saved template %q (%d marks)\n", args[0], tpl.TotalMarks)
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := template.NewStore(dataPath(cmd, templatesFile))
		ok, err := store.Delete(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no template named %q", args[0])
		}
		fmt.Printf("deleted template %q\n", args[0])
		return nil
	},
}

func init() {
	f := templateSaveCmd.Flags()
	f.Int("mcq", 0, "Number of 1-mark multiple choice questions")
	f.Int("three-mark", 0, "Number of 3-mark short answer questions")
	f.Int("five-mark", 0, "Number of 5-mark long answer questions")
	f.String("difficulty", "Medium", "Difficulty level: Easy, Medium or Hard")
	f.Bool("answers", true, "Include an answer key")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateSaveCmd)
	templateCmd.AddCommand(templateDeleteCmd)
}
