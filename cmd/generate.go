package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"papergen/internal/bank"
	"papergen/internal/extract"
	"papergen/internal/history"
	"papergen/internal/llm"
	"papergen/internal/paper"
	"papergen/internal/pdfout"
	"papergen/internal/ratelimit"
	"papergen/internal/requestlog"
	"papergen/internal/template"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question paper and answer key",
	Long: "Generate builds prompts from the subject, topic and syllabus, invokes the\n" +
		"configured model, writes both documents as PDFs, and records the run in\n" +
		"the paper history.",
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("subject", "", "Subject name (e.g. \"Operating Systems\")")
	f.String("topic", "", "Topic within the subject")
	f.String("syllabus", "", "Syllabus text to cover")
	f.String("syllabus-pdf", "", "Extract the syllabus from this PDF instead of --syllabus")
	f.Int("mcq", 0, "Number of 1-mark multiple choice questions")
	f.Int("three-mark", 0, "Number of 3-mark short answer questions")
	f.Int("five-mark", 0, "Number of 5-mark long answer questions")
	f.String("difficulty", "Medium", "Difficulty level: Easy, Medium or Hard")
	f.Bool("answers", true, "Also generate an answer key PDF")
	f.String("template", "", "Apply a saved template for counts and difficulty")
	f.String("out-dir", ".", "Directory to write the PDFs into")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	req, err := requirementsFromFlags(cmd)
	if err != nil {
		return err
	}
	// Validation failures block the run before any external call.
	if err := req.Validate(); err != nil {
		return err
	}

	var sink llm.RequestSink
	reqLog, err := requestlog.Open(dataPath(cmd, requestsFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: request log unavailable:", err)
	} else {
		defer reqLog.Close()
		sink = reqLog
	}

	provider, err := llm.NewProviderFromEnv(ctx, sink)
	if err != nil {
		return fmt.Errorf("model unavailable: %w", err)
	}

	qbank := bank.Open(dataPath(cmd, bankFile))
	limiter := ratelimit.New(0)
	gen := paper.New(provider, limiter, qbank, paper.DefaultConfig())

	fmt.Printf("Generating %d-mark paper for %s / %s...\n", req.TotalMarks(), req.Subject, req.Topic)

	res, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	now := time.Now()

	qPDF, err := pdfout.Convert("Question Paper\n" + res.Questions)
	if err != nil {
		return fmt.Errorf("render question paper: %w", err)
	}
	qPath := filepath.Join(outDir, pdfout.QuestionPaperFilename(now))
	if err := os.WriteFile(qPath, qPDF, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", qPath, err)
	}
	fmt.Println("wrote", qPath)

	if req.WithAnswers {
		aPDF, err := pdfout.Convert("Answer Key\n" + res.Answers)
		if err != nil {
			return fmt.Errorf("render answer key: %w", err)
		}
		aPath := filepath.Join(outDir, pdfout.AnswerKeyFilename(now))
		if err := os.WriteFile(aPath, aPDF, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", aPath, err)
		}
		fmt.Println("wrote", aPath)
	}

	answers := ""
	if req.WithAnswers {
		answers = res.Answers
	}
	hist := history.Open(dataPath(cmd, historyFile))
	id, err := hist.Append(res.Questions, answers, history.Metadata{
		Subject:    req.Subject,
		Topic:      req.Topic,
		Difficulty: string(req.Difficulty),
		TotalMarks: req.TotalMarks(),
		NumMCQ:     req.NumMCQ,
		Num3Mark:   req.Num3Mark,
		Num5Mark:   req.Num5Mark,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: saving to history failed:", err)
	} else {
		fmt.Printf("saved to history as paper #%d\n", id)
	}

	return nil
}

// requirementsFromFlags assembles Requirements from the command line,
// applying a saved template first when one is named.
func requirementsFromFlags(cmd *cobra.Command) (paper.Requirements, error) {
	f := cmd.Flags()

	var req paper.Requirements
	req.Subject, _ = f.GetString("subject")
	req.Topic, _ = f.GetString("topic")
	req.NumMCQ, _ = f.GetInt("mcq")
	req.Num3Mark, _ = f.GetInt("three-mark")
	req.Num5Mark, _ = f.GetInt("five-mark")
	difficulty, _ := f.GetString("difficulty")
	req.Difficulty = paper.Difficulty(difficulty)
	req.WithAnswers, _ = f.GetBool("answers")

	if name, _ := f.GetString("template"); name != "" {
		templates := template.NewStore(dataPath(cmd, templatesFile)).Load()
		tpl, ok := templates[name]
		if !ok {
			return req, fmt.Errorf("no template named %q", name)
		}
		if !f.Changed("mcq") {
			req.NumMCQ = tpl.NumMCQ
		}
		if !f.Changed("three-mark") {
			req.Num3Mark = tpl.Num3Marks
		}
		if !f.Changed("five-mark") {
			req.Num5Mark = tpl.Num5Marks
		}
		if !f.Changed("difficulty") {
			req.Difficulty = paper.Difficulty(tpl.Difficulty)
		}
		if !f.Changed("answers") {
			req.WithAnswers = tpl.IncludeAnswers
		}
	}

	syllabusPDF, _ := f.GetString("syllabus-pdf")
	if syllabusPDF != "" {
		text, err := extract.FromPDF(syllabusPDF)
		if err != nil {
			return req, fmt.Errorf("extract syllabus: %w", err)
		}
		req.Syllabus = text
	} else {
		req.Syllabus, _ = f.GetString("syllabus")
	}

	return req, nil
}
