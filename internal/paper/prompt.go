package paper

import (
	"fmt"
	"strings"
)

// Prompt construction. Both builders are pure: the same input always
// yields byte-identical output, which is what lets prompts double as
// cache keys.

// BuildQuestionPrompt renders the question-generation prompt for req.
func BuildQuestionPrompt(req Requirements) string {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = DifficultyMedium
	}

	var b strings.Builder

	b.WriteString("Generate a professional question paper with the following format:\n\n")
	fmt.Fprintf(&b, "%s EXAMINATION\n", strings.ToUpper(req.Subject))
	fmt.Fprintf(&b, "Time: 3 Hours                                                  Maximum Marks: %d\n\n", req.TotalMarks())

	b.WriteString("Instructions:\n")
	b.WriteString("1. All questions are compulsory\n")
	b.WriteString("2. Write answers clearly and neatly\n")
	b.WriteString("3. Start each section on a new page\n")
	b.WriteString("4. Numbers to the right indicate full marks\n\n")

	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Syllabus Coverage: %s\n", req.Syllabus)
	fmt.Fprintf(&b, "Difficulty Level: %s\n\n", difficulty)

	b.WriteString("Question Distribution:\n")
	fmt.Fprintf(&b, "Section A: Multiple Choice Questions (%d × 1 = %d marks)\n", req.NumMCQ, req.NumMCQ)
	fmt.Fprintf(&b, "Section B: Short Answer Questions (%d × 3 = %d marks)\n", req.Num3Mark, req.Num3Mark*3)
	fmt.Fprintf(&b, "Section C: Long Answer Questions (%d × 5 = %d marks)\n\n", req.Num5Mark, req.Num5Mark*5)

	b.WriteString(`Format each section as follows:
1. Section A (MCQs):
   - Clear question stem
   - Four distinct options (a, b, c, d)
   - No ambiguous or overlapping options
   - Proper spacing between questions

2. Section B (Short Answer):
   - Clear, focused questions
   - Specify marks as [3 Marks] at end
   - Include computational/analytical questions
   - Proper question numbering

3. Section C (Long Answer):
   - Complex analytical questions
   - Specify marks as [5 Marks] at end
   - Include case studies/scenarios
   - Clear sub-parts if needed

Generate questions that are:
- Clear and unambiguous
- Appropriate for the difficulty level
- Well-distributed across topics
- Properly formatted and numbered
`)

	return b.String()
}

// BuildAnswerPrompt renders the answer-key prompt, echoing the generated
// question text so the model answers exactly what was asked.
func BuildAnswerPrompt(questions string) string {
	var b strings.Builder

	b.WriteString("Generate a detailed answer key for this question paper:\n\n")
	b.WriteString(questions)
	b.WriteString("\n\nFormat the answers as follows:\n\n")
	b.WriteString("ANSWER KEY\n")
	b.WriteString("==========\n\n")

	b.WriteString(`Section A: Multiple Choice Questions
- For each MCQ:
  * Write correct option letter
  * Add brief explanation (1-2 lines)
  * Include key concept tested

Section B: Short Answer Questions
- For each question:
  * Main points in bullet form
  * Essential formulas/steps
  * Key concepts and definitions
  * Sample calculations if needed

Section C: Long Answer Questions
- For each question:
  * Detailed solution outline
  * Step-by-step approach
  * Important concepts/theorems
  * Diagrams/flowcharts if applicable

Make answers:
- Clear and concise
- Well-structured
- Easy to follow
- Focused on key points
`)

	return b.String()
}

// BuildMCQAnswerPrompt renders the single-question answer prompt for an
// MCQ: correct option letter plus a one-line justification.
func BuildMCQAnswerPrompt(question string) string {
	var b strings.Builder
	b.WriteString("For this MCQ question:\n")
	b.WriteString(question)
	b.WriteString("\n\nProvide:\n")
	b.WriteString("1. The correct option letter only\n")
	b.WriteString("2. A one-line explanation why it's correct\n")
	return b.String()
}

// BuildDescriptiveAnswerPrompt renders the single-question answer prompt
// for a descriptive question: bulleted key points, kept short.
func BuildDescriptiveAnswerPrompt(question string) string {
	var b strings.Builder
	b.WriteString("For this question:\n")
	b.WriteString(question)
	b.WriteString("\n\nProvide a concise answer with:\n")
	b.WriteString("- Main points in bullet form\n")
	b.WriteString("- Essential steps/formulas if needed\n")
	b.WriteString("- Keep it focused and clear\n")
	b.WriteString("- Include only key concepts\n")
	return b.String()
}
