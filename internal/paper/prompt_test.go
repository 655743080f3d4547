package paper

import (
	"strings"
	"testing"
)

func sampleRequirements() Requirements {
	return Requirements{
		Syllabus:    "Process scheduling, context switching, CPU scheduling algorithms",
		Subject:     "Operating Systems",
		Topic:       "Scheduling",
		NumMCQ:      5,
		Num3Mark:    5,
		Num5Mark:    3,
		Difficulty:  DifficultyMedium,
		WithAnswers: true,
	}
}

func TestBuildQuestionPrompt_ContainsFields(t *testing.T) {
	req := sampleRequirements()
	prompt := BuildQuestionPrompt(req)

	if !strings.Contains(prompt, "OPERATING SYSTEMS EXAMINATION") {
		t.Error("missing uppercased subject banner")
	}
	if !strings.Contains(prompt, "Maximum Marks: 35") {
		t.Error("missing total marks")
	}
	if !strings.Contains(prompt, "Subject: Operating Systems") {
		t.Error("missing subject")
	}
	if !strings.Contains(prompt, "Topic: Scheduling") {
		t.Error("missing topic")
	}
	if !strings.Contains(prompt, "Syllabus Coverage: Process scheduling") {
		t.Error("missing syllabus")
	}
	if !strings.Contains(prompt, "Difficulty Level: Medium") {
		t.Error("missing difficulty")
	}
	if !strings.Contains(prompt, "All questions are compulsory") {
		t.Error("missing compulsory-questions instruction")
	}
}

func TestBuildQuestionPrompt_SectionDistribution(t *testing.T) {
	prompt := BuildQuestionPrompt(sampleRequirements())

	if !strings.Contains(prompt, "Section A: Multiple Choice Questions (5 × 1 = 5 marks)") {
		t.Error("wrong Section A line")
	}
	if !strings.Contains(prompt, "Section B: Short Answer Questions (5 × 3 = 15 marks)") {
		t.Error("wrong Section B line")
	}
	if !strings.Contains(prompt, "Section C: Long Answer Questions (3 × 5 = 15 marks)") {
		t.Error("wrong Section C line")
	}
}

func TestBuildQuestionPrompt_Deterministic(t *testing.T) {
	req := sampleRequirements()
	if BuildQuestionPrompt(req) != BuildQuestionPrompt(req) {
		t.Error("expected byte-identical prompts for equal requirements")
	}
}

func TestBuildQuestionPrompt_DefaultsDifficulty(t *testing.T) {
	req := sampleRequirements()
	req.Difficulty = ""
	if !strings.Contains(BuildQuestionPrompt(req), "Difficulty Level: Medium") {
		t.Error("expected Medium as default difficulty")
	}
}

func TestBuildAnswerPrompt_EchoesQuestions(t *testing.T) {
	questions := "Q1. What is a context switch?"
	prompt := BuildAnswerPrompt(questions)

	if !strings.Contains(prompt, questions) {
		t.Error("answer prompt must echo the question text")
	}
	if !strings.Contains(prompt, "ANSWER KEY") {
		t.Error("missing answer key banner")
	}
	if !strings.Contains(prompt, "Write correct option letter") {
		t.Error("missing MCQ answer rules")
	}
	if !strings.Contains(prompt, "Main points in bullet form") {
		t.Error("missing descriptive answer rules")
	}
}

func TestBuildMCQAnswerPrompt(t *testing.T) {
	p := BuildMCQAnswerPrompt("Q1. Capital of France? a) Paris b) London c) Rome d) Berlin")
	if !strings.Contains(p, "correct option letter only") {
		t.Error("missing option-letter rule")
	}
	if !strings.Contains(p, "Capital of France?") {
		t.Error("missing question text")
	}
}

func TestBuildDescriptiveAnswerPrompt(t *testing.T) {
	p := BuildDescriptiveAnswerPrompt("Q2. Explain round-robin scheduling. [3 Marks]")
	if !strings.Contains(p, "bullet form") {
		t.Error("missing bullet-points rule")
	}
	if !strings.Contains(p, "round-robin") {
		t.Error("missing question text")
	}
}
