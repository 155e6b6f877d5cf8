package prompts

import (
	"bytes"
	"text/template"
)

type ResearchPromptData struct {
	Query    string
	Findings string
}

type AnalysisPromptData struct {
	Findings string
}

type DecisionPromptData struct {
	Analysis string
}

type SummarizePromptData struct {
	Text string
}

type RestructurePromptData struct {
	Analysis       string
	DecisionOutput string
}

func GenerateResearchPrompt(data ResearchPromptData) (string, error) {
	return render("research", ResearchPrompt, data)
}

func GenerateAnalysisPrompt(data AnalysisPromptData) (string, error) {
	return render("analysis", AnalysisPrompt, data)
}

func GenerateDecisionPrompt(data DecisionPromptData) (string, error) {
	return render("decision", DecisionPrompt, data)
}

func GenerateSummarizePrompt(data SummarizePromptData) (string, error) {
	return render("summarize", SummarizePrompt, data)
}

func GenerateRestructurePrompt(data RestructurePromptData) (string, error) {
	return render("restructure", RestructurePrompt, data)
}

func render(name, baseTemplate string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
