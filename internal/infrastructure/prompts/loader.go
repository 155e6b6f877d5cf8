package prompts

import (
	_ "embed"
)

//go:embed research.txt
var ResearchPrompt string

//go:embed analysis.txt
var AnalysisPrompt string

//go:embed decision.txt
var DecisionPrompt string

//go:embed summarize.txt
var SummarizePrompt string

//go:embed restructure.txt
var RestructurePrompt string
