// Package llm holds the text-generation collaborators used for narrative enrichment.
package llm

import "context"

// TextGenerator turns a prompt into free text. Calls may fail or time out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const systemPrompt = "You are a friendly and precise home-buying advisor for the German property market. " +
	"You explain savings plans and mortgage strategies in plain English, always quoting the exact euro amounts you are given. " +
	"When asked for JSON you answer with JSON only."
