package main

import (
	"strings"

	"github.com/muhammadolammi/resumeworker/internal/analysis"
)

func classifierPrompt(known []analysis.Category) string {
	labels := make([]string, len(known))
	for i, c := range known {
		labels[i] = string(c)
	}
	return `
You are a recruiting assistant that assigns a resume to a single job category.

The resume text you receive is lower-cased and stripped of punctuation.
Prefer one of these categories when it fits: ` + strings.Join(labels, ", ") + `.
If none of them fits, answer with the closest common job title.

Return your result as a JSON object in this format:

{
  "category": string
}

Base your answer only on the provided text.
Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.
	`
}

func ocrPrompt() string {
	return `Transcribe all text in this image exactly as written, line by line.
Do not summarize, translate, correct or describe the image. Return only the transcribed text.`
}
