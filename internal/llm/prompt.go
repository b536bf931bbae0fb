package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = "You are a careful file organizer. You MUST respond with ONLY a valid JSON object. " +
	"Do not include any explanatory text, markdown formatting, or commentary before or after the JSON. " +
	"Start your response directly with { and end with }."

// Indicators are the filename hints the model is told to look for.
var Indicators = []string{
	"Essay", "Homework", "Lecture", "Exam", "Assignment", "Project", "Notes",
	"Study", "Quiz", "Test", "Report", "Paper",
}

// BuildPrompt renders the classification request for the given filenames.
func BuildPrompt(filenames []string) string {
	list, err := json.MarshalIndent(filenames, "", "  ")
	if err != nil {
		// []string always marshals; keep the prompt usable regardless.
		list = []byte(fmt.Sprintf("%q", filenames))
	}

	var sb strings.Builder
	sb.WriteString("Analyze these PDF filenames and identify which ones appear to be school-related assignments.\n\n")
	sb.WriteString("Filenames: ")
	sb.Write(list)
	sb.WriteString("\n\n")
	sb.WriteString("School-related indicators include: ")
	sb.WriteString(strings.Join(Indicators, ", "))
	sb.WriteString(", etc.\n\n")
	sb.WriteString(`CRITICAL REQUIREMENTS:
1. Return ONLY filenames from the list above. Do NOT generate, create, or invent new filenames.
2. Only return exact matches from the provided list.
3. Each filename should appear ONLY ONCE in your response - no duplicates.
4. Be conservative - if unsure, don't include it.

Respond with JSON in exactly this shape:
{"school_related_files": ["<filename>", "..."]}`)

	return sb.String()
}
