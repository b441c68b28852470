package llm

import (
	"fmt"
	"strings"

	"github.com/vedran77/sortinghat/internal/domain"
)

// SystemPrompt constrains the model to a single {house, explanation} object.
var SystemPrompt = fmt.Sprintf(`You are the Sorting Hat of Hogwarts. You classify students into houses based on their answers.

Reply with a single JSON object and nothing else, in exactly this shape:
{"house": "<house name>", "explanation": "<one or two sentences>"}

Example:
{"house": "Ravenclaw", "explanation": "Your intelligence and curiosity make you a perfect fit for Ravenclaw."}

Rules:
- "house" must be exactly one of: %s.
- "explanation" must be a short explanation addressed to the student.
- Do not return markdown, code fences or any text outside the object.`,
	strings.Join(domain.Houses, ", "))

// UserPrompt lists the questionnaire answers for the model.
func UserPrompt(answers []string) string {
	return "Based on these answers, which Hogwarts house is the best fit? " + strings.Join(answers, ", ")
}
