package ai

import (
	"fmt"
	"strings"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
)

const intentPromptHeader = `You are an assistant that manages GitHub repositories on behalf of the user.
Decide whether the user's message maps to one of the supported GitHub actions.
If it does, reply with a valid JSON object in exactly this format and nothing else:

{
  "action": "<%s>",
  "data": { ... }
}

Supported actions:
`

const intentPromptRules = `
If the message is a general or conversational question that is not a GitHub action, do NOT reply with JSON.
Answer it directly in plain natural language instead.

Reply with either:
- a clean JSON object, without markdown fences such as ` + "```json" + `, when the message maps to an action
- a natural language answer when it is a general question (like "What is GitHub?") or cannot be mapped
Never reply {"action": "none", "data": {}} unless the user explicitly asked for an unsupported repository task.

Examples:
- Input: Create an issue titled 'Fix login bug' with body 'Fails on mobile login.'
  Response: {"action": "create_issue", "data": {"title": "Fix login bug", "body": "Fails on mobile login."}}
- Input: Update README with project description.
  Response: {"action": "update_readme", "data": {"content": "Project overview", "message": "Add project description"}}
- Input: Delete issue number 12
  Response: {"action": "delete_issue", "data": {"issue_number": 12}}
- Input: Is there an issue called "Fix Bug"?
  Response: {"action": "get_issue_by_title", "data": {"title": "Fix Bug"}}
- Input: What is this repo for?
  Response: {"action": "explain_repo", "data": {}}
- Input: Hi, how are you?
  Response: I'm doing great! How can I help with your GitHub tasks today?
`

const spanishReplyRule = "Write natural language answers in Spanish (rioplatense). JSON keys and action names stay in English.\n"

// BuildIntentPrompt renders the classifier's system instruction from the
// action specs.
func BuildIntentPrompt(specs []models.ActionSpec, lang string) string {
	kinds := make([]string, 0, len(specs))
	for _, spec := range specs {
		kinds = append(kinds, string(spec.Kind))
	}

	var b strings.Builder
	fmt.Fprintf(&b, intentPromptHeader, strings.Join(kinds, " | "))
	for _, spec := range specs {
		fmt.Fprintf(&b, "- %s: %s%s\n", spec.Kind, spec.Summary, describeParams(spec))
	}
	b.WriteString(intentPromptRules)
	if lang == "es" {
		b.WriteString("\n")
		b.WriteString(spanishReplyRule)
	}
	return b.String()
}

func describeParams(spec models.ActionSpec) string {
	parts := make([]string, 0, 2)
	if len(spec.Required) > 0 {
		parts = append(parts, "requires "+quoteAll(spec.Required))
	}
	if len(spec.Optional) > 0 {
		parts = append(parts, "optional "+quoteAll(spec.Optional))
	}
	if len(parts) == 0 {
		if spec.Kind == models.ActionNone {
			return ""
		}
		return " (no data needed)"
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}
