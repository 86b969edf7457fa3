package ai

import (
	"strings"
	"testing"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildIntentPrompt(t *testing.T) {
	t.Run("lists every action with its parameters", func(t *testing.T) {
		prompt := BuildIntentPrompt(models.ActionSpecs(), "en")

		for _, spec := range models.ActionSpecs() {
			assert.Contains(t, prompt, "- "+string(spec.Kind)+":")
		}
		assert.Contains(t, prompt, "create_issue: Create a new GitHub issue (requires `title`, optional `body`)")
		assert.Contains(t, prompt, "delete_issue: Close a specific issue by number (requires `issue_number`)")
		assert.Contains(t, prompt, "list_issues: List all open issues (no data needed)")
		assert.Contains(t, prompt, `"action": "<create_issue | update_readme |`)
	})

	t.Run("adds worked examples", func(t *testing.T) {
		prompt := BuildIntentPrompt(models.ActionSpecs(), "en")

		assert.Contains(t, prompt, `{"action": "delete_issue", "data": {"issue_number": 12}}`)
		assert.Contains(t, prompt, "What is GitHub?")
	})

	t.Run("asks for Spanish answers only in es", func(t *testing.T) {
		assert.NotContains(t, BuildIntentPrompt(models.ActionSpecs(), "en"), "Spanish")
		assert.True(t, strings.HasSuffix(BuildIntentPrompt(models.ActionSpecs(), "es"), spanishReplyRule))
	})
}
