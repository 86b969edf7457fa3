package ai

import (
	"bytes"
	"context"
	"testing"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"action":"list_issues"}`, `{"action":"list_issues"}`},
		{"json fence", "```json\n{\"action\":\"list_issues\"}\n```", `{"action":"list_issues"}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"upper tag", "```JSON {\"a\":1}```", `{"a":1}`},
		{"whitespace", "  \n hello \n", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestInterpretReply(t *testing.T) {
	t.Run("structured reply", func(t *testing.T) {
		got := InterpretReply(context.Background(), `{"action": "create_issue", "data": {"title": "Fix bug"}}`)

		assert.True(t, got.IsStructured())
		assert.Equal(t, models.ActionCreateIssue, got.Request.Action)
		assert.Equal(t, "Fix bug", got.Request.Data["title"])
	})

	t.Run("fenced reply", func(t *testing.T) {
		got := InterpretReply(context.Background(), "```json\n{\"action\": \"list_issues\", \"data\": {}}\n```")

		assert.True(t, got.IsStructured())
		assert.Equal(t, models.ActionListIssues, got.Request.Action)
	})

	t.Run("missing data becomes empty map", func(t *testing.T) {
		got := InterpretReply(context.Background(), `{"action": "explain_repo"}`)

		assert.True(t, got.IsStructured())
		assert.NotNil(t, got.Request.Data)
		assert.Empty(t, got.Request.Data)
	})

	t.Run("non object data becomes empty map", func(t *testing.T) {
		got := InterpretReply(context.Background(), `{"action": "list_issues", "data": "all"}`)

		assert.True(t, got.IsStructured())
		assert.Empty(t, got.Request.Data)
	})

	t.Run("array data is logged and dropped", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logger.WithLogger(context.Background(), logger.New(&buf, true, false, logger.FormatText))

		got := InterpretReply(ctx, `{"action": "list_issues", "data": [1, 2]}`)

		assert.True(t, got.IsStructured())
		assert.NotNil(t, got.Request.Data)
		assert.Empty(t, got.Request.Data)
		assert.Contains(t, buf.String(), "ignoring classifier data that is not an object")
		assert.Contains(t, buf.String(), "action=list_issues")
	})

	t.Run("unknown action is still structured", func(t *testing.T) {
		got := InterpretReply(context.Background(), `{"action": "delete_repo", "data": {}}`)

		assert.True(t, got.IsStructured())
		assert.Equal(t, models.ActionKind("delete_repo"), got.Request.Action)
	})

	t.Run("natural language", func(t *testing.T) {
		got := InterpretReply(context.Background(), "GitHub is a code hosting platform.")

		assert.False(t, got.IsStructured())
		assert.Equal(t, "GitHub is a code hosting platform.", got.Text)
	})

	t.Run("json without action", func(t *testing.T) {
		raw := `{"answer": "hi"}`
		got := InterpretReply(context.Background(), raw)

		assert.False(t, got.IsStructured())
		assert.Equal(t, raw, got.Text)
	})

	t.Run("non string action", func(t *testing.T) {
		got := InterpretReply(context.Background(), `{"action": 3}`)

		assert.False(t, got.IsStructured())
	})

	t.Run("json array", func(t *testing.T) {
		got := InterpretReply(context.Background(), `[{"action": "list_issues"}]`)

		assert.False(t, got.IsStructured())
	})
}
