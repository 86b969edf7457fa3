package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Swarup012/Github-Manager-Backend/internal/domain/models"
	"github.com/Swarup012/Github-Manager-Backend/internal/logger"
)

// StripCodeFence removes surrounding whitespace and backtick fences and a
// leading "json" language tag.
func StripCodeFence(text string) string {
	clean := strings.Trim(text, "` \t\r\n")
	if len(clean) >= 4 && strings.EqualFold(clean[:4], "json") {
		clean = clean[4:]
	}
	return strings.TrimSpace(clean)
}

// InterpretReply turns a raw model reply into a Classification. Only a JSON
// object with a string "action" key is structured; anything else is relayed
// as plain text.
func InterpretReply(ctx context.Context, raw string) models.Classification {
	clean := StripCodeFence(raw)

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return models.PlainText(strings.TrimSpace(raw))
	}

	rawAction, ok := payload["action"]
	if !ok {
		return models.PlainText(strings.TrimSpace(raw))
	}
	var action string
	if err := json.Unmarshal(rawAction, &action); err != nil {
		return models.PlainText(strings.TrimSpace(raw))
	}

	data := map[string]any{}
	if rawData, ok := payload["data"]; ok {
		// data that is not an object is treated as absent
		if err := json.Unmarshal(rawData, &data); err != nil {
			logger.Debug(ctx, "ignoring classifier data that is not an object",
				"action", action,
				"data", string(rawData),
				"error", err,
			)
			data = map[string]any{}
		}
		if data == nil {
			data = map[string]any{}
		}
	}

	return models.Structured(models.ActionRequest{
		Action: models.ActionKind(strings.TrimSpace(action)),
		Data:   data,
	})
}
