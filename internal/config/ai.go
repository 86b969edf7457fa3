package config

type AI string

const (
	AIGemini    AI = "gemini"
	AIAnthropic AI = "anthropic"
)

type Model string

const (
	ModelGeminiV15Flash Model = "gemini-1.5-flash"
	ModelGeminiV15Pro   Model = "gemini-1.5-pro"
	ModelGeminiV20Flash Model = "gemini-2.0-flash"

	ModelClaudeHaiku45  Model = "claude-haiku-4-5"
	ModelClaudeSonnet45 Model = "claude-sonnet-4-5"
)

func SupportedAIs() []AI {
	return []AI{
		AIGemini,
		AIAnthropic,
	}
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIGemini:
		return []Model{
			ModelGeminiV15Flash,
			ModelGeminiV15Pro,
			ModelGeminiV20Flash,
		}
	case AIAnthropic:
		return []Model{
			ModelClaudeHaiku45,
			ModelClaudeSonnet45,
		}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}
