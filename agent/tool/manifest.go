package tool

import (
	"encoding/json"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"
)

// OpenAITools renders the registry as an OpenAI function-calling manifest.
// This is the in-process bridge the chat runtime consumes; the HTTP listing
// is the other face of the same registry.
func (r *Registry) OpenAITools() []openai.ChatCompletionToolParam {
	summaries := r.List()
	out := make([]openai.ChatCompletionToolParam, 0, len(summaries))
	for _, s := range summaries {
		reg, ok := r.Resolve(s.Name)
		if !ok {
			continue
		}

		var params map[string]any
		if err := json.Unmarshal(reg.Contract.InputSchema, &params); err != nil {
			log.Warn().Err(err).Str("tool", s.Name).Msg("schema not renderable, using generic manifest entry")
			params = map[string]any{"type": "object"}
		}

		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        s.Name,
				Description: openai.String(s.Description),
				Parameters:  openai.FunctionParameters(params),
			},
		})
	}
	return out
}
