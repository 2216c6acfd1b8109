package intent_parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
)

var _ ports.IntentParser = (*LLMParser)(nil)

const intentPromptTemplate = `You are a Kubernetes expert. Parse this natural language request into structured modification intents.

REQUEST: %q

Output JSON with this exact structure:
{
    "intents": [
        {
            "action": "add|update|remove|set",
            "resource_type": "deployments|pods|services|configmaps|all",
            "target_field": "resources.limits.memory|resources.limits.cpu|image|labels|annotations|securityContext|replicas|...",
            "value": "the value to set",
            "namespace": "namespace name or null for all",
            "label_selector": "app=web or null for all",
            "conditions": {
                "only_if_missing": false,
                "container_name": null
            },
            "description": "Human readable description of what will be changed"
        }
    ]
}

Examples:
- "Add memory limit 512Mi to all deployments" ->
  {"intents": [{"action": "add", "resource_type": "deployments", "target_field": "resources.limits.memory", "value": "512Mi"}]}

- "Update images from docker.io to ecr.aws" ->
  {"intents": [{"action": "update", "resource_type": "deployments", "target_field": "image", "value": {"from": "docker.io", "to": "ecr.aws"}}]}

- "Add label team=platform to services" ->
  {"intents": [{"action": "add", "resource_type": "services", "target_field": "labels", "value": {"team": "platform"}}]}

Return ONLY valid JSON, no markdown.
`

// LLMParser translates natural language into intents through an
// OpenAI-compatible chat completions endpoint. The endpoint, model and API
// key are passed in explicitly; the parser reads no environment of its own.
type LLMParser struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

func NewLLMParser(config domain.ParserConfig, apiKey string) *LLMParser {
	return &LLMParser{
		endpoint: config.Endpoint,
		model:    config.Model,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *LLMParser) Parse(ctx context.Context, request string) ([]domain.Intent, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(intentPromptTemplate, request)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build model request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build model request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+p.apiKey)

	response, err := p.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read model response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model request failed with status %d: %s", response.StatusCode, payload)
	}

	var completion chatResponse
	if err := json.Unmarshal(payload, &completion); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	return decodeIntents(completion.Choices[0].Message.Content)
}

// decodeIntents parses the model's JSON answer. Both the multi-intent
// envelope and a bare single intent are accepted; required fields the model
// left out are backfilled with the unknown sentinel so validation drops the
// intent instead of the whole batch failing.
func decodeIntents(content string) ([]domain.Intent, error) {
	content = stripCodeFences(content)

	var envelope struct {
		Intents []domain.Intent `json:"intents"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err == nil && len(envelope.Intents) > 0 {
		return backfillUnknown(envelope.Intents), nil
	}

	var single domain.Intent
	if err := json.Unmarshal([]byte(content), &single); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	return backfillUnknown([]domain.Intent{single}), nil
}

// stripCodeFences removes a markdown code fence the model may wrap its
// answer in despite being told not to.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func backfillUnknown(intents []domain.Intent) []domain.Intent {
	for i := range intents {
		if intents[i].Action == "" {
			intents[i].Action = domain.UnknownField
		}
		if intents[i].ResourceType == "" {
			intents[i].ResourceType = domain.UnknownField
		}
		if intents[i].TargetField == "" {
			intents[i].TargetField = domain.UnknownField
		}
	}
	return intents
}
