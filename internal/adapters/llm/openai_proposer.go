package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
)

// OpenAIProposer asks a chat-completion model for an assignment proposal.
// The proposal is untrusted output; callers validate and repair it.
type OpenAIProposer struct {
	apiKey string
	client *openai.Client
	model  string
}

// NewOpenAIProposer builds a proposer for the given credential and model.
// The credential is checked per Propose call, not here: a server with a
// missing key still starts and reports the failure on the request.
func NewOpenAIProposer(apiKey, model string) *OpenAIProposer {
	apiKey = strings.TrimSpace(apiKey)
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProposer{apiKey: apiKey, client: openai.NewClient(apiKey), model: model}
}

// Propose sends the prompt and parses the response into an assignment
// result. Transport failures and unparsable content both come back as a
// CollaboratorError so callers can substitute the deterministic fallback;
// a missing credential comes back as ErrMissingCredential and does not.
func (p *OpenAIProposer) Propose(
	ctx context.Context,
	examples []ports.RouteExample,
	req domain.AssignmentRequest,
) (domain.AssignmentResult, error) {
	if p.apiKey == "" {
		return domain.AssignmentResult{}, fmt.Errorf("openai proposer: %w", ports.ErrMissingCredential)
	}

	prompt := BuildPrompt(examples, req)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return domain.AssignmentResult{}, &ports.CollaboratorError{Op: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return domain.AssignmentResult{}, &ports.CollaboratorError{Op: "chat completion", Err: errors.New("no choices in response")}
	}

	return ParseProposal(resp.Choices[0].Message.Content)
}

type proposalPayload struct {
	BusRoutes map[string][]string `json:"bus_routes"`
}

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseProposal decodes the collaborator's answer. The response contract is
// a bare JSON object, but models occasionally wrap it in prose; the largest
// brace-delimited block is retried before giving up.
func ParseProposal(raw string) (domain.AssignmentResult, error) {
	var payload proposalPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return domain.AssignmentResult{BusRoutes: payload.BusRoutes}, nil
	}

	if block := jsonObject.FindString(raw); block != "" {
		if err := json.Unmarshal([]byte(block), &payload); err == nil {
			return domain.AssignmentResult{BusRoutes: payload.BusRoutes}, nil
		}
	}

	return domain.AssignmentResult{}, &ports.CollaboratorError{
		Op:  "parse response",
		Err: fmt.Errorf("no parsable bus_routes object in %d bytes of output", len(raw)),
	}
}
