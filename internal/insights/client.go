package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client wraps the OpenAI SDK for chat-style health insights.
type Client struct {
	apiKey string
	client *openai.Client
	model  openai.ChatModel
}

// ErrClientNotInitialised is returned when attempting to call the API without a configured client.
var ErrClientNotInitialised = errors.New("insights client not initialised")

const systemPrompt = `You are a helpful and empathetic health assistant.
%s

Rules:
1. Provide concise, encouraging, and actionable advice.
2. If values are abnormal (e.g., high BP/sugar), suggest consulting a real doctor immediately.
3. Keep responses under 200 words unless asked for details.
4. Format your response with markdown (bolding key terms).`

// New returns an insights client when apiKey is provided, otherwise a
// client that answers with a mock response.
func New(apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		apiKey: apiKey,
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

// Chat answers a health question with the assembled context embedded in the
// system prompt. Without an API key a clearly marked mock reply is returned
// so the surrounding flow stays usable in development.
func (c *Client) Chat(ctx context.Context, question, healthContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question cannot be empty")
	}
	if c.client == nil {
		return fmt.Sprintf("[MOCK AI] I see you asked: %q. No API key is configured, so I can't generate a real health insight.", question), nil
	}

	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(fmt.Sprintf(systemPrompt, healthContext)),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(question),
					},
				},
			},
		},
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(1024),
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion received")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
