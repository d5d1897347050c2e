package ai

import (
	"context"
	"fmt"
	log "log/slog"
	"net/http"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"

	"jarvis/internal/config"
	"jarvis/internal/proxy"
)

// DefaultReply is the deterministic answer when no remote model is
// configured or every configured provider failed.
const DefaultReply = "I'm not sure how to help with that. Try asking me to search, open apps, or perform tasks."

const systemPrompt = "You are Jarvis, a concise voice assistant. Answer in one or two " +
	"spoken-friendly sentences, plain text, no markdown."

// provider is one remote completion backend. Providers are tried in
// order; the first success wins.
type provider interface {
	name() string
	complete(ctx context.Context, message string) (string, error)
}

// Conversation is the fallback handler for utterances no command rule
// matches. Provider failures are logged and skipped, never surfaced.
type Conversation struct {
	providers []provider
}

// NewConversation wires Gemini first, then OpenAI, matching the key
// precedence of the config. Either key may be absent.
func NewConversation(cfg config.Config) (*Conversation, error) {
	c := &Conversation{}

	if cfg.GeminiAPI != "" {
		g, err := newGemini(cfg.GeminiAPI)
		if err != nil {
			log.Warn("Gemini unavailable", "err", err)
		} else {
			c.providers = append(c.providers, g)
			log.Info("Gemini initialized")
		}
	}

	if cfg.OpenAIAPI != "" {
		httpClient, err := proxy.NewHTTPClient(cfg.ProxyAddr, 0)
		if err != nil {
			return nil, fmt.Errorf("ai http client: %w", err)
		}
		c.providers = append(c.providers, newOpenAI(cfg.OpenAIAPI, httpClient))
		log.Info("OpenAI initialized")
	}

	return c, nil
}

// Reply produces the conversational answer for message. It always
// returns usable text.
func (c *Conversation) Reply(ctx context.Context, message string) string {
	for _, p := range c.providers {
		resp, err := p.complete(ctx, message)
		if err != nil {
			log.Warn("Provider failed", "provider", p.name(), "err", err)
			continue
		}
		if resp != "" {
			return resp
		}
	}
	return DefaultReply
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func newGemini(apiKey string) (*geminiProvider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &geminiProvider{client: client, model: "gemini-2.0-flash"}, nil
}

func (g *geminiProvider) name() string { return "gemini" }

func (g *geminiProvider) complete(ctx context.Context, message string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}

type openaiProvider struct {
	client openai.Client
}

func newOpenAI(apiKey string, httpClient *http.Client) *openaiProvider {
	return &openaiProvider{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithHTTPClient(httpClient),
		),
	}
}

func (o *openaiProvider) name() string { return "openai" }

func (o *openaiProvider) complete(ctx context.Context, message string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(message),
		},
		Model: openai.ChatModelGPT4o,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
