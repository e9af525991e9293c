package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeworker/internal/analysis"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const classifierAgentName = "resume classifier"

// agentPredictor asks a Gemini agent for the job category. Its labels are not
// limited to the keyword table.
type agentPredictor struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
}

func newAgentPredictor(ctx context.Context, apiKey, modelName string, known []analysis.Category) (*agentPredictor, error) {
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	classifier, err := llmagent.New(llmagent.Config{
		Name:        classifierAgentName,
		Model:       model,
		Description: "Classify resume into a job category",
		Instruction: classifierPrompt(known),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        classifier.Name(),
		Agent:          classifier,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &agentPredictor{runner: r, sessions: sessions, appName: classifier.Name()}, nil
}

// Predict runs the agent in a throwaway session so no document sees the
// history of another.
func (p *agentPredictor) Predict(ctx context.Context, text string) (analysis.Category, error) {
	created, err := p.sessions.Create(ctx, &session.CreateRequest{
		AppName:   p.appName,
		UserID:    "resumeworker",
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer func() {
		_ = p.sessions.Delete(ctx, &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
	}()

	stream := p.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: text},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	return parseCategory(output)
}

func parseCategory(output string) (analysis.Category, error) {
	cleaned := CleanJson(output)
	if cleaned == "" {
		return "", analysis.ErrUnknownLabel
	}
	var answer struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(cleaned), &answer); err != nil {
		return "", fmt.Errorf("json unmarshal error: %w", err)
	}
	label := strings.TrimSpace(answer.Category)
	if label == "" {
		return "", analysis.ErrUnknownLabel
	}
	return analysis.Category(label), nil
}

// geminiRecognizer transcribes images with a multimodal Gemini call.
type geminiRecognizer struct {
	client *genai.Client
	model  string
}

func newGeminiRecognizer(ctx context.Context, apiKey, model string) (*geminiRecognizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &geminiRecognizer{client: client, model: model}, nil
}

func (g *geminiRecognizer) Recognize(ctx context.Context, image []byte, mimeType string) (string, error) {
	prompt := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: ocrPrompt()},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		},
	}
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{prompt}, nil)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}
