// Package gemini wraps the generative AI service behind the two request
// shapes the product needs: metadata extraction from a single summary
// document and the full go/no-go tender analysis. Both are opaque structured
// output calls; the model's reasoning is not reproducible and is not part of
// this package's contract.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"licitaciones-ai-be/internal/entity"
)

const defaultModel = "gemini-3-flash-preview"

// ErrMissingApiKey is returned when no credential is configured. Callers
// surface it as a configuration error instead of crashing.
var ErrMissingApiKey = errors.New("gemini: API key no configurada")

// supportedInlineMimes can be sent to the model as raw bytes; anything
// text-shaped is sent as a truncated text part instead.
var supportedInlineMimes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
}

const maxInlineTextBytes = 30000

// DocumentPart is one tender document handed to the model.
type DocumentPart struct {
	Name     string
	MimeType string
	Data     []byte
}

// AnalysisRequest carries the tender fields and up to three documents for a
// full analysis run.
type AnalysisRequest struct {
	Name            string
	ExpedientNumber string
	Budget          string
	Rules           string
	Documents       []DocumentPart
}

// Metadata is the record extracted from a summary document. Only the title is
// required; every other field may come back empty.
type Metadata struct {
	Name            string   `json:"name"`
	Budget          string   `json:"budget"`
	ScoringSystem   string   `json:"scoringSystem"`
	ExpedientNumber string   `json:"expedientNumber"`
	Deadline        string   `json:"deadline"`
	TenderPageUrl   string   `json:"tenderPageUrl"`
	AdminUrl        string   `json:"adminUrl"`
	TechUrl         string   `json:"techUrl"`
	AllLinks        []string `json:"allLinks"`
}

type Client struct {
	apiKey string
	model  string
	client *genai.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{apiKey: apiKey, model: model}
}

func (c *Client) ensureClient(ctx context.Context) (*genai.Client, error) {
	if c.apiKey == "" {
		return nil, ErrMissingApiKey
	}
	if c.client != nil {
		return c.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	c.client = client
	return client, nil
}

// AnalyzeTender runs the full analysis with the business rules folded into
// the system instruction. A malformed model response is a data error the
// caller must surface; it is never silently tolerated here.
func (c *Client) AnalyzeTender(ctx context.Context, req AnalysisRequest) (*entity.AnalysisResult, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf(
			"Expediente: %s\nNº: %s\nPresupuesto: %s",
			req.Name, req.ExpedientNumber, req.Budget,
		)),
	}
	for _, doc := range req.Documents {
		if p := documentToPart(doc); p != nil {
			parts = append(parts, p)
		}
	}

	res, err := client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(analysisSystemPrompt(req.Rules), genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    analysisSchema(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: analysis call failed: %w", err)
	}

	var analysis entity.AnalysisResult
	if err := json.Unmarshal([]byte(cleanJson(res.Text())), &analysis); err != nil {
		return nil, fmt.Errorf("gemini: unparseable analysis response: %w", err)
	}
	return &analysis, nil
}

// ExtractMetadata pulls the registration fields out of a summary document.
// The call site tolerates partial data, so a malformed response degrades to
// an empty record rather than an error.
func (c *Client) ExtractMetadata(ctx context.Context, doc DocumentPart) (*Metadata, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{}
	if p := documentToPart(doc); p != nil {
		parts = append(parts, p)
	}
	parts = append(parts, genai.NewPartFromText(
		"Analiza este documento y extrae: name, budget, scoringSystem, expedientNumber, "+
			"deadline (YYYY-MM-DD), tenderPageUrl, adminUrl, techUrl, allLinks. Idioma: Español. Responde JSON.",
	))

	res, err := client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   metadataSchema(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: metadata call failed: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(cleanJson(res.Text())), &meta); err != nil {
		return &Metadata{}, nil
	}
	return &meta, nil
}

func analysisSystemPrompt(rules string) string {
	return fmt.Sprintf(`Actúa como un Bid Manager Senior. Analiza los pliegos adjuntos basándote en estas REGLAS DE NEGOCIO: %s.
Tu objetivo es decidir Go/No-Go. Redacta todo en IDIOMA ESPAÑOL.
Extrae detalles económicos, alcance, recursos necesarios, requisitos de solvencia y el modelo de puntuación detallado.
Responde estrictamente en JSON.`, rules)
}

func documentToPart(doc DocumentPart) *genai.Part {
	if len(doc.Data) == 0 {
		return nil
	}
	if supportedInlineMimes[doc.MimeType] {
		return genai.NewPartFromBytes(doc.Data, doc.MimeType)
	}
	if strings.Contains(doc.MimeType, "text") || strings.Contains(doc.MimeType, "json") ||
		strings.HasSuffix(strings.ToLower(doc.Name), ".xml") {
		text := string(doc.Data)
		if len(text) > maxInlineTextBytes {
			text = text[:maxInlineTextBytes]
		}
		return genai.NewPartFromText(fmt.Sprintf("Archivo %s:\n%s", doc.Name, text))
	}
	return nil
}

// cleanJson strips a markdown code fence if the model wrapped its JSON in one.
func cleanJson(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	if s == "" {
		return "{}"
	}
	return strings.TrimSpace(s)
}
