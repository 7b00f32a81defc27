package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pathok/admin-console/internal/gemini"
	"github.com/pathok/admin-console/internal/providers"
)

// Service handles OCR extraction from book page scans
type Service struct{}

// NewService creates a new OCR service
func NewService() *Service {
	return &Service{}
}

// ExtractTextFromImage extracts text from a page scan using LLM vision
// capabilities. This is faster and more reliable than traditional OCR for
// the mixed Arabic/Bangla typography of the platform's source texts.
func (s *Service) ExtractTextFromImage(ctx context.Context, imagePath, provider, model string) (string, error) {
	// Set defaults if not provided
	if provider == "" {
		provider = os.Getenv("PATHOK_OCR_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
	}

	if model == "" {
		model = s.getDefaultModel(provider)
	}

	switch provider {
	case "gemini":
		return s.extractWithGemini(ctx, imagePath, model)
	case "openai":
		return s.extractWithOpenAI(ctx, imagePath, model)
	case "ollama":
		return s.extractWithOllama(ctx, imagePath, model)
	default:
		return "", fmt.Errorf("unsupported OCR provider: %s", provider)
	}
}

func (s *Service) getDefaultModel(provider string) string {
	switch provider {
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-1.5-flash"
		}
		return model
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	default:
		return ""
	}
}

func (s *Service) buildOCRPrompt() string {
	return `You are performing OCR (Optical Character Recognition) on a scanned page of a religious text.

Your task is to extract ALL visible text from the image exactly as it appears, preserving:
- Line breaks and formatting
- Diacritical marks (harakat) where printed
- Punctuation
- Footnote markers and footnote text
- Order of text elements

INSTRUCTIONS:
1. Read the image carefully from top to bottom
2. Transcribe every piece of visible text in its original script
3. Preserve the original line breaks
4. Do not translate, interpret, or add commentary
5. Do not skip any text, no matter how small or decorative
6. If text is partially obscured or unclear, transcribe what you can see and use [?] for illegible portions

OUTPUT FORMAT:
Provide ONLY the extracted text. Do not include phrases like "Here is the text:" or "The image contains:".
Start immediately with the transcribed text from the page.`
}

func (s *Service) readImage(imagePath string) ([]byte, string, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image for OCR: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(imagePath)), ".")
	switch format {
	case "jpg", "":
		format = "jpeg"
	}
	return imageData, format, nil
}

func (s *Service) extractWithGemini(ctx context.Context, imagePath, model string) (string, error) {
	imageData, format, err := s.readImage(imagePath)
	if err != nil {
		return "", err
	}

	provider := gemini.New()
	text, err := provider.ExtractText(ctx, providers.Config{
		Model:       model,
		Temperature: 0.0, // Zero temperature for exact OCR
		Prompt:      s.buildOCRPrompt(),
		ImageData:   imageData,
		ImageFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("gemini OCR failed: %w", err)
	}

	slog.Info("Extracted OCR text", "provider", "gemini", "model", model, "length", len(text))
	return text, nil
}

func (s *Service) extractWithOllama(ctx context.Context, imagePath, model string) (string, error) {
	ollamaHost := os.Getenv("OLLAMA_URL")
	if ollamaHost == "" {
		ollamaHost = os.Getenv("OLLAMA_HOST")
	}
	if ollamaHost == "" {
		ollamaHost = "http://localhost:11434"
	}

	imageData, _, err := s.readImage(imagePath)
	if err != nil {
		return "", err
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)

	// Prepare Ollama request for OCR
	prompt := s.buildOCRPrompt()

	requestBody := map[string]interface{}{
		"model":  model,
		"prompt": prompt,
		"images": []string{base64Image},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.0, // Zero temperature for exact OCR
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal OCR request: %w", err)
	}

	// Call Ollama API
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ollamaHost+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Ollama API for OCR: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama OCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse response
	var ollamaResp struct {
		Response string `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode Ollama OCR response: %w", err)
	}

	slog.Info("Extracted OCR text", "provider", "ollama", "length", len(ollamaResp.Response))
	return ollamaResp.Response, nil
}

func (s *Service) extractWithOpenAI(ctx context.Context, imagePath, model string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	imageData, format, err := s.readImage(imagePath)
	if err != nil {
		return "", err
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)

	// Prepare OpenAI request for OCR
	prompt := s.buildOCRPrompt()

	requestBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": prompt,
					},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": "data:image/" + format + ";base64," + base64Image,
						},
					},
				},
			},
		},
		"max_tokens":  2000,
		"temperature": 0.0, // Zero temperature for exact OCR
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal OCR request: %w", err)
	}

	// Call OpenAI API
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create OCR request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI API for OCR: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openAI OCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse response
	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return "", fmt.Errorf("failed to decode OpenAI OCR response: %w", err)
	}

	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("no OCR response from OpenAI")
	}

	ocrText := openaiResp.Choices[0].Message.Content
	slog.Info("Extracted OCR text", "provider", "openai", "model", model, "length", len(ocrText))
	return ocrText, nil
}
