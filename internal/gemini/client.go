package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoImage is returned when the enhancement model responds without an
// inline image part. This is a hard failure and is not retried here.
var ErrNoImage = errors.New("model did not return an image")

const visionInstruction = "Describe faces, expressions, lighting, and visible text succinctly."

type Client struct {
	baseURL      string
	apiKey       string
	visionModel  string
	enhanceModel string
	httpClient   *http.Client
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewClient(baseURL, apiKey, visionModel, enhanceModel string) *Client {
	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		visionModel:  visionModel,
		enhanceModel: enhanceModel,
		httpClient: &http.Client{
			// Generative calls routinely take minutes; the platform ceiling
			// is the effective limit.
			Timeout: 9 * time.Minute,
		},
	}
}

// Describe runs vision analysis on the image and returns a short textual
// description of identity-bearing features. The result is used as a
// preservation constraint for the enhancement instruction, not as a caption.
func (c *Client) Describe(ctx context.Context, imageData []byte) (string, error) {
	resp, err := c.generateContent(ctx, c.visionModel, generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: visionInstruction},
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(imageData)}},
			},
		}},
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(firstText(resp))
	if text == "" {
		text = "No vision details provided."
	}
	return text, nil
}

// Enhance sends the image plus the composed instruction to the enhancement
// model and returns the bytes of the single image part in the response.
func (c *Client) Enhance(ctx context.Context, imageData []byte, instruction string) ([]byte, error) {
	resp, err := c.generateContent(ctx, c.enhanceModel, generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: instruction},
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(imageData)}},
			},
		}},
	})
	if err != nil {
		return nil, err
	}

	encoded := firstInlineData(resp)
	if encoded == "" {
		return nil, ErrNoImage
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image part: %w", err)
	}
	return data, nil
}

func (c *Client) generateContent(ctx context.Context, model string, reqBody generateRequest) (*generateResponse, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/models/" + model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("generate content failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func firstText(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

func firstInlineData(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData.Data
			}
		}
	}
	return ""
}
