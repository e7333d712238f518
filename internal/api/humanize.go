package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"authentiq/internal/domain"
)

// Download formats accepted by the backend's document generator.
const (
	FormatTxt  = "txt"
	FormatWord = "word"
	FormatPDF  = "pdf"
)

// Humanize rewrites a text in a more natural register.
func (c *Client) Humanize(ctx context.Context, text string, opts HumanizeOptions) (*HumanizeResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is required")
	}
	if opts.WritingStyle == "" {
		opts.WritingStyle = "natural"
	}
	if opts.ComplexityLevel == "" {
		opts.ComplexityLevel = "moderate"
	}
	if opts.ContentType == "" {
		opts.ContentType = "article"
	}
	payload := map[string]string{
		"text":             text,
		"writing_style":    opts.WritingStyle,
		"complexity_level": opts.ComplexityLevel,
		"target_language":  NormalizeLanguage(opts.TargetLanguage),
		"content_type":     opts.ContentType,
	}
	var result HumanizeResult
	if err := c.postJSON(ctx, "/api/humanizer", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DownloadHumanized renders a humanized text as a downloadable document and
// returns the raw bytes with the response content type.
func (c *Client) DownloadHumanized(ctx context.Context, text, format string) ([]byte, string, error) {
	switch format {
	case FormatTxt, FormatWord, FormatPDF:
	default:
		return nil, "", fmt.Errorf("unsupported download format %q", format)
	}
	if strings.TrimSpace(text) == "" {
		return nil, "", errors.New("text is required")
	}
	body, err := json.Marshal(map[string]string{"text": text, "format": format})
	if err != nil {
		return nil, "", fmt.Errorf("encode download payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/download-humanized-content", bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, "", decodeAPIError(res)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read document body: %w", err)
	}
	return data, res.Header.Get("Content-Type"), nil
}
