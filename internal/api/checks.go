package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

// CheckPlagiarism submits a text for similarity and optional AI-content
// analysis.
func (c *Client) CheckPlagiarism(ctx context.Context, text string, checkAIContent bool) (*PlagiarismResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is required")
	}
	payload := map[string]any{
		"text":             text,
		"check_ai_content": checkAIContent,
	}
	var result PlagiarismResult
	if err := c.postJSON(ctx, "/api/check-plagiarism", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckFile submits a document for checking. Language defaults to "en" and
// category to "other", matching the upload form defaults.
func (c *Client) CheckFile(ctx context.Context, filename string, content []byte, language, category string) (*PlagiarismResult, error) {
	if filename == "" || len(content) == 0 {
		return nil, errors.New("a non-empty file is required")
	}
	if language == "" {
		language = "en"
	}
	if category == "" {
		category = "other"
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	_ = mw.WriteField("language", language)
	_ = mw.WriteField("category", category)
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/check-file-plagiarism", buf)
	if err != nil {
		return nil, fmt.Errorf("build file check request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result PlagiarismResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadFile sends a document to the backend's text extractor and returns
// the extracted content.
func (c *Client) UploadFile(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	if filename == "" || len(content) == 0 {
		return nil, errors.New("a non-empty file is required")
	}
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload-file", buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
