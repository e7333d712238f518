package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"authentiq/internal/api"
	"authentiq/internal/domain"
)

type humanizeRequest struct {
	Text            string `json:"text"`
	WritingStyle    string `json:"writing_style,omitempty"`
	ComplexityLevel string `json:"complexity_level,omitempty"`
	TargetLanguage  string `json:"target_language,omitempty"`
	ContentType     string `json:"content_type,omitempty"`
	Title           string `json:"title,omitempty"`
}

// Humanize rewrites a text through the backend under the humanizer quota.
func (a *App) Humanize(w http.ResponseWriter, r *http.Request) {
	var req humanizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		a.error(w, http.StatusBadRequest, "text is required")
		return
	}
	if !a.reserve(w, domain.CategoryHumanizer) {
		return
	}
	result, err := a.Backend.Humanize(r.Context(), req.Text, api.HumanizeOptions{
		WritingStyle:    req.WritingStyle,
		ComplexityLevel: req.ComplexityLevel,
		TargetLanguage:  req.TargetLanguage,
		ContentType:     req.ContentType,
	})
	if err != nil {
		a.relayError(w, err)
		return
	}
	a.Store.AppendActivity(domain.Activity{
		Type:      domain.ActivityHumanizer,
		Title:     activityTitle(req.Title, req.Text),
		Score:     result.ImprovementScore,
		WordCount: result.WordCount,
	})
	a.json(w, http.StatusOK, result)
}

type downloadRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// DownloadHumanized streams a rendered document back to the caller. No quota
// applies; the text was already paid for by the humanize call.
func (a *App) DownloadHumanized(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		a.error(w, http.StatusBadRequest, "text is required")
		return
	}
	switch req.Format {
	case "":
		req.Format = api.FormatTxt
	case api.FormatTxt, api.FormatWord, api.FormatPDF:
	default:
		a.error(w, http.StatusBadRequest, "format must be txt, word or pdf")
		return
	}
	data, contentType, err := a.Backend.DownloadHumanized(r.Context(), req.Text, req.Format)
	if err != nil {
		a.relayError(w, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="humanized.`+req.Format+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
