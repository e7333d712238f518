package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"authentiq/internal/domain"
)

// maxUploadBytes caps document uploads at 10 MiB, matching the backend.
const maxUploadBytes = 10 << 20

type checkRequest struct {
	Text           string `json:"text"`
	CheckAIContent bool   `json:"check_ai_content"`
	Title          string `json:"title,omitempty"`
}

// reserve takes one quota slot and reports whether the caller may proceed.
// The slot stays consumed even if the remote call later fails; releasing it
// would reopen the race the atomic reservation exists to close.
func (a *App) reserve(w http.ResponseWriter, c domain.Category) bool {
	err := a.Store.Reserve(c)
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrQuotaExceeded):
		a.error(w, http.StatusTooManyRequests, "daily "+string(c)+" limit reached")
	default:
		a.error(w, http.StatusBadRequest, err.Error())
	}
	return false
}

// CreateCheck runs a plagiarism check: reserve a quota slot, call the
// backend, record the result locally.
func (a *App) CreateCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		a.error(w, http.StatusBadRequest, "text is required")
		return
	}
	if !a.reserve(w, domain.CategoryPlagiarism) {
		return
	}
	result, err := a.Backend.CheckPlagiarism(r.Context(), req.Text, req.CheckAIContent)
	if err != nil {
		a.relayError(w, err)
		return
	}
	a.Store.AppendActivity(domain.Activity{
		Type:      domain.ActivityPlagiarism,
		Title:     activityTitle(req.Title, req.Text),
		Score:     result.PlagiarismScore,
		WordCount: result.WordCount,
	})
	a.json(w, http.StatusOK, result)
}

// CheckFile runs a document check under the bulk quota.
func (a *App) CheckFile(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := a.readUpload(w, r)
	if !ok {
		return
	}
	language := r.FormValue("language")
	category := r.FormValue("category")

	if !a.reserve(w, domain.CategoryBulk) {
		return
	}
	result, err := a.Backend.CheckFile(r.Context(), filename, content, language, category)
	if err != nil {
		a.relayError(w, err)
		return
	}
	a.Store.AppendActivity(domain.Activity{
		Type:      domain.ActivityBulk,
		Title:     filename,
		Score:     result.PlagiarismScore,
		WordCount: result.WordCount,
	})
	a.json(w, http.StatusOK, result)
}

// ExtractFile relays a document to the backend's text extractor. No quota
// applies; extraction alone does not run a check.
func (a *App) ExtractFile(w http.ResponseWriter, r *http.Request) {
	filename, content, ok := a.readUpload(w, r)
	if !ok {
		return
	}
	result, err := a.Backend.UploadFile(r.Context(), filename, content)
	if err != nil {
		a.relayError(w, err)
		return
	}
	a.json(w, http.StatusOK, result)
}

func (a *App) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "invalid multipart form")
		return "", nil, false
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "file field is required")
		return "", nil, false
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil || len(content) == 0 {
		a.error(w, http.StatusBadRequest, "empty or unreadable file")
		return "", nil, false
	}
	return header.Filename, content, true
}

// activityTitle picks a history label: the explicit title when given,
// otherwise the first words of the text.
func activityTitle(title, text string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	words := strings.Fields(text)
	if len(words) > 8 {
		words = words[:8]
	}
	return strings.Join(words, " ")
}
