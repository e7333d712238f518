package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"authentiq/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func fakeClient(fn roundTripFunc, token string) *Client {
	opts := Options{HTTPClient: &http.Client{Transport: fn}}
	if token != "" {
		opts.TokenSource = func() string { return token }
	}
	return New(opts)
}

func TestLoginSendsCredentialsAndDecodesResult(t *testing.T) {
	var captured map[string]string
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/auth/login" {
			t.Fatalf("path = %q, want /api/auth/login", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"access_token":"tok-1","user":{"id":"u1","email":"a@b.c","first_name":"Ada","last_name":"Lovelace"}}`), nil
	}, "")

	res, err := c.Login(context.Background(), " a@b.c ", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if captured["email"] != "a@b.c" || captured["password"] != "secret" {
		t.Fatalf("request body = %v", captured)
	}
	if res.AccessToken != "tok-1" {
		t.Fatalf("AccessToken = %q, want %q", res.AccessToken, "tok-1")
	}
	u := res.User.StoredUser(res.AccessToken)
	if u.FullName != "Ada Lovelace" {
		t.Fatalf("FullName = %q, want %q", u.FullName, "Ada Lovelace")
	}
	if u.Token != "tok-1" {
		t.Fatalf("Token = %q, want %q", u.Token, "tok-1")
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		t.Fatal("unexpected request")
		return nil, nil
	}, "")
	if _, err := c.Login(context.Background(), "", "pw"); err == nil {
		t.Fatal("expected error for empty email")
	}
	if _, err := c.Login(context.Background(), "a@b.c", ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestMeAttachesBearerToken(t *testing.T) {
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-9" {
			t.Fatalf("Authorization = %q, want %q", got, "Bearer tok-9")
		}
		return jsonResponse(http.StatusOK, `{"id":"u1","email":"a@b.c","first_name":"Ada"}`), nil
	}, "tok-9")

	profile, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if profile.ID != "u1" {
		t.Fatalf("ID = %q, want %q", profile.ID, "u1")
	}
}

func TestAPIErrorDecodesDetail(t *testing.T) {
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"detail":"Invalid credentials"}`), nil
	}, "")

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Detail != "Invalid credentials" {
		t.Fatalf("Detail = %q, want %q", apiErr.Detail, "Invalid credentials")
	}
	if !IsUnauthorized(err) {
		t.Fatal("IsUnauthorized = false, want true")
	}
}

func TestTransportFailureWrapsBackendUnavailable(t *testing.T) {
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}, "")

	_, err := c.CheckPlagiarism(context.Background(), "some text", true)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestCheckFileBuildsMultipartForm(t *testing.T) {
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart form: %v", err)
		}
		if got := r.FormValue("language"); got != "en" {
			t.Fatalf("language = %q, want %q", got, "en")
		}
		if got := r.FormValue("category"); got != "other" {
			t.Fatalf("category = %q, want %q", got, "other")
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if header.Filename != "essay.txt" {
			t.Fatalf("filename = %q, want %q", header.Filename, "essay.txt")
		}
		data, _ := io.ReadAll(f)
		if !bytes.Equal(data, []byte("lorem ipsum")) {
			t.Fatalf("file content = %q", data)
		}
		return jsonResponse(http.StatusOK, `{"plagiarism_score":12.5,"word_count":2}`), nil
	}, "tok-1")

	res, err := c.CheckFile(context.Background(), "essay.txt", []byte("lorem ipsum"), "", "")
	if err != nil {
		t.Fatalf("CheckFile returned error: %v", err)
	}
	if res.PlagiarismScore != 12.5 {
		t.Fatalf("PlagiarismScore = %v, want 12.5", res.PlagiarismScore)
	}
}

func TestHumanizeAppliesDefaults(t *testing.T) {
	var captured map[string]string
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/humanizer" {
			t.Fatalf("path = %q, want /api/humanizer", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"humanized_text":"better text","word_count":2}`), nil
	}, "tok-1")

	res, err := c.Humanize(context.Background(), "raw text", HumanizeOptions{})
	if err != nil {
		t.Fatalf("Humanize returned error: %v", err)
	}
	want := map[string]string{
		"text":             "raw text",
		"writing_style":    "natural",
		"complexity_level": "moderate",
		"target_language":  "English",
		"content_type":     "article",
	}
	for k, v := range want {
		if captured[k] != v {
			t.Fatalf("%s = %q, want %q", k, captured[k], v)
		}
	}
	if res.HumanizedText != "better text" {
		t.Fatalf("HumanizedText = %q", res.HumanizedText)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "English"},
		{"en", "English"},
		{"es", "Spanish"},
		{"pt-BR", "Brazilian Portuguese"},
		{"spanish", "Spanish"},
	}
	for _, tc := range cases {
		if got := NormalizeLanguage(tc.in); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDownloadHumanizedRejectsUnknownFormat(t *testing.T) {
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		t.Fatal("unexpected request")
		return nil, nil
	}, "")
	if _, _, err := c.DownloadHumanized(context.Background(), "text", "odt"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDownloadHumanizedReturnsBytes(t *testing.T) {
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/pdf"}},
			Body:       io.NopCloser(bytes.NewReader([]byte("%PDF-1.4"))),
		}, nil
	}, "tok-1")

	data, contentType, err := c.DownloadHumanized(context.Background(), "text", FormatPDF)
	if err != nil {
		t.Fatalf("DownloadHumanized returned error: %v", err)
	}
	if contentType != "application/pdf" {
		t.Fatalf("Content-Type = %q, want %q", contentType, "application/pdf")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("data = %q", data)
	}
}

func TestLogEventPostsActionAndDetails(t *testing.T) {
	var captured struct {
		Action  string            `json:"action"`
		Details map[string]string `json:"details"`
	}
	c := fakeClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/api/log" {
			t.Fatalf("path = %q, want /api/log", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{}`), nil
	}, "tok-1")

	err := c.LogEvent(context.Background(), "page_view", map[string]string{"page": "dashboard", "url": "/dashboard"})
	if err != nil {
		t.Fatalf("LogEvent returned error: %v", err)
	}
	if captured.Action != "page_view" {
		t.Fatalf("action = %q, want %q", captured.Action, "page_view")
	}
	if captured.Details["page"] != "dashboard" {
		t.Fatalf("details = %v", captured.Details)
	}
}
