package api

import (
	"strings"

	"authentiq/internal/domain"
)

// Profile is the user object as the backend returns it. Note the absence of
// a token field: refreshed profiles never carry the bearer credential.
type Profile struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	FirstName    string               `json:"first_name"`
	LastName     string               `json:"last_name"`
	AvatarURL    string               `json:"avatar_url,omitempty"`
	Organization string               `json:"organization,omitempty"`
	Bio          string               `json:"bio,omitempty"`
	UserType     string               `json:"user_type,omitempty"`
	CreatedAt    string               `json:"created_at,omitempty"`
	Subscription *domain.Subscription `json:"subscription,omitempty"`
}

// StoredUser converts the backend profile into the locally cached shape,
// attaching the given bearer token.
func (p Profile) StoredUser(token string) *domain.StoredUser {
	fullName := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if fullName == "" {
		fullName = "User"
	}
	return &domain.StoredUser{
		ID:           p.ID,
		Email:        p.Email,
		FullName:     fullName,
		AvatarURL:    p.AvatarURL,
		Token:        token,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Organization: p.Organization,
		Bio:          p.Bio,
		UserType:     p.UserType,
		CreatedAt:    p.CreatedAt,
		Subscription: p.Subscription,
	}
}

// AuthResult is a successful login or registration.
type AuthResult struct {
	AccessToken string  `json:"access_token"`
	User        Profile `json:"user"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserType  string `json:"userType,omitempty"`
}

// MatchedSource is one potential source found for a checked text.
type MatchedSource struct {
	Type    string  `json:"type"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

// PlagiarismResult is the backend's verdict on a checked text.
type PlagiarismResult struct {
	PlagiarismScore         float64         `json:"plagiarism_score"`
	IsAIGenerated           bool            `json:"is_ai_generated"`
	AIConfidence            float64         `json:"ai_confidence"`
	SourcesFound            []MatchedSource `json:"sources_found"`
	WordCount               int             `json:"word_count"`
	AnalysisTime            float64         `json:"analysis_time"`
	UniqueContentPercentage float64         `json:"unique_content_percentage"`
}

// HumanizeOptions tune a humanization request. Zero values fall back to the
// backend defaults.
type HumanizeOptions struct {
	WritingStyle    string
	ComplexityLevel string
	TargetLanguage  string
	ContentType     string
}

// HumanizeResult is a completed humanization.
type HumanizeResult struct {
	OriginalText     string   `json:"original_text"`
	HumanizedText    string   `json:"humanized_text"`
	ImprovementScore float64  `json:"improvement_score"`
	ChangesMade      []string `json:"changes_made"`
	WordCount        int      `json:"word_count"`
	ProcessingTime   float64  `json:"processing_time"`
}

// UploadResult is the extracted text of an uploaded document.
type UploadResult struct {
	Filename       string `json:"filename"`
	FileType       string `json:"file_type"`
	TextContent    string `json:"text_content"`
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
}

// HistoryEntry is one record from the backend's check history.
type HistoryEntry struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Date      string  `json:"date"`
	Score     float64 `json:"score"`
	Status    string  `json:"status"`
	WordCount int     `json:"word_count,omitempty"`
}

// ContactRequest is a support form submission.
type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}
