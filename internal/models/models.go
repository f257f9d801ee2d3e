package models

// Recommendation is the closed set of hiring recommendations the scoring
// model may produce. RecommendationError marks candidates whose scoring
// failed and is never counted in summary buckets.
type Recommendation string

const (
	RecommendationStrongYes Recommendation = "Strong Yes"
	RecommendationYes       Recommendation = "Yes"
	RecommendationMaybe     Recommendation = "Maybe"
	RecommendationNo        Recommendation = "No"
	RecommendationError     Recommendation = "Error"
)

// CandidateRow is one resume/JD pairing stored in a role's sheet tab.
// Field order mirrors the 13 sheet columns; a row is always written as the
// full tuple, never as a partial update.
type CandidateRow struct {
	// RowNumber is the 1-based sheet position, assigned at read time.
	// Row 1 is the header, so data rows start at 2. It is positional,
	// not a stable key.
	RowNumber int

	JD                  string `json:"jd"`
	Resume              string `json:"resume"`
	UploadedAt          string `json:"uploaded_at"`
	Role                string `json:"role"`
	ClarifyingQuestions string `json:"jd_clarifications"` // raw AI question text
	Rank                string `json:"rank"`
	HRAnswersJSON       string `json:"jd_clarification"` // serialized HRAnswers
	Score               string `json:"score"`
	Strengths           string `json:"strengths"` // JSON array of strings
	Gaps                string `json:"gaps"`      // JSON array of strings
	Justification       string `json:"justification"`
	Recommendation      string `json:"recommendation"`
	InterviewPriority   string `json:"interview_priority"`
}

// HRAnswers holds the 4 fixed-category clarifications supplied by the
// reviewer after question generation. Stored verbatim as one JSON blob
// alongside each scored row.
type HRAnswers struct {
	RoleContext     string `json:"role_context"`
	MustHaveSkills  string `json:"must_have_skills"`
	TeamEnvironment string `json:"team_environment"`
	DealBreakers    string `json:"deal_breakers"`
}

// ClarifyingQuestion is one of exactly 4 AI-generated prompts used to
// disambiguate a job description before scoring.
type ClarifyingQuestion struct {
	Title    string `json:"title"`
	Question string `json:"question"`
}

// ScoringOutcome is the computed per-candidate result. Rank is assigned
// by the aggregator after the whole batch has been scored.
type ScoringOutcome struct {
	RowNumber         int            `json:"row_number"`
	Score             int            `json:"score"`
	Strengths         []string       `json:"strengths"`
	Gaps              []string       `json:"gaps"`
	Justification     string         `json:"justification"`
	Recommendation    Recommendation `json:"recommendation"`
	InterviewPriority string         `json:"interview_priority"`
	Rank              int            `json:"rank"`
}

// ScreeningSummary counts outcomes per recommendation. Error outcomes are
// intentionally not bucketed.
type ScreeningSummary struct {
	StrongYes int `json:"strong_yes"`
	Yes       int `json:"yes"`
	Maybe     int `json:"maybe"`
	No        int `json:"no"`
}

// UploadResult is returned after a resume has been appended to the sheet.
type UploadResult struct {
	Role         string `json:"role"`
	ResumeLength int    `json:"resume_length"`
	UploadedAt   string `json:"uploaded_at"`
	JDPreview    string `json:"jd_preview"`
}

// QuestionsResult is returned by the question-generation stage.
type QuestionsResult struct {
	Role         string               `json:"role"`
	TotalResumes int                  `json:"total_resumes"`
	Questions    []ClarifyingQuestion `json:"questions"`
	JDPreview    string               `json:"jd_preview"`
}

// RankedCandidate is the trimmed top-N view included in screening responses.
type RankedCandidate struct {
	Rank           int            `json:"rank"`
	Score          int            `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
}

// ScreeningResult is returned by the screening stage.
type ScreeningResult struct {
	Role            string            `json:"role"`
	TotalCandidates int               `json:"total_candidates"`
	Summary         ScreeningSummary  `json:"summary"`
	Top             []RankedCandidate `json:"top_5"`
}
