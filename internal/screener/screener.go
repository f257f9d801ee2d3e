// Package screener drives the 3-stage screening pipeline: resume intake,
// clarifying-question generation, and batch scoring with ranking.
package screener

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mkandie/resume-screener/internal/models"
	"github.com/mkandie/resume-screener/internal/parser"
	"github.com/mkandie/resume-screener/internal/ranking"
)

const (
	previewLength = 200
	topCandidates = 5
)

// RowStore is the positional persistence collaborator, one table per role.
type RowStore interface {
	Append(ctx context.Context, role string, row models.CandidateRow) error
	ReadAll(ctx context.Context, role string) ([]models.CandidateRow, error)
	Update(ctx context.Context, role string, rowNumber int, row models.CandidateRow) error
}

// Assistant is the AI collaborator for question generation and scoring.
// Both methods return free text; format is not guaranteed.
type Assistant interface {
	GenerateQuestions(ctx context.Context, jd string) (string, error)
	ScoreResume(ctx context.Context, jd, resume string, answers models.HRAnswers) (string, error)
}

// Notifier tells the human reviewer a screening run completed. Failures are
// non-fatal.
type Notifier interface {
	SendResults(ctx context.Context, role string, outcomes []models.ScoringOutcome) error
}

// Screener orchestrates the screening pipeline against its collaborators.
// Candidates are processed strictly sequentially: this bounds concurrent
// load on the AI collaborator and keeps row write-back order deterministic.
type Screener struct {
	store     RowStore
	assistant Assistant
	notifier  Notifier
	logger    *zap.Logger
}

// New creates a screener. The notifier may be nil when notification is not
// configured.
func New(store RowStore, assistant Assistant, notifier Notifier, logger *zap.Logger) *Screener {
	return &Screener{
		store:     store,
		assistant: assistant,
		notifier:  notifier,
		logger:    logger,
	}
}

// UploadResume appends one already-extracted resume text under the role.
// No uniqueness check: the same resume may be uploaded twice.
func (s *Screener) UploadResume(ctx context.Context, role, jd, resume string) (*models.UploadResult, error) {
	if strings.TrimSpace(jd) == "" {
		return nil, &ValidationError{Field: "jd", Reason: "job description (jd) is required"}
	}
	if strings.TrimSpace(role) == "" {
		return nil, &ValidationError{Field: "role"}
	}
	if strings.TrimSpace(resume) == "" {
		return nil, &ValidationError{Field: "resume", Reason: "resume text is required"}
	}

	uploadedAt := time.Now().UTC().Format(time.RFC3339)
	row := models.CandidateRow{
		JD:         jd,
		Resume:     resume,
		UploadedAt: uploadedAt,
		Role:       role,
	}

	if err := s.store.Append(ctx, role, row); err != nil {
		return nil, &StoreError{Op: "append", Err: err}
	}

	s.logger.Info("resume uploaded",
		zap.String("role", role),
		zap.Int("resume_length", len(resume)),
	)

	return &models.UploadResult{
		Role:         role,
		ResumeLength: len(resume),
		UploadedAt:   uploadedAt,
		JDPreview:    preview(jd),
	}, nil
}

// GenerateQuestions reads every row for the role, asks the assistant for
// clarifying questions once, and writes the raw question text back into
// every row. The job description is taken from the first row; all rows of a
// role share one JD by construction.
func (s *Screener) GenerateQuestions(ctx context.Context, role string) (*models.QuestionsResult, error) {
	if strings.TrimSpace(role) == "" {
		return nil, &ValidationError{Field: "role"}
	}

	rows, err := s.store.ReadAll(ctx, role)
	if err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Role: role}
	}

	jd := rows[0].JD
	if strings.TrimSpace(jd) == "" {
		return nil, &ValidationError{Field: "jd", Reason: "job description not found in sheet"}
	}

	s.logger.Info("generating clarifying questions", zap.String("role", role), zap.Int("resumes", len(rows)))

	questionsText, err := s.assistant.GenerateQuestions(ctx, jd)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	for _, row := range rows {
		row.ClarifyingQuestions = questionsText
		if err := s.store.Update(ctx, role, row.RowNumber, row); err != nil {
			return nil, &StoreError{Op: "update", Err: err}
		}
	}

	return &models.QuestionsResult{
		Role:         role,
		TotalResumes: len(rows),
		Questions:    parser.ExtractClarifyingQuestions(questionsText),
		JDPreview:    preview(jd),
	}, nil
}

// SubmitScreening scores every candidate of the role against the HR
// answers, ranks the batch, writes each enriched row back, and notifies the
// reviewer best-effort.
func (s *Screener) SubmitScreening(ctx context.Context, role string, answers models.HRAnswers) (*models.ScreeningResult, error) {
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}
	if strings.TrimSpace(role) == "" {
		return nil, &ValidationError{Field: "role"}
	}

	rows, err := s.store.ReadAll(ctx, role)
	if err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Role: role}
	}

	s.logger.Info("starting screening", zap.String("role", role), zap.Int("candidates", len(rows)))

	outcomes, err := s.scoreBatch(ctx, rows[0].JD, rows, answers)
	if err != nil {
		return nil, err
	}

	ranked := ranking.Rank(outcomes)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshal hr answers: %w", err)
	}

	byNumber := make(map[int]models.CandidateRow, len(rows))
	for _, row := range rows {
		byNumber[row.RowNumber] = row
	}

	for _, outcome := range ranked {
		row := byNumber[outcome.RowNumber]
		row.Rank = strconv.Itoa(outcome.Rank)
		row.HRAnswersJSON = string(answersJSON)
		row.Score = strconv.Itoa(outcome.Score)
		row.Strengths = marshalStrings(outcome.Strengths)
		row.Gaps = marshalStrings(outcome.Gaps)
		row.Justification = outcome.Justification
		row.Recommendation = string(outcome.Recommendation)
		row.InterviewPriority = outcome.InterviewPriority

		if err := s.store.Update(ctx, role, outcome.RowNumber, row); err != nil {
			return nil, &StoreError{Op: "update", Err: err}
		}
	}

	s.notify(ctx, role, ranked)

	top := make([]models.RankedCandidate, 0, topCandidates)
	for _, outcome := range ranked {
		if len(top) == topCandidates {
			break
		}
		top = append(top, models.RankedCandidate{
			Rank:           outcome.Rank,
			Score:          outcome.Score,
			Recommendation: outcome.Recommendation,
		})
	}

	return &models.ScreeningResult{
		Role:            role,
		TotalCandidates: len(ranked),
		Summary:         ranking.Summarize(ranked),
		Top:             top,
	}, nil
}

// scoreBatch scores candidates one at a time, in row order. The output has
// the same length and order as the input: a candidate whose AI call or
// parse fails yields an Error outcome and the loop continues, so one bad
// candidate never drops the others. Only malformed input fails the batch.
func (s *Screener) scoreBatch(ctx context.Context, jd string, rows []models.CandidateRow, answers models.HRAnswers) ([]models.ScoringOutcome, error) {
	if strings.TrimSpace(jd) == "" {
		return nil, &ValidationError{Field: "jd", Reason: "job description not found in sheet"}
	}

	outcomes := make([]models.ScoringOutcome, 0, len(rows))
	for i, row := range rows {
		s.logger.Info("scoring resume",
			zap.String("role", row.Role),
			zap.Int("current", i+1),
			zap.Int("total", len(rows)),
		)
		outcomes = append(outcomes, s.scoreOne(ctx, jd, row, answers))
	}

	return outcomes, nil
}

func (s *Screener) scoreOne(ctx context.Context, jd string, row models.CandidateRow, answers models.HRAnswers) models.ScoringOutcome {
	raw, err := s.assistant.ScoreResume(ctx, jd, row.Resume, answers)
	if err != nil {
		s.logger.Warn("scoring call failed", zap.Int("row", row.RowNumber), zap.Error(err))
		return errorOutcome(row.RowNumber, err)
	}

	obj, err := parser.ExtractScoringJSON(raw)
	if err != nil {
		s.logger.Warn("scoring response unparseable",
			zap.Int("row", row.RowNumber),
			zap.String("response_preview", preview(raw)),
			zap.Error(err),
		)
		return errorOutcome(row.RowNumber, err)
	}

	return models.ScoringOutcome{
		RowNumber:         row.RowNumber,
		Score:             coerceInt(obj["match_score"]),
		Strengths:         coerceStringSlice(obj["strengths"]),
		Gaps:              coerceStringSlice(obj["gaps"]),
		Justification:     coerceString(obj["justification"]),
		Recommendation:    models.Recommendation(coerceString(obj["recommendation"])),
		InterviewPriority: coerceString(obj["interview_priority"]),
	}
}

func (s *Screener) notify(ctx context.Context, role string, outcomes []models.ScoringOutcome) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendResults(ctx, role, outcomes); err != nil {
		s.logger.Warn("reviewer notification failed", zap.Error(&NotificationError{Err: err}))
	}
}

func errorOutcome(rowNumber int, err error) models.ScoringOutcome {
	return models.ScoringOutcome{
		RowNumber:      rowNumber,
		Score:          0,
		Recommendation: models.RecommendationError,
		Justification:  "Failed to score: " + err.Error(),
	}
}

func validateAnswers(answers models.HRAnswers) error {
	fields := []struct {
		name  string
		value string
	}{
		{"answer1 (role context)", answers.RoleContext},
		{"answer2 (must-have skills)", answers.MustHaveSkills},
		{"answer3 (team environment)", answers.TeamEnvironment},
		{"answer4 (deal-breakers)", answers.DealBreakers},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}

// preview shortens long text for responses and log fields.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLength {
		return s
	}
	return string(runes[:previewLength]) + "..."
}

// marshalStrings serializes a string list for a sheet cell; nil becomes an
// empty JSON array, never the empty string.
func marshalStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
