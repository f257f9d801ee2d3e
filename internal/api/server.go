// Package api exposes the screening pipeline over HTTP. Handlers stay
// thin: multipart/JSON decoding in, screener calls out, the error taxonomy
// mapped onto status codes.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mkandie/resume-screener/internal/ingestion"
	"github.com/mkandie/resume-screener/internal/models"
	"github.com/mkandie/resume-screener/internal/screener"
)

const maxUploadBytes = 32 << 20 // 32 MB

// Server handles HTTP requests.
type Server struct {
	screener  *screener.Screener
	reportDir string
	logger    *zap.Logger
}

// NewServer creates an API server around the screening pipeline.
func NewServer(scr *screener.Screener, reportDir string, logger *zap.Logger) *Server {
	return &Server{
		screener:  scr,
		reportDir: reportDir,
		logger:    logger,
	}
}

// Router returns the HTTP handler with middleware applied.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/upload-resume", s.handleUploadResume)
	mux.HandleFunc("POST /api/generate-questions", s.handleGenerateQuestions)
	mux.HandleFunc("POST /api/submit-screening", s.handleSubmitScreening)
	mux.HandleFunc("POST /api/export-report", s.handleExportReport)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Resume Screener",
		"endpoints": map[string]string{
			"POST /api/upload-resume":      "Upload a resume PDF with its job description",
			"POST /api/generate-questions": "Generate 4 clarifying questions for a role",
			"POST /api/submit-screening":   "Score and rank all candidates for a role",
			"POST /api/export-report":      "Write an Excel report for a role",
			"GET /api/health":              "Health check",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}

	jd := r.FormValue("jd")
	if jd == "" {
		jd = r.FormValue("job_description")
	}
	role := r.FormValue("role")

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	resumeText, err := ingestion.ExtractResumeText(header.Filename, content)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.screener.UploadResume(r.Context(), role, jd, resumeText)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondSuccess(w, "Resume uploaded successfully", map[string]interface{}{
		"filename":      header.Filename,
		"role":          result.Role,
		"resume_length": result.ResumeLength,
		"uploaded_at":   result.UploadedAt,
		"jd_preview":    result.JDPreview,
	})
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.screener.GenerateQuestions(r.Context(), req.Role)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondSuccess(w, "Questions generated successfully", result)
}

func (s *Server) handleSubmitScreening(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role    string `json:"role"`
		Answer1 string `json:"answer1"`
		Answer2 string `json:"answer2"`
		Answer3 string `json:"answer3"`
		Answer4 string `json:"answer4"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	answers := models.HRAnswers{
		RoleContext:     req.Answer1,
		MustHaveSkills:  req.Answer2,
		TeamEnvironment: req.Answer3,
		DealBreakers:    req.Answer4,
	}

	result, err := s.screener.SubmitScreening(r.Context(), req.Role, answers)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondSuccess(w, "Screening completed successfully", result)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	path, err := s.screener.ExportReport(r.Context(), req.Role, s.reportDir)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondSuccess(w, "Report exported successfully", map[string]string{
		"role": req.Role,
		"path": path,
	})
}

// respondServiceError maps the screener's error taxonomy onto status
// codes: validation 400, not-found 404, everything else 500 with the
// failure message kept for diagnostics.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var vErr *screener.ValidationError
	var nfErr *screener.NotFoundError

	switch {
	case errors.As(err, &vErr):
		s.respondError(w, http.StatusBadRequest, vErr.Error())
	case errors.As(err, &nfErr):
		s.respondError(w, http.StatusNotFound, nfErr.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondSuccess(w http.ResponseWriter, message string, data interface{}) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("took", time.Since(start)),
		)
	})
}
