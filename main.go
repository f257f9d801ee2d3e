package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mkandie/resume-screener/internal/api"
	"github.com/mkandie/resume-screener/internal/config"
	"github.com/mkandie/resume-screener/internal/llm"
	"github.com/mkandie/resume-screener/internal/logger"
	"github.com/mkandie/resume-screener/internal/mailer"
	"github.com/mkandie/resume-screener/internal/screener"
	"github.com/mkandie/resume-screener/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	lg, err := logger.New(cfg.JSONLog, cfg.Debug)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()

	jwtCfg := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.ServiceAccountKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		lg.Fatal("creating sheets service", zap.Error(err))
	}

	rows := store.New(svc, cfg.SpreadsheetID, lg)

	assistant, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		lg.Fatal("creating gemini client", zap.Error(err))
	}

	notifier, err := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.GmailUser,
		Password: cfg.GmailAppPassword,
		To:       cfg.HREmail,
		SheetURL: cfg.SheetURL(),
	}, lg)
	if err != nil {
		lg.Fatal("creating mailer", zap.Error(err))
	}

	scr := screener.New(rows, assistant, notifier, lg)
	srv := api.NewServer(scr, cfg.ReportDir, lg)

	lg.Info("starting resume screener",
		zap.String("port", cfg.Port),
		zap.String("model", cfg.GeminiModel),
	)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}
