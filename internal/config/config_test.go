package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"timed-quiz-service/internal/config"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
server:
  port: "9090"
  allowedOrigins: ["http://localhost:3000"]
sqlite:
  path: quizzes.db
exam:
  title: Weekly Mock
  duration: 30m
  penaltyPerWrong: 0
  sections:
    - key: general_awareness
      questions: 10
janitor:
  interval: 30s
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || len(cfg.Server.AllowedOrigins) != 1 || cfg.SQLite.Path != "quizzes.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Exam.TitleOrDefault() != "Weekly Mock" || cfg.Exam.PenaltyPerWrongOrDefault() != 0 || cfg.Exam.MarksPerCorrectOrDefault() != 2 {
		t.Fatalf("unexpected exam config: %+v", cfg.Exam)
	}
	if got := config.TTLDuration(cfg.Janitor.Interval, time.Minute); got != 30*time.Second {
		t.Fatalf("expected 30s interval, got %s", got)
	}
	if len(cfg.Exam.Sections) != 1 || cfg.Exam.Sections[0].Questions != 10 {
		t.Fatalf("unexpected sections: %+v", cfg.Exam.Sections)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := config.TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for empty, got %s", got)
	}
	if got := config.TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for invalid, got %s", got)
	}
	if config.DefaultTitle != (config.Exam{}).TitleOrDefault() {
		t.Fatalf("expected default title")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
