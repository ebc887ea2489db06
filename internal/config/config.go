package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Excel struct {
		Path string `yaml:"path"`
	} `yaml:"excel"`
	Quiz struct {
		TTL    string `yaml:"ttl"`
		Source string `yaml:"source"` // directory of YAML quiz files
	} `yaml:"quiz"`
	Exam    Exam `yaml:"exam"`
	Janitor struct {
		Interval string `yaml:"interval"`
		Retain   string `yaml:"retain"`
	} `yaml:"janitor"`
}

// Exam holds the timing and marking scheme applied to every session.
type Exam struct {
	Title           string    `yaml:"title"`
	Duration        string    `yaml:"duration"`
	MarksPerCorrect *float64  `yaml:"marksPerCorrect"`
	PenaltyPerWrong *float64  `yaml:"penaltyPerWrong"`
	SubmitDelay     string    `yaml:"submitDelay"`
	Sections        []Section `yaml:"sections"`
}

type Section struct {
	Key       string `yaml:"key"`
	Title     string `yaml:"title"`
	Questions int    `yaml:"questions"`
}

const (
	DefaultTitle           = "Aptitude Quiz"
	DefaultDuration        = 60 * time.Minute
	DefaultMarksPerCorrect = 2.0
	DefaultPenaltyPerWrong = 0.5
	DefaultSubmitDelay     = time.Second
)

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// MarksPerCorrectOrDefault returns the configured marks for a correct answer, default 2.
func (e Exam) MarksPerCorrectOrDefault() float64 {
	if e.MarksPerCorrect == nil {
		return DefaultMarksPerCorrect
	}
	return *e.MarksPerCorrect
}

// PenaltyPerWrongOrDefault returns the configured penalty for a wrong answer, default 0.5.
// An explicit zero disables negative marking.
func (e Exam) PenaltyPerWrongOrDefault() float64 {
	if e.PenaltyPerWrong == nil {
		return DefaultPenaltyPerWrong
	}
	return *e.PenaltyPerWrong
}

func (e Exam) TitleOrDefault() string {
	if e.Title == "" {
		return DefaultTitle
	}
	return e.Title
}
