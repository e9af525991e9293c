package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeworker/internal/analysis"
	"github.com/muhammadolammi/resumeworker/internal/database"
	"github.com/muhammadolammi/resumeworker/internal/extract"
	"github.com/muhammadolammi/resumeworker/internal/metrics"
)

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// ObjectStore fetches uploaded resume files by object key.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// SessionNotifier broadcasts session status changes to listeners.
type SessionNotifier interface {
	Publish(sessionID uuid.UUID, status, message string) error
}

type WorkerConfig struct {
	DB          *database.Queries
	Store       ObjectStore
	Notifier    SessionNotifier
	Extractor   *extract.Extractor
	Analyzer    *analysis.Analyzer
	Metrics     *metrics.WorkerMetrics
	RABBITMQUrl string
}

type AnalysesResult struct {
	ResumeID         uuid.UUID         `json:"resume_id"`
	Filename         string            `json:"filename"`
	ExtractionStatus extract.Status    `json:"extraction_status"`
	Summary          string            `json:"summary,omitempty"`
	Suggestions      []string          `json:"suggestions,omitempty"`
	Category         analysis.Category `json:"category,omitempty"`
	Score            int               `json:"score"`
	Language         string            `json:"language,omitempty"`
	// Error result entry
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

type AnalysesResults struct {
	SessionID uuid.UUID        `json:"session_id"`
	Results   []AnalysesResult `json:"results"`
}

type Session struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
}
