package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeworker/internal/database"
	"github.com/muhammadolammi/resumeworker/internal/extract"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const sessionsQueue = "sessions"

var errNoText = errors.New("no text extracted")

func errorResult(resume database.Resume, status extract.Status, msg string) AnalysesResult {
	return AnalysesResult{
		ResumeID:         resume.ID,
		Filename:         resume.OriginalFilename,
		ExtractionStatus: status,
		IsErrorResult:    true,
		Error:            msg,
	}
}

// processResume downloads, extracts and analyzes one resume. Every failure is
// reported inside the returned result.
func processResume(ctx context.Context, resume database.Resume, workerConfig *WorkerConfig) AnalysesResult {
	start := time.Now()
	format := extract.DetectFormat(resume.OriginalFilename)
	workerConfig.Metrics.StartResume()

	fileBytes, err := retry(3, func() ([]byte, error) {
		return workerConfig.Store.Download(ctx, resume.ObjectKey)
	})
	if err != nil {
		workerConfig.Metrics.FinishResume(string(format), "download_error", time.Since(start))
		log.Warn().Err(err).Str("object_key", resume.ObjectKey).Msg("failed to download resume")
		return errorResult(resume, "", fmt.Sprintf("file download error: %v", err))
	}

	res := workerConfig.Extractor.Extract(ctx, extract.Document{Filename: resume.OriginalFilename, Data: fileBytes})
	defer func() {
		workerConfig.Metrics.FinishResume(string(res.Format), string(res.Status), time.Since(start))
	}()
	if !res.OK() {
		log.Warn().Err(res.Err).Str("resume_id", resume.ID.String()).Str("status", string(res.Status)).Msg("text extraction failed")
		return errorResult(resume, res.Status, res.Message())
	}
	if strings.TrimSpace(res.Text) == "" {
		return errorResult(resume, res.Status, errNoText.Error())
	}

	outputs, err := workerConfig.Analyzer.Analyze(ctx, res.Text)
	if err != nil {
		return errorResult(resume, res.Status, fmt.Sprintf("analysis error: %v", err))
	}
	workerConfig.Metrics.ObserveCategory(string(outputs.Category))

	log.Debug().
		Str("resume_id", resume.ID.String()).
		Str("format", string(res.Format)).
		Int("pages", res.Pages).
		Str("category", string(outputs.Category)).
		Int("score", outputs.Score).
		Dur("took", time.Since(start)).
		Msg("resume analyzed")

	return AnalysesResult{
		ResumeID:         resume.ID,
		Filename:         resume.OriginalFilename,
		ExtractionStatus: res.Status,
		Summary:          outputs.Summary,
		Suggestions:      outputs.Suggestions,
		Category:         outputs.Category,
		Score:            outputs.Score,
		Language:         outputs.Language,
	}
}

// analyzeSession runs the pipeline for all resumes in a given session and
// stores the aggregated results.
func analyzeSession(ctx context.Context, currentSession Session, workerConfig *WorkerConfig) error {
	resumes, err := workerConfig.DB.GetResumesBySession(ctx, currentSession.ID)
	if err != nil {
		return fmt.Errorf("error getting resumes for session: %v, err: %w", currentSession.ID, err)
	}

	results := &AnalysesResults{
		SessionID: currentSession.ID,
		Results:   make([]AnalysesResult, 0, len(resumes)),
	}
	for _, resume := range resumes {
		results.Results = append(results.Results, processResume(ctx, resume, workerConfig))
	}

	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal analyses results: %w", err)
	}

	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.DB.CreateOrUpdateAnalysesResults(ctx, database.CreateOrUpdateAnalysesResultsParams{
			Results:   resultsJSON,
			SessionID: results.SessionID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save analyses results after retries: %w", err)
	}

	log.Info().Str("session_id", currentSession.ID.String()).Int("resumes", len(resumes)).Msg("session analyzed")
	return nil
}

// setSessionStatus records status in the database and announces it.
func setSessionStatus(ctx context.Context, currentSession Session, workerConfig *WorkerConfig, status, message string) {
	n, err := workerConfig.DB.UpdateSessionStatus(ctx, database.UpdateSessionStatusParams{
		Status: status,
		ID:     currentSession.ID,
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", currentSession.ID.String()).Str("status", status).Msg("failed to update session status")
	} else if n == 0 {
		log.Warn().Str("session_id", currentSession.ID.String()).Msg("session not found while updating status")
	}
	if err := workerConfig.Notifier.Publish(currentSession.ID, status, message); err != nil {
		log.Error().Err(err).Str("session_id", currentSession.ID.String()).Msg("failed to publish update")
	}
}

// handleSession processes one queue message and reports the outcome.
func handleSession(ctx context.Context, body []byte, workerConfig *WorkerConfig) error {
	currentSession := Session{}
	if err := json.Unmarshal(body, &currentSession); err != nil {
		var ref struct {
			ID uuid.UUID `json:"id"`
		}
		if json.Unmarshal(body, &ref) == nil && ref.ID != uuid.Nil {
			setSessionStatus(ctx, Session{ID: ref.ID}, workerConfig, statusFailed, "invalid session message")
			workerConfig.Metrics.FinishSession(statusFailed)
		}
		return fmt.Errorf("error unmarshalling message body: %w", err)
	}

	setSessionStatus(ctx, currentSession, workerConfig, statusProcessing, "analysis started")

	if err := analyzeSession(ctx, currentSession, workerConfig); err != nil {
		setSessionStatus(ctx, currentSession, workerConfig, statusFailed, "analysis failed")
		workerConfig.Metrics.FinishSession(statusFailed)
		return err
	}

	setSessionStatus(ctx, currentSession, workerConfig, statusCompleted, "analysis completed")
	workerConfig.Metrics.FinishSession(statusCompleted)
	return nil
}

func worker(ctx context.Context, id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) error {
	defer wg.Done()
	conn, err := amqp.Dial(workerConfig.RABBITMQUrl)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		sessionsQueue, // queue name
		true,          // durable (survives broker restarts)
		false,         // auto-delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := ch.Consume(
		sessionsQueue, // queue name
		"",            // consumer tag
		true,          // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq message: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			log.Info().Int("worker", id+1).Msg("processing session")
			if err := handleSession(ctx, msg.Body, workerConfig); err != nil {
				log.Error().Err(err).Int("worker", id+1).Msg("session analysis failed")
			}
		}
	}
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		log.Info().Int("worker", i+1).Msg("worker started")
		go func(id int) {
			if err := worker(ctx, id, workerConfig, &wg); err != nil {
				log.Error().Err(err).Int("worker", id+1).Msg("worker stopped")
			}
		}(i)
	}
	wg.Wait() // block until all workers finish
}
