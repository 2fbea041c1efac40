package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flynnai/extraction/internal/models"
)

var ErrNotFound = errors.New("extraction not found")

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SaveResult persists one extraction with its events atomically.
func (s *Store) SaveResult(ctx context.Context, result *models.ExtractionResult, transcription string, caller *models.CallerInfo) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		var from, to *string
		if caller != nil {
			if caller.From != "" {
				from = &caller.From
			}
			if caller.To != "" {
				to = &caller.To
			}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO extractions (id, call_summary, call_topic, industry_detected, processing_time_ms, total_confidence, transcription, caller_from, caller_to, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, result.ID, result.CallSummary, result.CallTopic, result.IndustryDetected, result.ProcessingTimeMs, result.TotalConfidence, transcription, from, to, time.Now().UTC())
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(result.Events))
		for i, ev := range result.Events {
			rows = append(rows, []any{
				ev.ID, result.ID, i, string(ev.Type), ev.Title, ev.Description,
				ev.ProposedDate, ev.ProposedTime, ev.DurationMinutes, string(ev.Urgency),
				ev.CustomerName, ev.CustomerPhone, ev.CustomerEmail, ev.ServiceAddress,
				ev.ServiceType, ev.EstimatedPrice, ev.ConfidenceScore, ev.ExtractionNotes,
				ev.NeedsReview, ev.AutoConfirmable,
			})
		}
		_, err = tx.CopyFrom(ctx, pgx.Identifier{"extracted_events"}, []string{
			"id", "extraction_id", "position", "type", "title", "description",
			"proposed_date", "proposed_time", "duration_minutes", "urgency",
			"customer_name", "customer_phone", "customer_email", "service_address",
			"service_type", "estimated_price", "confidence_score", "extraction_notes",
			"needs_review", "auto_confirmable",
		}, pgx.CopyFromRows(rows))
		return err
	})
}

type StoredExtraction struct {
	models.ExtractionResult
	Transcription string             `json:"transcription,omitempty"`
	CallerInfo    *models.CallerInfo `json:"caller_info,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

func (s *Store) ListExtractions(ctx context.Context, limit int) ([]StoredExtraction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, call_summary, call_topic, industry_detected, processing_time_ms, total_confidence, created_at
		FROM extractions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredExtraction
	for rows.Next() {
		var e StoredExtraction
		if err := rows.Scan(&e.ID, &e.CallSummary, &e.CallTopic, &e.IndustryDetected, &e.ProcessingTimeMs, &e.TotalConfidence, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetExtraction(ctx context.Context, id string) (*StoredExtraction, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, call_summary, call_topic, industry_detected, processing_time_ms, total_confidence, transcription, caller_from, caller_to, created_at
		FROM extractions
		WHERE id = $1
	`, id)

	var (
		e        StoredExtraction
		from, to *string
	)
	if err := row.Scan(&e.ID, &e.CallSummary, &e.CallTopic, &e.IndustryDetected, &e.ProcessingTimeMs, &e.TotalConfidence, &e.Transcription, &from, &to, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if from != nil || to != nil {
		e.CallerInfo = &models.CallerInfo{}
		if from != nil {
			e.CallerInfo.From = *from
		}
		if to != nil {
			e.CallerInfo.To = *to
		}
	}

	rows, err := s.Pool.Query(ctx, `
		SELECT id, type, title, description, proposed_date, proposed_time, duration_minutes, urgency,
			customer_name, customer_phone, customer_email, service_address, service_type,
			estimated_price, confidence_score, extraction_notes, needs_review, auto_confirmable
		FROM extracted_events
		WHERE extraction_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ev models.ExtractedEvent
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.Title, &ev.Description, &ev.ProposedDate, &ev.ProposedTime,
			&ev.DurationMinutes, &ev.Urgency, &ev.CustomerName, &ev.CustomerPhone, &ev.CustomerEmail,
			&ev.ServiceAddress, &ev.ServiceType, &ev.EstimatedPrice, &ev.ConfidenceScore,
			&ev.ExtractionNotes, &ev.NeedsReview, &ev.AutoConfirmable); err != nil {
			return nil, err
		}
		e.Events = append(e.Events, ev)
	}
	return &e, rows.Err()
}
