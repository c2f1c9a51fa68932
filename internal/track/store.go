package track

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists interaction records. Used by the worker, not the
// request path.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, rec Record) error {
	if s.db == nil {
		return fmt.Errorf("no database configured")
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO interaction_logs
		 (id, endpoint, model, prompt_length, response_length, prompt_tokens, response_tokens, environment, cloud_provider, service)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.Endpoint, rec.Model,
		rec.PromptLength, rec.ResponseLength,
		rec.PromptTokens, rec.ResponseTokens,
		rec.Environment, rec.CloudProvider, rec.Service,
	)
	if err != nil {
		return fmt.Errorf("insert interaction log: %w", err)
	}
	return nil
}

// UsageSummary aggregates recorded interactions per endpoint/model.
type UsageSummary struct {
	Endpoint            string `json:"endpoint"`
	Model               string `json:"model"`
	TotalCalls          int    `json:"total_calls"`
	TotalPromptTokens   int    `json:"total_prompt_tokens"`
	TotalResponseTokens int    `json:"total_response_tokens"`
}

func (s *Store) GetUsageSummary(ctx context.Context) ([]UsageSummary, error) {
	if s.db == nil {
		return nil, fmt.Errorf("no database configured")
	}

	rows, err := s.db.Query(ctx,
		`SELECT endpoint, model, COUNT(*) as total_calls,
		        COALESCE(SUM(prompt_tokens), 0) as total_prompt_tokens,
		        COALESCE(SUM(response_tokens), 0) as total_response_tokens
		 FROM interaction_logs
		 GROUP BY endpoint, model
		 ORDER BY total_calls DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query usage summary: %w", err)
	}
	defer rows.Close()

	var summaries []UsageSummary
	for rows.Next() {
		var us UsageSummary
		if err := rows.Scan(&us.Endpoint, &us.Model, &us.TotalCalls, &us.TotalPromptTokens, &us.TotalResponseTokens); err != nil {
			return nil, fmt.Errorf("scan usage summary: %w", err)
		}
		summaries = append(summaries, us)
	}
	return summaries, nil
}
