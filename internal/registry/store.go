package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careerkit/companion/internal/prompt"
)

// Store is the Postgres-backed prompt registry. Versions are
// monotonically increasing per prompt name and are never overwritten;
// aliases are bound to versions by an explicit Promote.
type Store struct {
	db       *pgxpool.Pool
	platform string
}

func NewStore(db *pgxpool.Pool, platform string) *Store {
	return &Store{db: db, platform: platform}
}

// Load returns the version bound to alias for name. Read-only.
func (s *Store) Load(ctx context.Context, name, alias string) (*prompt.Template, error) {
	if s.db == nil {
		return nil, fmt.Errorf("no database configured: %w", prompt.ErrUnavailable)
	}

	var (
		version  int
		body     string
		tagsJSON []byte
	)
	err := s.db.QueryRow(ctx,
		`SELECT pv.version, pv.body, pv.tags
		 FROM prompts p
		 JOIN prompt_aliases pa ON pa.prompt_id = p.id AND pa.alias = $2
		 JOIN prompt_versions pv ON pv.prompt_id = p.id AND pv.version = pa.version
		 WHERE p.name = $1`,
		name, alias,
	).Scan(&version, &body, &tagsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s@%s: %w", name, alias, prompt.ErrNotFound)
		}
		return nil, fmt.Errorf("load %s@%s: %w", name, alias, prompt.ErrUnavailable)
	}

	tags := map[string]string{}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &tags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", name, err)
		}
	}

	return &prompt.Template{
		Name:    name,
		Version: version,
		Alias:   alias,
		Body:    body,
		Tags:    tags,
	}, nil
}

// Register creates the next version for name with the fixed metadata
// tag set. It never touches alias bindings; connectivity failures
// surface as ErrUnavailable so callers know the write did not happen.
func (s *Store) Register(ctx context.Context, name, body, modelTag string) (*prompt.Template, error) {
	if s.db == nil {
		return nil, fmt.Errorf("no database configured: %w", prompt.ErrUnavailable)
	}

	tags := map[string]string{
		"author":   "career-companion",
		"task":     "content-generation",
		"language": "en",
		"llm":      modelTag,
		"platform": s.platform,
	}
	tagsJSON, _ := json.Marshal(tags)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", prompt.ErrUnavailable)
	}
	defer tx.Rollback(ctx)

	var promptID string
	err = tx.QueryRow(ctx,
		`INSERT INTO prompts (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name,
	).Scan(&promptID)
	if err != nil {
		return nil, fmt.Errorf("upsert prompt %s: %w", name, prompt.ErrUnavailable)
	}

	// Row lock serializes concurrent version allocation for one name.
	if _, err := tx.Exec(ctx, "SELECT 1 FROM prompts WHERE id = $1 FOR UPDATE", promptID); err != nil {
		return nil, fmt.Errorf("lock prompt %s: %w", name, prompt.ErrUnavailable)
	}

	var version int
	err = tx.QueryRow(ctx,
		`INSERT INTO prompt_versions (prompt_id, version, body, tags)
		 SELECT $1, COALESCE(MAX(version), 0) + 1, $2, $3
		 FROM prompt_versions WHERE prompt_id = $1
		 RETURNING version`,
		promptID, body, tagsJSON,
	).Scan(&version)
	if err != nil {
		return nil, fmt.Errorf("insert version for %s: %w", name, prompt.ErrUnavailable)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit register %s: %w", name, prompt.ErrUnavailable)
	}

	return &prompt.Template{
		Name:    name,
		Version: version,
		Body:    body,
		Tags:    tags,
	}, nil
}

// Promote rebinds alias to the given existing version of name.
func (s *Store) Promote(ctx context.Context, name string, version int, alias string) error {
	if s.db == nil {
		return fmt.Errorf("no database configured: %w", prompt.ErrUnavailable)
	}

	tag, err := s.db.Exec(ctx,
		`INSERT INTO prompt_aliases (prompt_id, alias, version)
		 SELECT p.id, $3, pv.version
		 FROM prompts p
		 JOIN prompt_versions pv ON pv.prompt_id = p.id AND pv.version = $2
		 WHERE p.name = $1
		 ON CONFLICT (prompt_id, alias) DO UPDATE
		 SET version = EXCLUDED.version, updated_at = now()`,
		name, version, alias,
	)
	if err != nil {
		return fmt.Errorf("promote %s v%d: %w", name, version, prompt.ErrUnavailable)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s v%d: %w", name, version, prompt.ErrNotFound)
	}
	return nil
}

// Info summarizes one registered prompt for the listing endpoint.
type Info struct {
	Name          string         `json:"name"`
	LatestVersion int            `json:"latest_version"`
	Aliases       map[string]int `json:"aliases"`
	CreatedAt     time.Time      `json:"created_at"`
}

// List returns all registered prompts with their alias bindings.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	if s.db == nil {
		return nil, fmt.Errorf("no database configured: %w", prompt.ErrUnavailable)
	}

	rows, err := s.db.Query(ctx,
		`SELECT p.name, COALESCE(MAX(pv.version), 0), p.created_at
		 FROM prompts p
		 LEFT JOIN prompt_versions pv ON pv.prompt_id = p.id
		 GROUP BY p.id, p.name, p.created_at
		 ORDER BY p.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", prompt.ErrUnavailable)
	}
	defer rows.Close()

	byName := map[string]*Info{}
	var infos []*Info
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.Name, &info.LatestVersion, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		info.Aliases = map[string]int{}
		byName[info.Name] = &info
		infos = append(infos, &info)
	}

	aliasRows, err := s.db.Query(ctx,
		`SELECT p.name, pa.alias, pa.version
		 FROM prompt_aliases pa JOIN prompts p ON p.id = pa.prompt_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", prompt.ErrUnavailable)
	}
	defer aliasRows.Close()

	for aliasRows.Next() {
		var name, alias string
		var version int
		if err := aliasRows.Scan(&name, &alias, &version); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		if info, ok := byName[name]; ok {
			info.Aliases[alias] = version
		}
	}

	out := make([]Info, len(infos))
	for i, info := range infos {
		out[i] = *info
	}
	return out, nil
}
