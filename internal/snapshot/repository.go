package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/verusns/internal/domain"
)

// ErrNotFound indicates that the requested snapshot was not found.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a stored discovery result. Its JSON form is a summary; Data is
// read through Decode.
type Snapshot struct {
	ID         int64           `json:"id"`
	Chain      string          `json:"chain"`
	TakenAt    time.Time       `json:"taken_at"`
	Namespaces int             `json:"namespaces"`
	Data       json.RawMessage `json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Decode unmarshals the stored discovery result.
func (s *Snapshot) Decode() (domain.NamespaceSnapshot, error) {
	var out domain.NamespaceSnapshot
	if err := json.Unmarshal(s.Data, &out); err != nil {
		return domain.NamespaceSnapshot{}, fmt.Errorf("decoding snapshot %d: %w", s.ID, err)
	}
	return out, nil
}

// Repository defines persistent storage for snapshots.
type Repository interface {
	Save(ctx context.Context, chain string, takenAt time.Time, namespaces int, data json.RawMessage) (int64, error)
	GetLatest(ctx context.Context, chain string) (*Snapshot, error)
	List(ctx context.Context, chain string, limit int) ([]Snapshot, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL snapshot repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const snapshotColumns = `id, chain, taken_at, namespaces, data, created_at`

func (r *PgRepository) Save(ctx context.Context, chain string, takenAt time.Time, namespaces int, data json.RawMessage) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO namespace_snapshots (chain, taken_at, namespaces, data)
		 VALUES ($1, $2, $3, $4::jsonb)
		 RETURNING id`,
		chain, takenAt, namespaces, data).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("saving snapshot: %w", err)
	}
	return id, nil
}

func (r *PgRepository) GetLatest(ctx context.Context, chain string) (*Snapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+snapshotColumns+`
		 FROM namespace_snapshots
		 WHERE chain = $1
		 ORDER BY taken_at DESC, id DESC
		 LIMIT 1`, chain)
	if err != nil {
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	s, err := pgx.CollectExactlyOneRow(rows, scanSnapshot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) List(ctx context.Context, chain string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+snapshotColumns+`
		 FROM namespace_snapshots
		 WHERE chain = $1
		 ORDER BY taken_at DESC, id DESC
		 LIMIT $2`, chain, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	snapshots, err := pgx.CollectRows(rows, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("scanning snapshots: %w", err)
	}
	return snapshots, nil
}

func scanSnapshot(row pgx.CollectableRow) (Snapshot, error) {
	var s Snapshot
	err := row.Scan(&s.ID, &s.Chain, &s.TakenAt, &s.Namespaces, &s.Data, &s.CreatedAt)
	return s, err
}
