package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/snedea/smartsheets-issue-monitor-flowise/internal/models"
)

type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TIMESTAMP NOT NULL,
		output_path TEXT NOT NULL,
		catalog_source TEXT NOT NULL,
		digest TEXT NOT NULL,
		node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		agent_count INTEGER NOT NULL,
		passed INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_generations_output ON generations(output_path);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Storage) CreateGeneration(g *models.Generation) (int64, error) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(
		`INSERT INTO generations (created_at, output_path, catalog_source, digest, node_count, edge_count, agent_count, passed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.CreatedAt, g.OutputPath, g.CatalogSource, g.Digest, g.NodeCount, g.EdgeCount, g.AgentCount, g.Passed,
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	g.ID = id
	return id, nil
}

const generationColumns = `id, created_at, output_path, catalog_source, digest, node_count, edge_count, agent_count, passed`

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row scanner) (*models.Generation, error) {
	var g models.Generation
	err := row.Scan(
		&g.ID, &g.CreatedAt, &g.OutputPath, &g.CatalogSource, &g.Digest,
		&g.NodeCount, &g.EdgeCount, &g.AgentCount, &g.Passed,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Storage) GetGeneration(id int64) (*models.Generation, error) {
	row := s.db.QueryRow(`SELECT `+generationColumns+` FROM generations WHERE id = ?`, id)
	return scanGeneration(row)
}

// LatestByOutput returns the most recent generation written to path, or nil
// when nothing has been recorded for it yet.
func (s *Storage) LatestByOutput(path string) (*models.Generation, error) {
	row := s.db.QueryRow(
		`SELECT `+generationColumns+` FROM generations WHERE output_path = ? ORDER BY id DESC LIMIT 1`, path,
	)

	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

func (s *Storage) ListGenerations(limit int) ([]*models.Generation, error) {
	rows, err := s.db.Query(
		`SELECT `+generationColumns+` FROM generations ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gens []*models.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}

	return gens, rows.Err()
}

// Helper to format time for display
func FormatTimeAgo(t time.Time) string {
	return formatTimeAgo(t, time.Now())
}

func formatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
