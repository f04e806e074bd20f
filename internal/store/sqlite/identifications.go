package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beadfanatic/server/internal/domain"
	"github.com/beadfanatic/server/internal/store"
)

// identificationColumns is the ordered column list for identification
// queries. Must match the scan order in scanIdentification.
const identificationColumns = `id, caption, method, model, top_suggestion,
	confidence, suggestion_count, client_ip, duration_ms, created_at`

// scanIdentification scans a row into a domain.Identification.
func scanIdentification(scanner interface{ Scan(dest ...any) error }) (*domain.Identification, error) {
	var (
		ident         domain.Identification
		model         sql.NullString
		topSuggestion sql.NullString
		clientIP      sql.NullString
		createdAt     string
	)

	err := scanner.Scan(
		&ident.ID,
		&ident.Caption,
		&ident.Method,
		&model,
		&topSuggestion,
		&ident.Confidence,
		&ident.Suggestions,
		&clientIP,
		&ident.DurationMs,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	ident.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	if model.Valid {
		ident.Model = model.String
	}
	if topSuggestion.Valid {
		ident.TopSuggestion = topSuggestion.String
	}
	if clientIP.Valid {
		ident.ClientIP = clientIP.String
	}

	return &ident, nil
}

// RecordIdentification inserts a new identification record.
// Returns store.ErrAlreadyExists if the ID is already taken.
func (s *Store) RecordIdentification(ctx context.Context, ident *domain.Identification) error {
	if ident.CreatedAt.IsZero() {
		ident.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO identifications (
			id, caption, method, model, top_suggestion,
			confidence, suggestion_count, client_ip, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ident.ID,
		ident.Caption,
		ident.Method,
		nullString(ident.Model),
		nullString(ident.TopSuggestion),
		ident.Confidence,
		ident.Suggestions,
		nullString(ident.ClientIP),
		ident.DurationMs,
		formatTime(ident.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert identification: %w", err)
	}
	return nil
}

// GetIdentification fetches a single record by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetIdentification(ctx context.Context, id string) (*domain.Identification, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+identificationColumns+` FROM identifications WHERE id = ?`, id)

	ident, err := scanIdentification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get identification: %w", err)
	}
	return ident, nil
}

// ListIdentifications returns a page of records, newest first, along with
// the total count.
func (s *Store) ListIdentifications(ctx context.Context, params store.ListParams) ([]*domain.Identification, int64, error) {
	params = params.Normalize()

	var total int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM identifications`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count identifications: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+identificationColumns+` FROM identifications
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list identifications: %w", err)
	}
	defer rows.Close()

	idents := make([]*domain.Identification, 0, params.Limit)
	for rows.Next() {
		ident, err := scanIdentification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan identification: %w", err)
		}
		idents = append(idents, ident)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate identifications: %w", err)
	}

	return idents, total, nil
}

// DeleteIdentificationsBefore removes records older than the cutoff and
// returns how many were deleted.
func (s *Store) DeleteIdentificationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM identifications WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete identifications: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if deleted > 0 {
		s.logger.Info("pruned identification history", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
