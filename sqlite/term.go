package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/h2wp"
)

// Compile-time interface verification.
var _ h2wp.TermService = (*TermService)(nil)

// TermService implements h2wp.TermService using SQLite.
type TermService struct {
	db *DB
}

// NewTermService creates a new TermService.
func NewTermService(db *DB) *TermService {
	return &TermService{db: db}
}

// CreateTerm creates a new term.
func (s *TermService) CreateTerm(ctx context.Context, term *h2wp.Term) error {
	if err := term.Validate(); err != nil {
		return err
	}

	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM terms WHERE taxonomy = ? AND slug = ?",
		term.Taxonomy, term.Slug).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return h2wp.Errorf(h2wp.ECONFLICT, "%s %q already exists", term.Taxonomy, term.Slug)
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO terms (taxonomy, slug, name) VALUES (?, ?, ?)",
		term.Taxonomy, term.Slug, term.Name)
	if err != nil {
		return err
	}

	term.ID, err = result.LastInsertId()
	return err
}

// FindTerms retrieves terms matching the filter in name order.
func (s *TermService) FindTerms(ctx context.Context, filter h2wp.TermFilter) ([]*h2wp.Term, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, taxonomy, slug, name FROM terms WHERE 1=1")

	if filter.Taxonomy != nil {
		query.WriteString(" AND taxonomy = ?")
		args = append(args, *filter.Taxonomy)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY name, id")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*h2wp.Term
	for rows.Next() {
		var term h2wp.Term
		if err := rows.Scan(&term.ID, &term.Taxonomy, &term.Slug, &term.Name); err != nil {
			return nil, err
		}
		terms = append(terms, &term)
	}

	return terms, rows.Err()
}
