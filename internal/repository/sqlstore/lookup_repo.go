package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"conferencego/internal/domain"
)

type stateRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewStateRepository(db *sql.DB, d Dialect) domain.StateRepository {
	return &stateRepository{DB: db, sb: d.builder()}
}

// GetByAbbreviation matches case-insensitively; abbreviations are stored upper case.
func (r *stateRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (*domain.State, error) {
	query, args, err := r.sb.Select("id", "name", "abbreviation").
		From("states").
		Where(sq.Eq{"abbreviation": strings.ToUpper(strings.TrimSpace(abbreviation))}).
		ToSql()
	if err != nil {
		return nil, err
	}
	s := &domain.State{}
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &s.Abbreviation); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

type statusRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewStatusRepository(db *sql.DB, d Dialect) domain.StatusRepository {
	return &statusRepository{DB: db, sb: d.builder()}
}

// GetByName matches the name exactly.
func (r *statusRepository) GetByName(ctx context.Context, name string) (*domain.Status, error) {
	query, args, err := r.sb.Select("id", "name").
		From("statuses").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}
	s := &domain.Status{}
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
