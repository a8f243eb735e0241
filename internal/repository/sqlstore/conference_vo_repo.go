package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"conferencego/internal/domain"
)

type conferenceVORepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewConferenceVORepository(db *sql.DB, d Dialect) domain.ConferenceVORepository {
	return &conferenceVORepository{DB: db, sb: d.builder()}
}

func (r *conferenceVORepository) get(ctx context.Context, where sq.Eq) (*domain.ConferenceVO, error) {
	query, args, err := r.sb.Select("id", "import_href", "name").
		From("conference_vos").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}
	vo := &domain.ConferenceVO{}
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&vo.ID, &vo.ImportHref, &vo.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return vo, nil
}

func (r *conferenceVORepository) GetByID(ctx context.Context, id int64) (*domain.ConferenceVO, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

func (r *conferenceVORepository) GetByImportHref(ctx context.Context, href string) (*domain.ConferenceVO, error) {
	return r.get(ctx, sq.Eq{"import_href": href})
}

func (r *conferenceVORepository) Upsert(ctx context.Context, vo *domain.ConferenceVO) error {
	query, args, err := r.sb.Insert("conference_vos").
		Columns("import_href", "name").
		Values(vo.ImportHref, vo.Name).
		Suffix("ON CONFLICT (import_href) DO UPDATE SET name = excluded.name RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&vo.ID)
}

func (r *conferenceVORepository) DeleteByImportHref(ctx context.Context, hrefs ...string) (int64, error) {
	if len(hrefs) == 0 {
		return 0, nil
	}
	query, args, err := r.sb.Delete("conference_vos").Where(sq.Eq{"import_href": hrefs}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}
