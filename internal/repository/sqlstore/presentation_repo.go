package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"conferencego/internal/domain"
)

var presentationColumns = []string{
	"p.id", "p.presenter_name", "p.company_name", "p.presenter_email", "p.title", "p.synopsis", "p.created",
	"p.status_id", "s.name", "p.conference_id", "c.name",
}

type presentationRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewPresentationRepository(db *sql.DB, d Dialect) domain.PresentationRepository {
	return &presentationRepository{DB: db, sb: d.builder()}
}

func (r *presentationRepository) selectPresentations() sq.SelectBuilder {
	return r.sb.Select(presentationColumns...).
		From("presentations p").
		Join("statuses s ON s.id = p.status_id").
		Join("conferences c ON c.id = p.conference_id")
}

func scanPresentation(row interface{ Scan(...any) error }) (*domain.Presentation, error) {
	p := &domain.Presentation{Status: &domain.Status{}, Conference: &domain.Conference{}}
	var company sql.NullString
	if err := row.Scan(
		&p.ID, &p.PresenterName, &company, &p.PresenterEmail, &p.Title, &p.Synopsis, &p.Created,
		&p.StatusID, &p.Status.Name, &p.ConferenceID, &p.Conference.Name,
	); err != nil {
		return nil, err
	}
	p.CompanyName = stringPtr(company)
	p.Status.ID = p.StatusID
	p.Conference.ID = p.ConferenceID
	return p, nil
}

func (r *presentationRepository) Create(ctx context.Context, p *domain.Presentation) error {
	p.Created = time.Now().UTC()
	query, args, err := r.sb.Insert("presentations").
		Columns("presenter_name", "company_name", "presenter_email", "title", "synopsis", "created", "status_id", "conference_id").
		Values(p.PresenterName, nullString(p.CompanyName), p.PresenterEmail, p.Title, p.Synopsis, p.Created, p.StatusID, p.ConferenceID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidConference
		}
		return err
	}
	return nil
}

func (r *presentationRepository) GetByID(ctx context.Context, id int64) (*domain.Presentation, error) {
	query, args, err := r.selectPresentations().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanPresentation(conn(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *presentationRepository) ListByConferenceID(ctx context.Context, conferenceID int64) ([]*domain.Presentation, error) {
	query, args, err := r.selectPresentations().
		Where(sq.Eq{"p.conference_id": conferenceID}).
		OrderBy("p.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presentations := make([]*domain.Presentation, 0)
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, err
		}
		presentations = append(presentations, p)
	}
	return presentations, rows.Err()
}

func (r *presentationRepository) Update(ctx context.Context, id int64, u domain.PresentationUpdate) error {
	ub := r.sb.Update("presentations").Where(sq.Eq{"id": id})
	n := 0
	set := func(col string, v any) {
		ub = ub.Set(col, v)
		n++
	}
	if u.PresenterName != nil {
		set("presenter_name", *u.PresenterName)
	}
	if u.CompanyName != nil {
		set("company_name", *u.CompanyName)
	}
	if u.PresenterEmail != nil {
		set("presenter_email", *u.PresenterEmail)
	}
	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Synopsis != nil {
		set("synopsis", *u.Synopsis)
	}
	if u.StatusID != nil {
		set("status_id", *u.StatusID)
	}
	if u.ConferenceID != nil {
		set("conference_id", *u.ConferenceID)
	}
	if n == 0 {
		return nil
	}
	query, args, err := ub.ToSql()
	if err != nil {
		return err
	}
	if _, err := conn(ctx, r.DB).ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidConference
		}
		return fmt.Errorf("update presentation: %w", err)
	}
	return nil
}

func (r *presentationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query, args, err := r.sb.Delete("presentations").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}
