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

var attendeeColumns = []string{
	"a.id", "a.email", "a.name", "a.company_name", "a.created",
	"a.conference_id", "c.import_href", "c.name",
}

type attendeeRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewAttendeeRepository(db *sql.DB, d Dialect) domain.AttendeeRepository {
	return &attendeeRepository{DB: db, sb: d.builder()}
}

func (r *attendeeRepository) selectAttendees() sq.SelectBuilder {
	return r.sb.Select(attendeeColumns...).
		From("attendees a").
		Join("conference_vos c ON c.id = a.conference_id")
}

func scanAttendee(row interface{ Scan(...any) error }) (*domain.Attendee, error) {
	a := &domain.Attendee{Conference: &domain.ConferenceVO{}}
	var company sql.NullString
	if err := row.Scan(
		&a.ID, &a.Email, &a.Name, &company, &a.Created,
		&a.ConferenceID, &a.Conference.ImportHref, &a.Conference.Name,
	); err != nil {
		return nil, err
	}
	a.CompanyName = stringPtr(company)
	a.Conference.ID = a.ConferenceID
	return a, nil
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	a.Created = time.Now().UTC()
	query, args, err := r.sb.Insert("attendees").
		Columns("email", "name", "company_name", "created", "conference_id").
		Values(a.Email, a.Name, nullString(a.CompanyName), a.Created, a.ConferenceID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&a.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidConference
		}
		return err
	}
	return nil
}

func (r *attendeeRepository) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	query, args, err := r.selectAttendees().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	a, err := scanAttendee(conn(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) ListByConferenceVOID(ctx context.Context, conferenceVOID int64) ([]*domain.Attendee, error) {
	query, args, err := r.selectAttendees().
		Where(sq.Eq{"a.conference_id": conferenceVOID}).
		OrderBy("a.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *attendeeRepository) Update(ctx context.Context, id int64, u domain.AttendeeUpdate) error {
	ub := r.sb.Update("attendees").Where(sq.Eq{"id": id})
	n := 0
	if u.Email != nil {
		ub = ub.Set("email", *u.Email)
		n++
	}
	if u.Name != nil {
		ub = ub.Set("name", *u.Name)
		n++
	}
	if u.CompanyName != nil {
		ub = ub.Set("company_name", *u.CompanyName)
		n++
	}
	if u.ConferenceVOID != nil {
		ub = ub.Set("conference_id", *u.ConferenceVOID)
		n++
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
		return fmt.Errorf("update attendee: %w", err)
	}
	return nil
}

func (r *attendeeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query, args, err := r.sb.Delete("attendees").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}
