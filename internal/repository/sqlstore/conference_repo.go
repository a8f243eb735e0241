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

var conferenceColumns = []string{
	"c.id", "c.name", "c.description", "c.max_presentations", "c.max_attendees",
	"c.starts", "c.ends", "c.created", "c.updated",
	"c.location_id", "l.name", "l.city", "st.abbreviation",
}

type conferenceRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewConferenceRepository(db *sql.DB, d Dialect) domain.ConferenceRepository {
	return &conferenceRepository{DB: db, sb: d.builder()}
}

func (r *conferenceRepository) selectConferences() sq.SelectBuilder {
	return r.sb.Select(conferenceColumns...).
		From("conferences c").
		Join("locations l ON l.id = c.location_id").
		Join("states st ON st.id = l.state_id")
}

func scanConference(row interface{ Scan(...any) error }) (*domain.Conference, error) {
	c := &domain.Conference{Location: &domain.Location{State: &domain.State{}}}
	if err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.MaxPresentations, &c.MaxAttendees,
		&c.Starts, &c.Ends, &c.Created, &c.Updated,
		&c.LocationID, &c.Location.Name, &c.Location.City, &c.Location.State.Abbreviation,
	); err != nil {
		return nil, err
	}
	c.Location.ID = c.LocationID
	return c, nil
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	now := time.Now().UTC()
	c.Created, c.Updated = now, now
	query, args, err := r.sb.Insert("conferences").
		Columns("name", "description", "max_presentations", "max_attendees", "starts", "ends", "created", "updated", "location_id").
		Values(c.Name, c.Description, c.MaxPresentations, c.MaxAttendees, c.Starts, c.Ends, c.Created, c.Updated, c.LocationID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&c.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidLocation
		}
		return err
	}
	return nil
}

func (r *conferenceRepository) GetByID(ctx context.Context, id int64) (*domain.Conference, error) {
	query, args, err := r.selectConferences().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanConference(conn(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *conferenceRepository) List(ctx context.Context) ([]*domain.Conference, error) {
	return r.list(ctx, r.selectConferences().OrderBy("c.id"))
}

func (r *conferenceRepository) ListByLocationID(ctx context.Context, locationID int64) ([]*domain.Conference, error) {
	return r.list(ctx, r.selectConferences().Where(sq.Eq{"c.location_id": locationID}).OrderBy("c.id"))
}

func (r *conferenceRepository) list(ctx context.Context, sb sq.SelectBuilder) ([]*domain.Conference, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conferences := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		conferences = append(conferences, c)
	}
	return conferences, rows.Err()
}

// Update always bumps updated, so an empty update still touches the row.
func (r *conferenceRepository) Update(ctx context.Context, id int64, u domain.ConferenceUpdate) error {
	ub := r.sb.Update("conferences").Where(sq.Eq{"id": id})
	if u.Name != nil {
		ub = ub.Set("name", *u.Name)
	}
	if u.Description != nil {
		ub = ub.Set("description", *u.Description)
	}
	if u.MaxPresentations != nil {
		ub = ub.Set("max_presentations", *u.MaxPresentations)
	}
	if u.MaxAttendees != nil {
		ub = ub.Set("max_attendees", *u.MaxAttendees)
	}
	if u.Starts != nil {
		ub = ub.Set("starts", *u.Starts)
	}
	if u.Ends != nil {
		ub = ub.Set("ends", *u.Ends)
	}
	if u.LocationID != nil {
		ub = ub.Set("location_id", *u.LocationID)
	}
	ub = ub.Set("updated", time.Now().UTC())
	query, args, err := ub.ToSql()
	if err != nil {
		return err
	}
	if _, err := conn(ctx, r.DB).ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidLocation
		}
		return fmt.Errorf("update conference: %w", err)
	}
	return nil
}

func (r *conferenceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query, args, err := r.sb.Delete("conferences").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}
