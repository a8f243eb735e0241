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

var locationColumns = []string{
	"l.id", "l.name", "l.city", "l.room_count", "l.created", "l.updated", "l.picture_url",
	"l.state_id", "st.name", "st.abbreviation",
}

type locationRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewLocationRepository(db *sql.DB, d Dialect) domain.LocationRepository {
	return &locationRepository{DB: db, sb: d.builder()}
}

func (r *locationRepository) selectLocations() sq.SelectBuilder {
	return r.sb.Select(locationColumns...).
		From("locations l").
		Join("states st ON st.id = l.state_id")
}

func scanLocation(row interface{ Scan(...any) error }) (*domain.Location, error) {
	l := &domain.Location{State: &domain.State{}}
	var picture sql.NullString
	if err := row.Scan(
		&l.ID, &l.Name, &l.City, &l.RoomCount, &l.Created, &l.Updated, &picture,
		&l.StateID, &l.State.Name, &l.State.Abbreviation,
	); err != nil {
		return nil, err
	}
	l.PictureURL = stringPtr(picture)
	l.State.ID = l.StateID
	return l, nil
}

func (r *locationRepository) Create(ctx context.Context, l *domain.Location) error {
	now := time.Now().UTC()
	l.Created, l.Updated = now, now
	query, args, err := r.sb.Insert("locations").
		Columns("name", "city", "room_count", "created", "updated", "picture_url", "state_id").
		Values(l.Name, l.City, l.RoomCount, l.Created, l.Updated, nullString(l.PictureURL), l.StateID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, args...).Scan(&l.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidState
		}
		return err
	}
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	query, args, err := r.selectLocations().Where(sq.Eq{"l.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	l, err := scanLocation(conn(ctx, r.DB).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *locationRepository) List(ctx context.Context) ([]*domain.Location, error) {
	query, args, err := r.selectLocations().OrderBy("l.id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// Update always bumps updated, so an empty update still touches the row.
func (r *locationRepository) Update(ctx context.Context, id int64, u domain.LocationUpdate) error {
	ub := r.sb.Update("locations").Where(sq.Eq{"id": id})
	if u.Name != nil {
		ub = ub.Set("name", *u.Name)
	}
	if u.City != nil {
		ub = ub.Set("city", *u.City)
	}
	if u.RoomCount != nil {
		ub = ub.Set("room_count", *u.RoomCount)
	}
	if u.PictureURL != nil {
		ub = ub.Set("picture_url", *u.PictureURL)
	}
	if u.StateID != nil {
		ub = ub.Set("state_id", *u.StateID)
	}
	ub = ub.Set("updated", time.Now().UTC())
	query, args, err := ub.ToSql()
	if err != nil {
		return err
	}
	if _, err := conn(ctx, r.DB).ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidState
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query, args, err := r.sb.Delete("locations").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res)
}
