package sqlstore

import (
	"context"
	"errors"
	"testing"

	"conferencego/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_WithinTx(t *testing.T) {
	errMirror := errors.New("mirror write failed")

	tests := []struct {
		name    string
		mirror  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "commits when every write succeeds",
			mirror: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO conference_vos`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back the conference when the mirror fails",
			mirror: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO conference_vos`).WillReturnError(errMirror)
				mock.ExpectRollback()
			},
			wantErr: errMirror,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			mock.ExpectQuery(`INSERT INTO conferences`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
			tt.mirror(mock)

			conferences := NewConferenceRepository(db, Postgres)
			mirrors := NewConferenceVORepository(db, Postgres)
			err = NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
				c := &domain.Conference{Name: "GopherCon", LocationID: 3}
				if err := conferences.Create(ctx, c); err != nil {
					return err
				}
				return mirrors.Upsert(ctx, &domain.ConferenceVO{ImportHref: c.Href(), Name: c.Name})
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransactor_NestedJoinsOuter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM conference_vos`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx := NewTransactor(db)
	mirrors := NewConferenceVORepository(db, Postgres)
	err = tx.WithinTx(context.Background(), func(ctx context.Context) error {
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			n, err := mirrors.DeleteByImportHref(ctx, "/api/conferences/9/")
			assert.Equal(t, int64(1), n)
			return err
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_BeginFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err = NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
