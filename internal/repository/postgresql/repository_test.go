package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *database.DB) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, database.NewFromPool(mock)
}

var holidayCols = []string{"id", "user_id", "start_date", "end_date", "duration", "status", "reason", "approved_by_id", "created_at"}

func TestUserRepository_CreateMapsUniqueViolation(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), user.User{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Role:     user.RoleEmployee,
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewUserRepository(db)

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 99), user.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ReassignManager(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewUserRepository(db)

	newManager := int64(7)
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(2), &newManager).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	moved, err := repo.ReassignManager(context.Background(), 2, &newManager)
	require.NoError(t, err)
	assert.Equal(t, int64(3), moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepository_Decide(t *testing.T) {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	approver := int64(1)

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "pending request is decided",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE holiday_requests").
					WithArgs(int64(5), "approved", approver).
					WillReturnRows(pgxmock.NewRows(holidayCols).AddRow(
						int64(5), int64(3), start, start.AddDate(0, 0, 4), 5,
						holiday.StatusApproved, (*string)(nil), &approver, start,
					))
			},
		},
		{
			name: "already decided request",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE holiday_requests").
					WithArgs(int64(5), "approved", approver).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs(int64(5)).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: holiday.ErrHolidayRequestAlreadyProcessed,
		},
		{
			name: "missing request",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("UPDATE holiday_requests").
					WithArgs(int64(5), "approved", approver).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs(int64(5)).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: holiday.ErrHolidayRequestNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, db := newMock(t)
			tt.setup(mock)

			got, err := postgresql.NewHolidayRepository(db).Decide(context.Background(), 5, holiday.StatusApproved, approver)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, holiday.StatusApproved, got.Status)
				require.NotNil(t, got.ApprovedByID)
				assert.Equal(t, approver, *got.ApprovedByID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHolidayRepository_ListBuildsFilter(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewHolidayRepository(db)

	uid := int64(3)
	status := holiday.StatusPending
	mock.ExpectQuery("WHERE user_id = \\$1 AND status = \\$2 ORDER BY id").
		WithArgs(uid, "pending").
		WillReturnRows(pgxmock.NewRows(holidayCols))

	list, err := repo.List(context.Background(), holiday.Filter{UserID: &uid, Status: &status})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModuleRepository_CreateUnknownCourse(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewModuleRepository(db)

	mock.ExpectQuery("INSERT INTO course_modules").
		WithArgs(int64(9), "Intro", "", 1).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Create(context.Background(), learning.Module{CourseID: 9, Title: "Intro", Order: 1})
	assert.ErrorIs(t, err, learning.ErrCourseNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_CreateDuplicate(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewDepartmentRepository(db)

	mock.ExpectQuery("INSERT INTO departments").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "departments_name_key"})

	_, err := repo.Create(context.Background(), organization.Department{Name: "Engineering"})
	assert.ErrorIs(t, err, organization.ErrDepartmentNameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepository_ListByUserDecodesMetadata(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewActivityRepository(db)

	at := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM activities").
		WithArgs(int64(1), 4).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "type", "description", "metadata", "created_at"}).
			AddRow(int64(2), int64(1), activity.TypeHolidayRequest, "You submitted a holiday request", []byte(`{"holidayRequestId":7}`), at))

	list, err := repo.ListByUser(context.Background(), 1, 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, float64(7), list[0].Metadata["holidayRequestId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllAsRead(t *testing.T) {
	mock, db := newMock(t)
	repo := postgresql.NewNotificationRepository(db)

	mock.ExpectExec("UPDATE notifications SET is_read = TRUE WHERE user_id").
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := repo.MarkAllAsRead(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_CommitAndRollback(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		mock, db := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		users := postgresql.NewUserRepository(db)
		err := postgresql.NewTransactor(db).WithTransaction(context.Background(), func(ctx context.Context) error {
			return users.Delete(ctx, 3)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		mock, db := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := postgresql.NewTransactor(db).WithTransaction(context.Background(), func(ctx context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
