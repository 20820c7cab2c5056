package filter_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository/filter"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository/mysql/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gdb, mock
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestCountBareScalarIsEquality(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(`id`) FROM `comments` WHERE `mark_id` = ? AND `is_deleted` = ?")).
		WithArgs(int64(5), false).
		WillReturnRows(countRows(3))

	n, err := filter.Count(context.Background(), gdb, &model.Comment{}, filter.Map{
		{Field: "mark_id", Value: int64(5)},
		{Field: "is_deleted", Value: false},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountEmptyFiltersWholeCollection(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(`id`) FROM `users`")).
		WillReturnRows(countRows(42))

	n, err := filter.Count(context.Background(), gdb, &model.User{}, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountDateComparesByCalendarDay(t *testing.T) {
	gdb, mock := newMockDB(t)

	day := filter.DateOf(time.Date(2024, 5, 10, 23, 59, 1, 0, time.UTC))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(`id`) FROM `users` WHERE DATE(`created_at`) = ?")).
		WithArgs("2024-05-10").
		WillReturnRows(countRows(7))

	n, err := filter.Count(context.Background(), gdb, &model.User{}, filter.Map{
		{Field: "created_at", Value: filter.Eq(day)},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountBetweenInclusive(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(`id`) FROM `comment_stats` WHERE `likes_count` BETWEEN ? AND ?")).
		WithArgs(int64(10), int64(20)).
		WillReturnRows(countRows(2))

	n, err := filter.Count(context.Background(), gdb, &model.CommentStat{}, filter.Map{
		{Field: "likes_count", Value: filter.Between(int64(10), int64(20))},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountInExpandsSet(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(`id`) FROM `comment_reactions` WHERE `reaction_type` IN (?,?)")).
		WithArgs("like", "dislike").
		WillReturnRows(countRows(9))

	n, err := filter.Count(context.Background(), gdb, &model.CommentReaction{}, filter.Map{
		{Field: "reaction_type", Value: filter.In("like", "dislike")},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountEmptyInMatchesNothing(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(`id`) FROM `comment_reactions` WHERE 1 = 0")).
		WillReturnRows(countRows(0))

	n, err := filter.Count(context.Background(), gdb, &model.CommentReaction{}, filter.Map{
		{Field: "reaction_type", Value: filter.In()},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountDistinctColumn(t *testing.T) {
	gdb, mock := newMockDB(t)

	day := filter.DateOf(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(DISTINCT `owner_id`) FROM `marks` WHERE DATE(`created_at`) = ?")).
		WithArgs("2024-05-10").
		WillReturnRows(countRows(4))

	n, err := filter.Count(context.Background(), gdb, &model.Mark{}, filter.Map{
		{Field: "created_at", Value: filter.Eq(day)},
	}, filter.Column("owner_id"), filter.Distinct())

	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountRepeatedFieldBuildsWindow(t *testing.T) {
	gdb, mock := newMockDB(t)

	from := time.Date(2024, 5, 9, 12, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(`id`) FROM `comments` WHERE `created_at` >= ? AND `created_at` < ?")).
		WithArgs(from, to).
		WillReturnRows(countRows(11))

	n, err := filter.Count(context.Background(), gdb, &model.Comment{}, filter.Map{
		{Field: "created_at", Value: filter.Gte(from)},
		{Field: "created_at", Value: filter.Lt(to)},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountNoMatchesYieldsZero(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(`id`) FROM `comments` WHERE `mark_id` = ?")).
		WithArgs(int64(999)).
		WillReturnRows(countRows(0))

	n, err := filter.Count(context.Background(), gdb, &model.Comment{}, filter.Map{
		{Field: "mark_id", Value: int64(999)},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnknownFieldFailsBeforeQuery(t *testing.T) {
	gdb, _ := newMockDB(t)

	_, err := filter.Count(context.Background(), gdb, &model.Comment{}, filter.Map{
		{Field: "no_such_field", Value: 1},
	})

	var ufe *filter.UnknownFieldError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, "Comment", ufe.Model)
	assert.Equal(t, "no_such_field", ufe.Field)
}

func TestCountUnknownCountColumn(t *testing.T) {
	gdb, _ := newMockDB(t)

	_, err := filter.Count(context.Background(), gdb, &model.Mark{}, nil,
		filter.Column("ghost"))

	var ufe *filter.UnknownFieldError
	assert.True(t, errors.As(err, &ufe))
}
