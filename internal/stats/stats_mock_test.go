package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Query failures must surface with the column name attached; sqlmock
// stands in for the session database here.

func TestDescribe_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT count").WillReturnError(errors.New("table gone"))

	_, err = Describe(context.Background(), db, []string{"age"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "describe column age")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingCounts_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT count").WillReturnError(errors.New("boom"))

	_, err = MissingCounts(context.Background(), db, []string{"age"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing values in age")
}

func TestValueCounts_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT CAST").WillReturnError(errors.New("boom"))

	_, err = ValueCounts(context.Background(), db, "city")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count values of city")
}

func TestValueCounts_ScansMockedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"value", "count"}).
		AddRow("Paris", 3).
		AddRow("Lyon", 1)
	mock.ExpectQuery("SELECT CAST").WillReturnRows(rows)

	counts, err := ValueCounts(context.Background(), db, "city")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, ValueCount{Value: "Paris", Count: 3}, counts[0])
}
