package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-care-log/internal/domain/careevents"
)

func openTestSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(context.Background(), SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, EnsureSchema(context.Background(), db, SQLite))
	return db
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, EnsureSchema(ctx, db, SQLite))
	require.NoError(t, EnsureSchema(ctx, db, SQLite))

	var tables int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'pet_logs'`,
	).Scan(&tables))
	assert.Equal(t, 1, tables)

	var indexes int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_pet_logs_%'`,
	).Scan(&indexes))
	assert.Equal(t, 2, indexes)
}

func TestEnsureSchema_NilDB(t *testing.T) {
	assert.Error(t, EnsureSchema(context.Background(), nil, SQLite))
}

func TestCareEventsRepo_InsertAssignsIncreasingIDs(t *testing.T) {
	repo := NewCareEventsRepo(openTestSQLite(t), SQLite)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	first, err := repo.Insert(ctx, careevents.CareEvent{Timestamp: now, SenderID: "U1", Action: careevents.ActionFeed})
	require.NoError(t, err)
	second, err := repo.Insert(ctx, careevents.CareEvent{Timestamp: now, SenderID: "U2", Action: careevents.ActionWater})
	require.NoError(t, err)

	assert.Greater(t, first.ID, int64(0))
	assert.Greater(t, second.ID, first.ID)
}

func TestCareEventsRepo_LatestQueries(t *testing.T) {
	repo := NewCareEventsRepo(openTestSQLite(t), SQLite)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, careevents.ErrNotFound)

	seed := []careevents.CareEvent{
		{Timestamp: base, SenderID: "U1", Action: careevents.ActionFeed},
		{Timestamp: base.Add(2 * time.Hour), SenderID: "U2", Action: careevents.ActionWater},
		{Timestamp: base.Add(1 * time.Hour), SenderID: "U1", Action: careevents.ActionUrinate},
	}
	for _, e := range seed {
		_, err := repo.Insert(ctx, e)
		require.NoError(t, err)
	}

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "U2", latest.SenderID)
	assert.True(t, latest.Timestamp.Equal(base.Add(2*time.Hour)))
	assert.Equal(t, time.UTC, latest.Timestamp.Location())

	byType, err := repo.LatestByAction(ctx, careevents.ActionFeed)
	require.NoError(t, err)
	assert.Equal(t, "U1", byType.SenderID)
	assert.Equal(t, careevents.ActionFeed, byType.Action)

	_, err = repo.LatestByAction(ctx, careevents.ActionDefecate)
	assert.ErrorIs(t, err, careevents.ErrNotFound)

	mine, err := repo.LatestBySender(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, careevents.ActionUrinate, mine.Action)
}

func TestCareEventsRepo_LatestTieBrokenByID(t *testing.T) {
	repo := NewCareEventsRepo(openTestSQLite(t), SQLite)
	ctx := context.Background()
	ts := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	_, err := repo.Insert(ctx, careevents.CareEvent{Timestamp: ts, SenderID: "U1", Action: careevents.ActionFeed})
	require.NoError(t, err)
	second, err := repo.Insert(ctx, careevents.CareEvent{Timestamp: ts, SenderID: "U2", Action: careevents.ActionFeed})
	require.NoError(t, err)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestCareEventsRepo_DeleteByID(t *testing.T) {
	repo := NewCareEventsRepo(openTestSQLite(t), SQLite)
	ctx := context.Background()

	e, err := repo.Insert(ctx, careevents.CareEvent{Timestamp: time.Now().UTC(), SenderID: "U1", Action: careevents.ActionFeed})
	require.NoError(t, err)

	ok, err := repo.DeleteByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteByID(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCareEventsRepo_ListFilters(t *testing.T) {
	repo := NewCareEventsRepo(openTestSQLite(t), SQLite)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i, a := range careevents.Actions() {
		_, err := repo.Insert(ctx, careevents.CareEvent{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			SenderID:  "U1",
			Action:    a,
		})
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, careevents.CareEvent{Timestamp: base, SenderID: "U2", Action: careevents.ActionFeed})
	require.NoError(t, err)

	all, err := repo.List(ctx, careevents.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, careevents.ActionWater, all[0].Action)

	mine, err := repo.List(ctx, careevents.ListFilter{SenderID: "U1", Actions: []careevents.ActionType{careevents.ActionFeed, careevents.ActionWater}})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	from := base.Add(90 * time.Minute)
	recent, err := repo.List(ctx, careevents.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	limited, err := repo.List(ctx, careevents.ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCareEventsRepo_NilDBIsUnavailable(t *testing.T) {
	repo := NewCareEventsRepo(nil, Postgres)
	ctx := context.Background()

	_, err := repo.Insert(ctx, careevents.CareEvent{SenderID: "U1", Action: careevents.ActionFeed})
	assert.ErrorIs(t, err, careevents.ErrUnavailable)

	_, err = repo.Latest(ctx)
	assert.ErrorIs(t, err, careevents.ErrUnavailable)

	_, err = repo.DeleteByID(ctx, 1)
	assert.ErrorIs(t, err, careevents.ErrUnavailable)

	_, err = repo.List(ctx, careevents.ListFilter{})
	assert.ErrorIs(t, err, careevents.ErrUnavailable)
}

func TestCareEventsRepo_SQLiteClosedPoolIsUnavailable(t *testing.T) {
	db, err := Open(context.Background(), SQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(context.Background(), db, SQLite))
	require.NoError(t, db.Close())

	svc := careevents.NewService(NewCareEventsRepo(db, SQLite))
	ctx := context.Background()

	_, err = svc.Record(ctx, "U1", careevents.ActionFeed)
	assert.ErrorIs(t, err, careevents.ErrUnavailable)
	assert.NotErrorIs(t, err, careevents.ErrWriteFailed)

	_, err = svc.Latest(ctx)
	assert.ErrorIs(t, err, careevents.ErrUnavailable)

	_, err = svc.DeleteLatestFor(ctx, "U1")
	assert.ErrorIs(t, err, careevents.ErrUnavailable)
}

// ============================================
// Postgres (sqlmock)
// ============================================

func setupMockRepo(t *testing.T) (sqlmock.Sqlmock, *CareEventsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return mock, NewCareEventsRepo(db, Postgres)
}

func TestCareEventsRepo_Postgres_InsertUsesDollarPlaceholders(t *testing.T) {
	mock, repo := setupMockRepo(t)
	ctx := context.Background()
	senderID := uuid.New().String()
	ts := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery(`INSERT INTO pet_logs \(timestamp, user_id, action_type\)\s+VALUES \(\$1, \$2, \$3\)\s+RETURNING id`).
		WithArgs(ts, senderID, string(careevents.ActionWater)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	e, err := repo.Insert(ctx, careevents.CareEvent{Timestamp: ts, SenderID: senderID, Action: careevents.ActionWater})
	require.NoError(t, err)
	assert.Equal(t, int64(42), e.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCareEventsRepo_Postgres_InsertFault(t *testing.T) {
	mock, repo := setupMockRepo(t)

	mock.ExpectQuery(`INSERT INTO pet_logs`).
		WillReturnError(errors.New("value too long for type character varying(50)"))

	_, err := repo.Insert(context.Background(), careevents.CareEvent{SenderID: "U1", Action: careevents.ActionFeed})
	require.Error(t, err)
	assert.NotErrorIs(t, err, careevents.ErrUnavailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCareEventsRepo_Postgres_ClosedPoolIsUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()
	require.NoError(t, db.Close())

	repo := NewCareEventsRepo(db, Postgres)

	_, err = repo.LatestByAction(context.Background(), careevents.ActionFeed)
	assert.ErrorIs(t, err, careevents.ErrUnavailable)

	_, err = repo.Insert(context.Background(), careevents.CareEvent{SenderID: "U1", Action: careevents.ActionFeed})
	assert.ErrorIs(t, err, careevents.ErrUnavailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCareEventsRepo_Postgres_RowsAffectedFault(t *testing.T) {
	mock, repo := setupMockRepo(t)

	mock.ExpectExec(`DELETE FROM pet_logs WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("rows affected unsupported")))

	deleted, err := repo.DeleteByID(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, deleted)
	assert.NotErrorIs(t, err, careevents.ErrUnavailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCareEventsRepo_Postgres_LatestNoRows(t *testing.T) {
	mock, repo := setupMockRepo(t)

	mock.ExpectQuery(`SELECT id, timestamp, user_id, action_type FROM pet_logs ORDER BY timestamp DESC, id DESC LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "user_id", "action_type"}))

	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, careevents.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCareEventsRepo_Postgres_UnknownActionPassesThrough(t *testing.T) {
	mock, repo := setupMockRepo(t)
	ts := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM pet_logs WHERE user_id = \$1`).
		WithArgs("U9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "user_id", "action_type"}).
			AddRow(int64(7), ts, "U9", "排泄"))

	e, err := repo.LatestBySender(context.Background(), "U9")
	require.NoError(t, err)
	assert.Equal(t, careevents.ActionType("排泄"), e.Action)
	assert.False(t, e.Action.Valid())
	assert.Equal(t, "排泄", e.Action.Phrase())
}

func TestCareEventsRepo_Postgres_ListBuildsFilter(t *testing.T) {
	mock, repo := setupMockRepo(t)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE 1 = 1 AND user_id = \$1 AND action_type IN \(\$2,\$3\) AND timestamp >= \$4 ORDER BY timestamp DESC, id DESC LIMIT \$5`).
		WithArgs("U1", string(careevents.ActionFeed), string(careevents.ActionWater), from, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "user_id", "action_type"}).
			AddRow(int64(1), from, "U1", string(careevents.ActionFeed)))

	items, err := repo.List(context.Background(), careevents.ListFilter{
		SenderID: "U1",
		Actions:  []careevents.ActionType{careevents.ActionFeed, careevents.ActionWater},
		From:     &from,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDialect_Rebind(t *testing.T) {
	assert.Equal(t, "a = $1 AND b = $2", Postgres.rebind("a = ? AND b = ?"))
	assert.Equal(t, "a = ? AND b = ?", SQLite.rebind("a = ? AND b = ?"))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	d, err = ParseDialect("SQLite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}
