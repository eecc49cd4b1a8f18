//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/platform/postgres"
	"github.com/phrazzld/scry-assist/internal/settings"
	"github.com/phrazzld/scry-assist/internal/store"
	"github.com/phrazzld/scry-assist/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db := testdb.GetTestDB(t)
	assert.NoError(t, postgres.Migrate(context.Background(), db, testdb.Logger()))
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(ctx context.Context, tx *sql.Tx) {
		_, err := tx.ExecContext(ctx, `DELETE FROM assistant_settings`)
		require.NoError(t, err)

		s := postgres.NewPostgresSettingsStore(tx, testdb.Logger())

		_, found, err := s.Get(ctx)
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, s.Set(ctx, []byte(`{"model":"a"}`)))
		require.NoError(t, s.Set(ctx, []byte(`{"model":"b"}`)))

		doc, found, err := s.Get(ctx)
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `{"model":"b"}`, string(doc))
	})
}

func TestResolverOverPostgres(t *testing.T) {
	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(ctx context.Context, tx *sql.Tx) {
		_, err := tx.ExecContext(ctx, `DELETE FROM assistant_settings`)
		require.NoError(t, err)

		resolver := settings.NewResolver(postgres.NewPostgresSettingsStore(tx, testdb.Logger()), testdb.Logger())
		loaded, err := resolver.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultSettings(), loaded)

		loaded.Model = "gemini-custom"
		require.NoError(t, resolver.Save(ctx, loaded))

		again, err := resolver.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "gemini-custom", again.Model)
	})
}

func TestNoteStoreCRUD(t *testing.T) {
	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(ctx context.Context, tx *sql.Tx) {
		notes := postgres.NewPostgresNoteStore(tx, testdb.Logger())

		note, err := domain.NewNote(map[string]string{"Front": "Q", "Back": ""})
		require.NoError(t, err)
		require.NoError(t, notes.Create(ctx, note))

		got, err := notes.GetByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, note.Fields, got.Fields)

		got.SetField("Back", "A<br>B")
		require.NoError(t, notes.Save(ctx, got))

		again, err := notes.GetByID(ctx, note.ID)
		require.NoError(t, err)
		assert.Equal(t, "A<br>B", again.Field("Back"))

		_, err = notes.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrNoteNotFound)

		missing := &domain.Note{ID: uuid.New(), Fields: map[string]string{"Front": "x"}}
		assert.ErrorIs(t, notes.Save(ctx, missing), store.ErrNoteNotFound)
	})
}

func TestNoteStoreDuplicate(t *testing.T) {
	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(ctx context.Context, tx *sql.Tx) {
		notes := postgres.NewPostgresNoteStore(tx, testdb.Logger())

		note, err := domain.NewNote(map[string]string{"Front": "Q"})
		require.NoError(t, err)
		require.NoError(t, notes.Create(ctx, note))

		// a failed statement aborts the transaction, so this must come last
		assert.ErrorIs(t, notes.Create(ctx, note), store.ErrDuplicate)
	})
}
