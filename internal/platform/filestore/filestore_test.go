package filestore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/scry-assist/internal/platform/filestore"
	"github.com/phrazzld/scry-assist/internal/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStoreRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := filestore.NewWithFs(fsys, "/addons/assist/config.json", nil)
	ctx := context.Background()

	_, found, err := s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found, "missing file is reported as absent, not as an error")

	require.NoError(t, s.Set(ctx, []byte(`{"model":"m"}`)))

	doc, found, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"model":"m"}`, string(doc))

	require.NoError(t, s.Set(ctx, []byte(`{"model":"n"}`)))
	doc, _, err = s.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"n"}`, string(doc), "set overwrites the whole document")

	entries, err := afero.ReadDir(fsys, "/addons/assist")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestDocumentStoreReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/cfg/config.json", []byte(`{}`), 0o644))
	s := filestore.NewWithFs(afero.NewReadOnlyFs(base), "/cfg/config.json", nil)

	doc, found, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{}`, string(doc))

	err = s.Set(context.Background(), []byte(`{"a":1}`))
	require.Error(t, err)
	var storeErr *store.StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "set", storeErr.Operation)
}
