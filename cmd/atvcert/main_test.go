package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atvcert/internal/certstore"
	"atvcert/internal/selfsigned"
)

func testStore(t *testing.T) certstore.Store {
	t.Helper()
	dir := t.TempDir()
	return certstore.Store{
		CertFile: filepath.Join(dir, "cert.pem"),
		KeyFile:  filepath.Join(dir, "key.pem"),
	}
}

func TestGenerateWritesPair(t *testing.T) {
	store := testStore(t)

	require.NoError(t, generate(selfsigned.DefaultOptions(), store))

	_, cert, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "atvremote", cert.Subject.CommonName)
}

func TestCertKeeperReload(t *testing.T) {
	store := testStore(t)
	keeper := &certKeeper{}

	_, err := keeper.get(nil)
	assert.Error(t, err, "keeper starts empty")

	require.Error(t, keeper.reload(store), "reload fails before generation")

	require.NoError(t, generate(selfsigned.DefaultOptions(), store))
	require.NoError(t, keeper.reload(store))

	cert, err := keeper.get(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, cert.Certificate)
}
