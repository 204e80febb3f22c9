package certstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	atverrors "atvcert/internal/errors"
	"atvcert/internal/selfsigned"
)

func tempStore(t *testing.T) Store {
	t.Helper()
	dir := t.TempDir()
	return Store{
		CertFile: filepath.Join(dir, "nested", "cert.pem"),
		KeyFile:  filepath.Join(dir, "nested", "key.pem"),
	}
}

func generate(t *testing.T, opts selfsigned.Options) *selfsigned.Pair {
	t.Helper()
	pair, err := selfsigned.Generate(opts)
	require.NoError(t, err)
	return pair
}

func TestSaveAndLoad(t *testing.T) {
	store := tempStore(t)
	pair := generate(t, selfsigned.DefaultOptions())

	require.NoError(t, store.Save(pair))

	tlsPair, cert, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "atvremote", cert.Subject.CommonName)
	assert.Equal(t, pair.Certificate.SerialNumber, cert.SerialNumber)
	require.Len(t, tlsPair.Certificate, 1)

	keyInfo, err := os.Stat(store.KeyFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), keyInfo.Mode().Perm())
}

func TestSaveOverwrites(t *testing.T) {
	store := tempStore(t)

	first := generate(t, selfsigned.DefaultOptions())
	require.NoError(t, store.Save(first))

	opts := selfsigned.DefaultOptions()
	opts.Hostname = "second.local"
	second := generate(t, opts)
	require.NoError(t, store.Save(second))

	_, cert, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second.local", cert.Subject.CommonName)
	// The serial is fixed, so it survives regeneration unchanged.
	assert.Equal(t, int64(1000), cert.SerialNumber.Int64())
}

func TestLoadMissingFiles(t *testing.T) {
	store := tempStore(t)

	_, _, err := store.Load()
	assert.ErrorIs(t, err, atverrors.ErrCertificateMissing)

	pair := generate(t, selfsigned.DefaultOptions())
	require.NoError(t, store.Save(pair))
	require.NoError(t, os.Remove(store.KeyFile))

	_, _, err = store.Load()
	assert.ErrorIs(t, err, atverrors.ErrKeyMissing)
}

func TestLoadKeyMismatch(t *testing.T) {
	store := tempStore(t)
	pair := generate(t, selfsigned.DefaultOptions())
	require.NoError(t, store.Save(pair))

	other := generate(t, selfsigned.DefaultOptions())
	require.NoError(t, os.WriteFile(store.KeyFile, other.KeyPEM(), 0o600))

	_, _, err := store.Load()
	// tls.LoadX509KeyPair already rejects a key that does not match.
	assert.Error(t, err)
}

func TestNeedsRenewal(t *testing.T) {
	store := tempStore(t)
	assert.True(t, store.NeedsRenewal(time.Hour), "missing files always need renewal")

	pair := generate(t, selfsigned.DefaultOptions())
	require.NoError(t, store.Save(pair))

	assert.False(t, store.NeedsRenewal(24*time.Hour))
	assert.True(t, store.NeedsRenewal(11*365*24*time.Hour), "threshold beyond lifetime forces renewal")
}

func TestDescribe(t *testing.T) {
	store := tempStore(t)
	pair := generate(t, selfsigned.DefaultOptions())
	require.NoError(t, store.Save(pair))

	info, err := store.Describe()
	require.NoError(t, err)
	assert.Equal(t, "atvremote", info.CommonName)
	assert.Equal(t, "1000", info.SerialNumber)
	assert.Equal(t, []string{"atvremote"}, info.DNSNames)
	assert.True(t, info.IsCA)
	assert.Len(t, info.FingerprintSHA256, 64)
	assert.Equal(t, store.CertFile, info.CertFile)
}
