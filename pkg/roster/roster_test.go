package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoster = `
admins:
  - email: ana@cidadeviva.org
    full_name: Ana Souza
    role: admin
  - email: bruno@cidadeviva.org
    full_name: Bruno Lima
`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(sampleRoster))
	require.NoError(t, err)
	require.Len(t, r.Admins, 2)
	assert.Equal(t, "ana@cidadeviva.org", r.Admins[0].Email)
	assert.Equal(t, "Ana Souza", r.Admins[0].FullName)
	assert.Equal(t, "admin", r.Admins[0].Role)
	assert.Empty(t, r.Admins[1].Role)
}

func TestParseRejectsBadEntries(t *testing.T) {
	_, err := Parse([]byte("admins:\n  - full_name: No Email\n"))
	assert.ErrorContains(t, err, "has no email")

	_, err = Parse([]byte(`
admins:
  - email: ana@cidadeviva.org
  - email: ana@cidadeviva.org
`))
	assert.ErrorContains(t, err, "duplicate roster entry")

	_, err = Parse([]byte("admins: {not a list"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRoster), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, r.Admins, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
