package welcome

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediashift/mediashift/internal/records"
)

func TestRender(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(Params{
		ServerURL:  "https://media.example.com",
		ServerName: "Family Media",
		AdminName:  "Pat",
		AdminEmail: "pat@example.com",
	})

	email, err := gen.Render(records.UserRecord{
		Username:   "alice",
		Email:      "alice@example.com",
		Passphrase: "cedar-lagoon-flint-wren-83",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", email.To)
	assert.Equal(t, "Welcome to Family Media - Your Account is Ready", email.Subject)
	assert.Contains(t, email.Body, "Hello alice,")
	assert.Contains(t, email.Body, "Server URL: https://media.example.com")
	assert.Contains(t, email.Body, "Password: cedar-lagoon-flint-wren-83")
	assert.Contains(t, email.Body, "contact Pat at pat@example.com")
}

func TestRender_Defaults(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(Params{ServerURL: "https://media.example.com"})

	email, err := gen.Render(records.UserRecord{Username: "bob", Email: "bob@example.com", Passphrase: "pw"})
	require.NoError(t, err)

	assert.Contains(t, email.Subject, "Media Server")
	assert.Contains(t, email.Body, "contact Server Admin at admin@example.com")
}

func TestRender_IncompleteRecord(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(Params{})

	_, err := gen.Render(records.UserRecord{Username: "alice", Email: "alice@example.com"})
	require.Error(t, err)
}

func TestNewGeneratorFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Hi {{.Username}}, your key is {{.Passphrase}}."), 0o600))

	gen, err := NewGeneratorFromFile(Params{}, path)
	require.NoError(t, err)

	email, err := gen.Render(records.UserRecord{Username: "alice", Email: "a@example.com", Passphrase: "pw-1"})
	require.NoError(t, err)
	assert.Equal(t, "Hi alice, your key is pw-1.", email.Body)
}

func TestNewGeneratorFromFile_BadTemplate(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "broken.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Username"), 0o600))

	_, err := NewGeneratorFromFile(Params{}, path)
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(Params{ServerURL: "https://media.example.com", ServerName: "Family Media"})

	batch := []records.UserRecord{
		{Username: "alice", Email: "alice@example.com", Passphrase: "pw-1"},
		{Username: "no-email", Passphrase: "pw-2"},
		{Username: "bob", Email: "bob@example.com", Passphrase: "pw-3"},
	}

	var buf bytes.Buffer
	count, err := gen.WriteCSV(&buf, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Email", "Subject", "Message"}, rows[0])
	assert.Equal(t, "alice@example.com", rows[1][0])
	assert.Equal(t, "bob@example.com", rows[2][0])
	assert.Contains(t, rows[2][2], "Hello bob,")
}
