package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  port: "9090"
  jwt_signing_key: "0123456789abcdef0123"
storage:
  driver: firestore
firebase:
  project_id: sparks-dev
`)
	t.Setenv("SPARKS_POSTGRES_HOST", "db.internal")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, StorageDriverFirestore, conf.Storage.Driver)
	assert.Equal(t, "sparks-dev", conf.Firebase.ProjectID)
	assert.Equal(t, "db.internal", conf.Postgres.Host)
	assert.Equal(t, "info", conf.Log.Level)
	assert.Equal(t, int64(5<<20), conf.API.MaxImportBytes)
	assert.False(t, conf.API.AllowSignup)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing signing key", content: "api:\n  port: \"8080\"\n"},
		{name: "short signing key", content: "api:\n  jwt_signing_key: short\n"},
		{name: "unknown storage driver", content: "api:\n  jwt_signing_key: \"0123456789abcdef0123\"\nstorage:\n  driver: mongo\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
