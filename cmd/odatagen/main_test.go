package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metadata = `<?xml version="1.0" encoding="utf-8"?>
<edmx:Edmx Version="4.0" xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <edmx:DataServices>
    <Schema Namespace="NAV" xmlns="http://docs.oasis-open.org/odata/ns/edm">
      <EntityType Name="Item">
        <Key><PropertyRef Name="No" /></Key>
        <Property Name="No" Type="Edm.String" Nullable="false" MaxLength="20" />
        <Property Name="Description" Type="Edm.String" MaxLength="100" />
      </EntityType>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

func setup(t *testing.T, content string) (meta, target string) {
	t.Helper()
	for _, k := range []string{"LOG_FILE", "ODATAGEN_PACKAGE", "ODATA_HOST", "NAV_USER", "NAV_PASSWORD"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("ODATAGEN_CONFIG", filepath.Join(dir, "absent.yaml"))
	meta = filepath.Join(dir, "odata_metadata.xml")
	require.NoError(t, os.WriteFile(meta, []byte(content), 0o644))
	return meta, filepath.Join(dir, "entities")
}

func runArgs(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var stderr bytes.Buffer
	code := run(context.Background(), args, &stderr)
	return code, stderr.String()
}

func TestRun(t *testing.T) {
	t.Run("generates requested entities", func(t *testing.T) {
		meta, target := setup(t, metadata)
		env := filepath.Join(filepath.Dir(meta), "absent.env")

		code, out := runArgs(t, "-env", env, "-metadata", meta, "-target", target, "Item", "Missing")
		require.Equal(t, exitOK, code, out)
		assert.Contains(t, out, "entity type not found in metadata")

		data, err := os.ReadFile(filepath.Join(target, "item.go"))
		require.NoError(t, err)
		src := string(data)
		assert.Contains(t, src, "package entities")
		assert.Contains(t, src, "type ItemCreate struct")
		assert.Contains(t, src, `var ItemKeys = []string{"No"}`)

		require.NoError(t, os.WriteFile(filepath.Join(target, "item.go"), []byte("package entities\n"), 0o644))
		code, out = runArgs(t, "-env", env, "-metadata", meta, "-target", target, "Item")
		require.Equal(t, exitOK, code, out)
		data, err = os.ReadFile(filepath.Join(target, "item.go"))
		require.NoError(t, err)
		assert.Equal(t, "package entities\n", string(data), "existing artifacts are kept")
	})

	t.Run("package flag", func(t *testing.T) {
		meta, target := setup(t, metadata)
		env := filepath.Join(filepath.Dir(meta), "absent.env")

		code, out := runArgs(t, "-env", env, "-metadata", meta, "-target", target, "-package", "nav", "Item")
		require.Equal(t, exitOK, code, out)
		data, err := os.ReadFile(filepath.Join(target, "item.go"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "package nav")
	})

	t.Run("malformed metadata", func(t *testing.T) {
		meta, target := setup(t, "<edmx:Edmx><EntityType Name=\"Item\">")
		env := filepath.Join(filepath.Dir(meta), "absent.env")

		code, out := runArgs(t, "-env", env, "-metadata", meta, "-target", target, "Item")
		assert.Equal(t, exitError, code)
		assert.Contains(t, out, "failed to parse metadata")
		_, err := os.Stat(target)
		assert.True(t, os.IsNotExist(err), "nothing is generated")
	})

	t.Run("download needs credentials", func(t *testing.T) {
		meta, target := setup(t, metadata)
		env := filepath.Join(filepath.Dir(meta), "absent.env")
		missing := filepath.Join(filepath.Dir(meta), "none.xml")

		code, out := runArgs(t, "-env", env, "-metadata", missing, "-target", target, "Item")
		assert.Equal(t, exitError, code)
		assert.Contains(t, out, "ODATA_HOST")
	})

	t.Run("usage", func(t *testing.T) {
		code, out := runArgs(t)
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, out, "usage: odatagen")

		code, _ = runArgs(t, "-nope")
		assert.Equal(t, exitUsage, code)
	})
}
