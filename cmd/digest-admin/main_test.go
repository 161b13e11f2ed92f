package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTagsList(t *testing.T) {
	out, err := execute(t, "tags", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "schema_qa_page_type")
	assert.Contains(t, out, "QAPage, FAQPage")
}

func TestTagsValidate(t *testing.T) {
	out, err := execute(t, "tags", "validate", "schema_qa_page_type", "FAQPage")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = execute(t, "tags", "validate", "schema_qa_page_type", "Article")
	assert.Error(t, err)
}

func TestSettingsRoundTripMemoryBackend(t *testing.T) {
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("SETTINGS_BACKEND", "memory")

	out, err := execute(t, "settings", "set", "welcome_message", "Hi")
	require.NoError(t, err)
	assert.Contains(t, out, "saved")

	_, err = execute(t, "settings", "set", "other", "x")
	assert.Error(t, err)
}

func TestStagedListMemory(t *testing.T) {
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("SETTINGS_BACKEND", "memory")

	out, err := execute(t, "staged", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No old content")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
