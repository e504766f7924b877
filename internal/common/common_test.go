package common

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/engine"
	"resumescore/internal/errors"
	"resumescore/internal/resume"
	"resumescore/internal/types"
)

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	raw, err := json.Marshal(resume.Sample())
	require.NoError(t, err)
	path := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(path, raw, 0600))
	return path
}

func TestReadResume(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)
	fp := NewFileProcessor(errors.Discard(), 1<<20)

	doc, err := fp.ReadResume(path)
	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson", doc.PersonalInfo.Name)

	_, err = fp.ReadResume(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))

	_, err = NewFileProcessor(errors.Discard(), 10).ReadResume(path)
	assert.ErrorContains(t, err, "larger than the 10 B limit")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"personalInfo": 42}`), 0600))
	_, err = fp.ReadResume(bad)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "out.txt")
	require.NoError(t, NewFileProcessor(nil, 0).WriteFile(target, "hello"))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestHandleOutput(t *testing.T) {
	var buf bytes.Buffer
	oh := NewOutputHandlerWithWriter(errors.Discard(), &buf)
	out := types.ScoreOutput{Strategy: "compact", Score: 65, Label: "Getting There"}

	require.NoError(t, oh.HandleOutput(out, CommandConfig{OutputFormat: "text"}))
	assert.Contains(t, buf.String(), "Score: 65/100 (Getting There)")

	err := oh.HandleOutput(out, CommandConfig{OutputFormat: "yaml"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	file := filepath.Join(t.TempDir(), "score.json")
	require.NoError(t, oh.HandleOutput(out, CommandConfig{OutputFormat: "json", OutputFile: file}))
	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"score": 65`)
}

func TestWriteRendered(t *testing.T) {
	var buf bytes.Buffer
	oh := NewOutputHandlerWithWriter(errors.Discard(), &buf)
	r := engine.Rendered{Format: "text", Content: "ALEX", Filename: "alex.txt"}

	path, err := oh.WriteRendered(r, "")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "ALEX", buf.String())

	t.Chdir(t.TempDir())
	path, err = oh.WriteRendered(r, "auto")
	require.NoError(t, err)
	assert.Equal(t, "alex.txt", path)
	_, err = os.Stat("alex.txt")
	assert.NoError(t, err)
}

func TestRunResumeCommand(t *testing.T) {
	path := writeSample(t, t.TempDir())
	var buf bytes.Buffer
	r := &Runner{
		Logger:        errors.Discard(),
		FileProcessor: NewFileProcessor(nil, 0),
		OutputHandler: NewOutputHandlerWithWriter(nil, &buf),
	}

	err := RunResumeCommand(context.Background(), r, CommandConfig{OutputFormat: "json"}, path,
		func(_ context.Context, doc *resume.Document) (map[string]string, error) {
			return map[string]string{"name": doc.PersonalInfo.Name}, nil
		})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alex Johnson"}`, buf.String())
}
