package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/revisit/internal/cli"
	"github.com/aretw0/revisit/internal/logging"
	"github.com/aretw0/revisit/internal/testutils"
	"github.com/aretw0/revisit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipeYAML = `
studyMetadata:
  title: Scatter JND
  version: pilot
  authors: [Ada]
  date: "2024-11-05"
  description: Discrimination thresholds
  organizations: [VDL]
uiConfig:
  contactEmail: contact@revisit.dev
  logoPath: assets/logo.svg
  withProgressBar: true
  sidebar: true
components:
  - name: intro
    type: markdown
    path: assets/intro.md
  - name: survey
    type: questionnaire
    response:
      - {id: q1, type: shortText}
sequence:
  order: fixed
  components: [intro, survey]
`

func setup(t *testing.T) string {
	t.Helper()
	dir := testutils.SetupFixture(t, map[string]string{
		"assets/intro.md": "# Intro",
		"assets/logo.svg": "<svg/>",
		"study.yaml":      recipeYAML,
	})
	return filepath.Join(dir, "study.yaml")
}

func TestRunBuild_Stdout(t *testing.T) {
	path := setup(t)
	var out bytes.Buffer

	err := cli.RunBuild(&out, cli.BuildOptions{Recipe: path, Indent: 2}, logging.NewNop())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "{\n  \"$schema\""))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Contains(t, doc["components"], "intro")
}

func TestRunBuild_WithAssets(t *testing.T) {
	path := setup(t)
	checkout := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "config.json")

	err := cli.RunBuild(nil, cli.BuildOptions{Recipe: path, Out: outPath, Assets: checkout}, logging.NewNop())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(checkout, "public/__revisit-widget/assets/intro.md"))
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"logoPath": "__revisit-widget/assets/logo.svg"`)
	assert.Contains(t, string(data), `"path": "__revisit-widget/assets/intro.md"`)
}

func TestRunBuild_Errors(t *testing.T) {
	err := cli.RunBuild(nil, cli.BuildOptions{Recipe: filepath.Join(t.TempDir(), "none.yaml")}, logging.NewNop())
	assert.Error(t, err)

	path := setup(t)
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(path), "assets/intro.md")))
	err = cli.RunBuild(nil, cli.BuildOptions{Recipe: path, Assets: t.TempDir()}, logging.NewNop())
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestRunGraph(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.RunGraph(&out, setup(t), []string{"survey"}, logging.NewNop()))
	assert.Contains(t, out.String(), "graph TD")
	assert.Contains(t, out.String(), `seq0 -- "2" --> c_survey`)
	assert.Contains(t, out.String(), "class c_survey highlight;")
}

func TestRunInspect(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.RunInspect(&out, setup(t), "markdown", 80, logging.NewNop()))
	assert.Contains(t, out.String(), "# Scatter JND")

	out.Reset()
	require.NoError(t, cli.RunInspect(&out, setup(t), "notty", 80, logging.NewNop()))
	assert.Contains(t, out.String(), "Scatter JND")
}

func TestRunKinds(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.RunKinds(&out, ""))

	var all map[string]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &all))
	assert.Len(t, all["responses"], len(domain.ResponseKinds()))
	assert.Len(t, all["components"], len(domain.ComponentKinds()))

	out.Reset()
	require.NoError(t, cli.RunKinds(&out, "likert"))
	assert.Contains(t, out.String(), `"likert"`)
	assert.Contains(t, out.String(), `"numItems"`)
	assert.NotContains(t, out.String(), `"markdown"`)

	assert.ErrorIs(t, cli.RunKinds(&out, "nope"), domain.ErrNotFound)
}

func TestRunBuild_ExampleRecipe(t *testing.T) {
	var out bytes.Buffer
	err := cli.RunBuild(&out, cli.BuildOptions{Recipe: "../../examples/recipe/study.yaml"}, logging.NewNop())
	require.NoError(t, err)

	var doc struct {
		Components map[string]any `json:"components"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Contains(t, doc.Components, "trial_r1:0.3_r2:0.5_position:above__markers:circle")
	assert.Contains(t, doc.Components, "trial_r1:0.6_r2:0.7_position:below__markers:square")
	assert.Len(t, doc.Components, 6)
}
