package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanCatalog = `
entries:
  - key: aqua_peel
    name: Aqua Peel
    tier: 1
    basePriceKRW: 90000
    tags:
      concerns: [pores]
      goals: [clearSkin]
      areas: [face]
    maintenance: true
`

const typoCatalog = `
entries:
  - key: mystery_laser
    name: Mystery Laser
    tier: 2
    basePriceKRW: 250000
    tags:
      concerns: [pigmentaton]
      goals: [brightening]
      areas: [face]
    contraindications: [pregnnancy]
`

func writeTempCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runValidate(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newCatalogValidateCommand(&RootOptions{Quiet: true})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogValidateCleanFile(t *testing.T) {
	path := writeTempCatalog(t, cleanCatalog)

	out, err := runValidate(t, "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 1 entries")
	assert.NotContains(t, out, "warning")
}

func TestCatalogValidateWarnsOnUnknownVocabulary(t *testing.T) {
	path := writeTempCatalog(t, typoCatalog)

	out, err := runValidate(t, "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, `concern tag "pigmentaton" is outside the survey vocabulary`)
	assert.Contains(t, out, `contraindication "pregnnancy" is outside the survey vocabulary`)
	assert.Contains(t, out, "is valid: 1 entries")
}

func TestCatalogValidateStrictFailsOnWarnings(t *testing.T) {
	path := writeTempCatalog(t, typoCatalog)

	_, err := runValidate(t, "--catalog", path, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vocabulary warnings")
}
