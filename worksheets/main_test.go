package worksheets

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeWorksheet(t *testing.T, contents string) string {
	worksheetPath := path.Join(t.TempDir(), "variants.yaml")
	assert.NoError(t, os.WriteFile(worksheetPath, []byte(contents), 0644))
	return worksheetPath
}

func TestLoadWorksheet(t *testing.T) {
	worksheetPath := writeWorksheet(t, `
variants:
  - gene: BRCA1
    cdnaChange: c.181T>G
    proteinChange: p.Cys61Gly
  - gene: "  TP53 "
    cdnaChange: c.742C>T
    proteinChange: p.Arg248Trp
`)

	variants, err := LoadWorksheet(worksheetPath)

	assert.NoError(t, err)
	assert.Len(t, variants, 2)
	assert.Equal(t, "BRCA1", variants[0].Gene)
	// entries are normalized on the way in
	assert.Equal(t, "TP53", variants[1].Gene)
}

func TestLoadWorksheetRejectsInvalidEntries(t *testing.T) {
	worksheetPath := writeWorksheet(t, `
variants:
  - gene: BRCA1
    cdnaChange: c.181T>G
    proteinChange: p.Cys61Gly
  - gene: ""
    cdnaChange: c.742C>T
    proteinChange: p.Arg248Trp
`)

	variants, err := LoadWorksheet(worksheetPath)

	assert.Nil(t, variants)
	assert.Error(t, err)
}

func TestLoadWorksheetRejectsEmptySheets(t *testing.T) {
	worksheetPath := writeWorksheet(t, "variants: []\n")

	_, err := LoadWorksheet(worksheetPath)
	assert.Error(t, err)
}

func TestLoadWorksheetRejectsMissingFiles(t *testing.T) {
	_, err := LoadWorksheet(path.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
