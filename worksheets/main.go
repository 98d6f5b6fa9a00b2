package worksheets

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"snpscope/console/models"
	"snpscope/console/services/sanitation"
)

/*
	A worksheet is a YAML file listing variants to score in one
	console session, e.g.:

	variants:
	  - gene: BRCA1
	    cdnaChange: c.181T>G
	    proteinChange: p.Cys61Gly
*/

type Worksheet struct {
	Variants []WorksheetVariant `yaml:"variants"`
}

type WorksheetVariant struct {
	Gene          string `yaml:"gene"`
	CdnaChange    string `yaml:"cdnaChange"`
	ProteinChange string `yaml:"proteinChange"`
}

// LoadWorksheet reads and normalizes a worksheet file. Any entry that
// fails normalization rejects the whole sheet; a half-loaded
// worksheet would silently drop variants.
func LoadWorksheet(path string) ([]*models.VariantRequest, error) {
	contents, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, readErr
	}

	var sheet Worksheet
	if unmarshalErr := yaml.Unmarshal(contents, &sheet); unmarshalErr != nil {
		return nil, fmt.Errorf("unparseable worksheet %s: %v", path, unmarshalErr)
	}
	if len(sheet.Variants) == 0 {
		return nil, fmt.Errorf("worksheet %s lists no variants", path)
	}

	variants := make([]*models.VariantRequest, 0, len(sheet.Variants))
	for index, entry := range sheet.Variants {
		variant, normalizeErr := sanitation.NormalizeVariant(entry.Gene, entry.CdnaChange, entry.ProteinChange)
		if normalizeErr != nil {
			return nil, fmt.Errorf("worksheet %s entry %d: %v", path, index+1, normalizeErr)
		}
		variants = append(variants, variant)
	}
	return variants, nil
}
