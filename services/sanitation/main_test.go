package sanitation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"snpscope/console/models/cerrors"
)

func TestNormalizeVariantTrimsFields(t *testing.T) {
	variant, err := NormalizeVariant("  BRCA1 ", "\tc.181T>G\n", " p.Cys61Gly ")

	assert.NoError(t, err)
	assert.Equal(t, "BRCA1", variant.Gene)
	assert.Equal(t, "c.181T>G", variant.CdnaChange)
	assert.Equal(t, "p.Cys61Gly", variant.ProteinChange)
}

func TestNormalizeVariantLeavesContentUntouched(t *testing.T) {
	// no semantic validation; odd notation passes through as-is
	variant, err := NormalizeVariant("not-a-gene", "whatever", "???")

	assert.NoError(t, err)
	assert.Equal(t, "not-a-gene", variant.Gene)
	assert.Equal(t, "whatever", variant.CdnaChange)
	assert.Equal(t, "???", variant.ProteinChange)
}

func TestNormalizeVariantRejectsEmptyFields(t *testing.T) {
	cases := []struct {
		name    string
		gene    string
		cdna    string
		protein string
		field   string
	}{
		{"empty gene", "", "c.181T>G", "p.Cys61Gly", "gene"},
		{"whitespace gene", "   ", "c.181T>G", "p.Cys61Gly", "gene"},
		{"empty cdna", "BRCA1", " \t ", "p.Cys61Gly", "cdnaChange"},
		{"empty protein", "BRCA1", "c.181T>G", "\n", "proteinChange"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			variant, err := NormalizeVariant(tc.gene, tc.cdna, tc.protein)

			assert.Nil(t, variant)

			var validationErr *cerrors.ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.Equal(t, cerrors.ReasonEmptyField, validationErr.Reason)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}
