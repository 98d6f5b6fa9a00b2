package sanitation

import (
	"strings"

	"snpscope/console/models"
	"snpscope/console/models/cerrors"
)

/*
	Normalizes raw operator input into a canonical VariantRequest.
	Only presence is guaranteed here; the legality of the genomic
	notation itself is the backend's responsibility.
*/

func NormalizeVariant(gene string, cdnaChange string, proteinChange string) (*models.VariantRequest, error) {
	gene = strings.TrimSpace(gene)
	cdnaChange = strings.TrimSpace(cdnaChange)
	proteinChange = strings.TrimSpace(proteinChange)

	if gene == "" {
		return nil, cerrors.NewEmptyFieldError("gene")
	}
	if cdnaChange == "" {
		return nil, cerrors.NewEmptyFieldError("cdnaChange")
	}
	if proteinChange == "" {
		return nil, cerrors.NewEmptyFieldError("proteinChange")
	}

	return &models.VariantRequest{
		Gene:          gene,
		CdnaChange:    cdnaChange,
		ProteinChange: proteinChange,
	}, nil
}
