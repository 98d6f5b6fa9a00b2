package classification

import (
	"snpscope/console/models/constants"
)

const (
	Unknown constants.Classification = ""

	Pathogenic constants.Classification = "Pathogenic"
	Benign     constants.Classification = "Benign"
)

// Probability band inside which a benign call is
// presented as a variant of uncertain significance
const (
	UncertainBandLower float64 = 0.3
	UncertainBandUpper float64 = 0.7
)

func CastToClassification(text string) constants.Classification {
	switch text {
	case "Pathogenic":
		return Pathogenic
	case "Benign":
		return Benign
	default:
		return Unknown
	}
}

func IsKnown(class constants.Classification) bool {
	return class == Pathogenic || class == Benign
}

// DisplayLabel layers the informal "Benign (VUS)" bucket over a benign
// call whose probability sits in the indeterminate band. The canonical
// classification enum stays two-valued; this is presentation only.
func DisplayLabel(class constants.Classification, probability float64) string {
	if class == Benign && probability >= UncertainBandLower && probability < UncertainBandUpper {
		return "Benign (VUS)"
	}
	return string(class)
}
