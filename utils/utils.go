package utils

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

func MaxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}

func ClampFloat(x float64, lower float64, upper float64) float64 {
	if x < lower {
		return lower
	}
	if x > upper {
		return upper
	}
	return x
}
