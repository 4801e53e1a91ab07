package preprocessing

// AddIntercept returns a copy of X with a leading column of ones. A model
// fitted on the result carries its intercept in coefficient 0.
func AddIntercept(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		r := make([]float64, len(row)+1)
		r[0] = 1
		copy(r[1:], row)
		out[i] = r
	}
	return out
}

// HasIntercept reports whether the first column of X is all ones.
func HasIntercept(X [][]float64) bool {
	if len(X) == 0 {
		return false
	}
	for _, row := range X {
		if len(row) == 0 || row[0] != 1 {
			return false
		}
	}
	return true
}
