package constants

import (
	"strings"
)

// Recyclable is the canonical recyclability verdict a record carries.
type Recyclable string

const (
	RecyclableYes         Recyclable = "Yes"
	RecyclableNo          Recyclable = "No"
	RecyclableConditional Recyclable = "Conditional"
)

var allRecyclable = []Recyclable{
	RecyclableYes,
	RecyclableNo,
	RecyclableConditional,
}

func RecyclableValues() []string {
	result := make([]string, len(allRecyclable))
	for i, r := range allRecyclable {
		result[i] = string(r)
	}
	return result
}

// CanonicalRecyclable maps loose model output ("yes", "Recyclable", "depends")
// onto one of the three canonical values. ok is false when nothing matched.
func CanonicalRecyclable(input string) (Recyclable, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]Recyclable{
		"y":              RecyclableYes,
		"true":           RecyclableYes,
		"recyclable":     RecyclableYes,
		"n":              RecyclableNo,
		"false":          RecyclableNo,
		"not recyclable": RecyclableNo,
		"non-recyclable": RecyclableNo,
		"partially":      RecyclableConditional,
		"partial":        RecyclableConditional,
		"depends":        RecyclableConditional,
		"maybe":          RecyclableConditional,
	}
	if r, ok := synonyms[normalized]; ok {
		return r, true
	}

	for _, r := range allRecyclable {
		if normalized == strings.ToLower(string(r)) {
			return r, true
		}
	}
	return "", false
}
