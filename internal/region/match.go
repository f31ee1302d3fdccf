// Package region matches free-form place names (typed by the user or
// returned by a geocoder) against the API's province and city names.
package region

import (
	"strings"

	"golang.org/x/text/cases"
)

// Match finds the candidate that best corresponds to query, ignoring case.
// An exact match wins; otherwise the first candidate containing the query.
func Match(candidates []string, query string) (string, bool) {
	q := fold(query)
	if q == "" {
		return "", false
	}

	for _, c := range candidates {
		if fold(c) == q {
			return c, true
		}
	}
	for _, c := range candidates {
		if strings.Contains(fold(c), q) {
			return c, true
		}
	}
	return "", false
}

// fold normalizes s for caseless comparison. A new Caser per call keeps
// Match safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
