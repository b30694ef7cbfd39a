package model

import "fmt"

// CuisineType is the closed set of cuisine values a restaurant can be tagged
// with. The raw string form doubles as the GSI1 sort key, so the values here
// must match what is stored verbatim.
type CuisineType string

const (
	CuisineAmerican      CuisineType = "American"
	CuisineChinese       CuisineType = "Chinese"
	CuisineFrench        CuisineType = "French"
	CuisineGreek         CuisineType = "Greek"
	CuisineIndian        CuisineType = "Indian"
	CuisineItalian       CuisineType = "Italian"
	CuisineJapanese      CuisineType = "Japanese"
	CuisineKorean        CuisineType = "Korean"
	CuisineMediterranean CuisineType = "Mediterranean"
	CuisineMexican       CuisineType = "Mexican"
	CuisineMiddleEastern CuisineType = "Middle Eastern"
	CuisineThai          CuisineType = "Thai"
	CuisineVietnamese    CuisineType = "Vietnamese"
	CuisineOther         CuisineType = "Other"
)

var cuisineTypes = map[CuisineType]struct{}{
	CuisineAmerican:      {},
	CuisineChinese:       {},
	CuisineFrench:        {},
	CuisineGreek:         {},
	CuisineIndian:        {},
	CuisineItalian:       {},
	CuisineJapanese:      {},
	CuisineKorean:        {},
	CuisineMediterranean: {},
	CuisineMexican:       {},
	CuisineMiddleEastern: {},
	CuisineThai:          {},
	CuisineVietnamese:    {},
	CuisineOther:         {},
}

// ParseCuisineType validates a raw string against the closed set.
func ParseCuisineType(s string) (CuisineType, error) {
	ct := CuisineType(s)
	if _, ok := cuisineTypes[ct]; !ok {
		return "", fmt.Errorf("invalid cuisine type: %q", s)
	}
	return ct, nil
}

// IsValid reports whether the value belongs to the closed set.
func (c CuisineType) IsValid() bool {
	_, ok := cuisineTypes[c]
	return ok
}

func (c CuisineType) String() string {
	return string(c)
}
