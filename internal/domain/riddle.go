package domain

import (
	"fmt"
	"strings"
)

// CandidatePost is one listing entry pending confirmation against its thread.
type CandidatePost struct {
	Permalink string
	Title     string
	Author    string
	Score     int
	Validated bool
}

// ValidatedRiddle is a confirmed, displayable puzzle.
// PosterLoaded flips true when enrichment starts; PosterURL stays empty when
// no usable image was found.
type ValidatedRiddle struct {
	Title        string
	Answer       string
	Score        int
	PosterLoaded bool
	PosterURL    string
}

// SortMode selects the listing ordering for pool builds.
type SortMode string

const (
	SortAll   SortMode = "all"
	SortYear  SortMode = "year"
	SortMonth SortMode = "month"
	SortNew   SortMode = "new"
)

// ParseSortMode validates a user-supplied sort string.
func ParseSortMode(value string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(value))) {
	case SortAll:
		return SortAll, nil
	case SortYear:
		return SortYear, nil
	case SortMonth:
		return SortMonth, nil
	case SortNew:
		return SortNew, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", value)
}

// CleanAnswer normalizes a confirmed answer: whitespace trimmed, trailing
// runs of '?', '!' and '.' stripped. Idempotent.
func CleanAnswer(text string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), "?!."))
}
