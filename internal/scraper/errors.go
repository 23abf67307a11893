package scraper

import (
	"errors"
	"fmt"
)

var (
	// ErrRowTooNarrow is returned when a table row has fewer cells than its
	// layout requires.
	ErrRowTooNarrow = errors.New("table row has too few cells")

	// ErrFightBeforeSection is returned when a fight row precedes every
	// section header of a fight card.
	ErrFightBeforeSection = errors.New("fight row before any fight card section")

	// ErrAmbiguousFightCard is returned when a fight card repeats a section title.
	ErrAmbiguousFightCard = errors.New("ambiguous fight card")
)

// DuplicateSectionError reports the section title that appeared twice
type DuplicateSectionError struct {
	Title string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("%v: duplicate section %q", ErrAmbiguousFightCard, e.Title)
}

func (e *DuplicateSectionError) Unwrap() error {
	return ErrAmbiguousFightCard
}
