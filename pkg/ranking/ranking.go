// Package ranking assigns dense ranks to one page of a score-sorted dataset.
//
// Dense ranking gives tied scores the same rank and the next distinct score
// exactly one more. A page is ranked from two facts about the rows before
// it (the score right before the page and how many distinct scores precede
// it), so the full dataset never has to be loaded.
package ranking

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInconsistentBoundary is returned when a page after the first has
	// rows but nothing is known about the rows before it.
	ErrInconsistentBoundary = errors.New("missing boundary for a non-first page")
)

// Boundary describes the rows strictly before a page.
type Boundary struct {
	// PrecedingScore is the score of the row right before the page, nil on
	// the first page.
	PrecedingScore *int64
	// DistinctBefore is the number of distinct scores before the page.
	DistinctBefore int
}

// Offset returns the number of rows before the given 1-based page.
func Offset(page, size int) (int, error) {
	if err := validate(page, size); err != nil {
		return 0, err
	}
	return (page - 1) * size, nil
}

// StartRank returns the rank of the first row on the page.
func StartRank(page int, firstScore int64, b Boundary) (int, error) {
	if page == 1 {
		return 1, nil
	}
	if b.PrecedingScore == nil || b.DistinctBefore < 1 {
		return 0, fmt.Errorf("%w: page %d", ErrInconsistentBoundary, page)
	}
	if *b.PrecedingScore == firstScore {
		// the page continues the tie group already counted
		return b.DistinctBefore, nil
	}
	return b.DistinctBefore + 1, nil
}

// Assign returns the dense rank of every item on the page. Items must be
// sorted by score descending.
func Assign[T any](items []T, score func(T) int64, page, size int, b Boundary) ([]int, error) {
	if err := validate(page, size); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []int{}, nil
	}

	start, err := StartRank(page, score(items[0]), b)
	if err != nil {
		return nil, err
	}

	ranks := make([]int, len(items))
	ranks[0] = start
	for i := 1; i < len(items); i++ {
		if score(items[i]) == score(items[i-1]) {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = ranks[i-1] + 1
		}
	}

	return ranks, nil
}

// DenseRanks ranks a complete descending score list in one pass.
func DenseRanks(scores []int64) []int {
	ranks := make([]int, len(scores))
	for i := range scores {
		switch {
		case i == 0:
			ranks[i] = 1
		case scores[i] == scores[i-1]:
			ranks[i] = ranks[i-1]
		default:
			ranks[i] = ranks[i-1] + 1
		}
	}
	return ranks
}

// BoundaryOf computes the boundary of the page starting at offset from a
// fully materialized descending score list.
func BoundaryOf(scores []int64, offset int) Boundary {
	if offset <= 0 || len(scores) == 0 {
		return Boundary{}
	}
	if offset > len(scores) {
		offset = len(scores)
	}

	distinct := 0
	for i := 0; i < offset; i++ {
		if i == 0 || scores[i] != scores[i-1] {
			distinct++
		}
	}

	preceding := scores[offset-1]
	return Boundary{PrecedingScore: &preceding, DistinctBefore: distinct}
}

func validate(page, size int) error {
	if page < 1 {
		return fmt.Errorf("%w: page %d must be at least 1", ErrInvalidArgument, page)
	}
	if size < 1 {
		return fmt.Errorf("%w: page size %d must be at least 1", ErrInvalidArgument, size)
	}
	if page-1 > math.MaxInt/size {
		return fmt.Errorf("%w: page %d of size %d is out of range", ErrInvalidArgument, page, size)
	}
	return nil
}
