package book

import "fmt"

// SpreadKind discriminates the three spread shapes a reader can land on.
type SpreadKind string

const (
	// SpreadCover is the synthetic front cover at index 0.
	SpreadCover SpreadKind = "cover"
	// SpreadContent holds one or two contiguous content pages.
	SpreadContent SpreadKind = "content"
	// SpreadQuiz is the trailing quiz spread, present iff the document has
	// at least one question.
	SpreadQuiz SpreadKind = "quiz"
)

// Spread is one navigable unit of the open book: two facing pages.
type Spread struct {
	Index int        `json:"index"`
	Kind  SpreadKind `json:"kind"`

	// Left and Right are populated for content spreads only. Right is nil
	// when the left page's section ends after an odd number of pages: a new
	// section always opens on a fresh spread.
	Left  *Page `json:"left,omitempty"`
	Right *Page `json:"right,omitempty"`
}

// pagePair references the pages of one content spread. right is -1 when the
// right side is absent.
type pagePair struct {
	left  int
	right int
}

// SpreadSet maps a flat page list into the spread index space: cover, then
// one content spread per page pair, then the optional quiz.
//
// Pairing is section-aware: two pages share a spread only when they are
// contiguous AND belong to the same section, so a section that splits into
// an odd page count leaves its last spread half-open and the next section
// starts on a new spread.
//
// A SpreadSet is immutable after construction and safe for concurrent reads.
type SpreadSet struct {
	pages   []Page
	pairs   []pagePair
	hasQuiz bool
	total   int
}

// BuildSpreads computes the spread index space for a page list.
func BuildSpreads(pages []Page, hasQuiz bool) *SpreadSet {
	pairs := make([]pagePair, 0, (len(pages)+1)/2)

	for i := 0; i < len(pages); {
		pair := pagePair{left: i, right: -1}
		if i+1 < len(pages) && pages[i+1].Section == pages[i].Section {
			pair.right = i + 1
			i += 2
		} else {
			i++
		}
		pairs = append(pairs, pair)
	}

	total := 1 + len(pairs)
	if hasQuiz {
		total++
	}

	return &SpreadSet{pages: pages, pairs: pairs, hasQuiz: hasQuiz, total: total}
}

// Total returns the number of navigable spreads, cover and quiz included.
func (s *SpreadSet) Total() int {
	return s.total
}

// HasQuiz reports whether the final spread is a quiz spread.
func (s *SpreadSet) HasQuiz() bool {
	return s.hasQuiz
}

// At returns the spread at the given index.
//
// Out-of-range access is an internal error: the session clamps every
// navigation target, so this error never reaches a client.
func (s *SpreadSet) At(index int) (Spread, error) {
	if index < 0 || index >= s.total {
		return Spread{}, fmt.Errorf("book: spread index %d out of range [0,%d)", index, s.total)
	}

	if index == 0 {
		return Spread{Index: 0, Kind: SpreadCover}, nil
	}

	if s.hasQuiz && index == s.total-1 {
		return Spread{Index: index, Kind: SpreadQuiz}, nil
	}

	pair := s.pairs[index-1]
	spread := Spread{
		Index: index,
		Kind:  SpreadContent,
		Left:  &s.pages[pair.left],
	}

	if pair.right >= 0 {
		spread.Right = &s.pages[pair.right]
	}

	return spread, nil
}

// LastContentIndex returns the index of the final content spread, or 0 when
// the document has no pages at all.
func (s *SpreadSet) LastContentIndex() int {
	return len(s.pairs)
}
