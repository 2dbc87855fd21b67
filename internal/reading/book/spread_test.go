package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dothai/truyenthong/internal/reading/book"
)

// makePages builds n pages belonging to a single section.
func makePages(n int) []book.Page {
	pages := make([]book.Page, n)
	for i := range pages {
		pages[i] = book.Page{Index: i, Section: 0, HTML: "<p>page</p>"}
	}
	return pages
}

/*
TestBuildSpreads_Total verifies the spread count formula:
ceil(pages/2) + cover + optional quiz.
*/
func TestBuildSpreads_Total(t *testing.T) {
	tests := []struct {
		name    string
		pages   int
		hasQuiz bool
		want    int
	}{
		{"empty_no_quiz", 0, false, 1},
		{"empty_with_quiz", 0, true, 2},
		{"one_page", 1, false, 2},
		{"two_pages", 2, false, 2},
		{"three_pages", 3, false, 3},
		{"four_pages_with_quiz", 4, true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := book.BuildSpreads(makePages(tt.pages), tt.hasQuiz)
			assert.Equal(t, tt.want, set.Total())
		})
	}
}

/*
TestSpreadSet_At verifies the index-to-spread mapping: cover at 0, contiguous
page pairs on content spreads, quiz trailing.
*/
func TestSpreadSet_At(t *testing.T) {
	set := book.BuildSpreads(makePages(3), true)
	require.Equal(t, 4, set.Total()) // cover + 2 content + quiz

	cover, err := set.At(0)
	require.NoError(t, err)
	assert.Equal(t, book.SpreadCover, cover.Kind)

	first, err := set.At(1)
	require.NoError(t, err)
	assert.Equal(t, book.SpreadContent, first.Kind)
	require.NotNil(t, first.Left)
	require.NotNil(t, first.Right)
	assert.Equal(t, 0, first.Left.Index)
	assert.Equal(t, 1, first.Right.Index)

	second, err := set.At(2)
	require.NoError(t, err)
	require.NotNil(t, second.Left)
	assert.Equal(t, 2, second.Left.Index)
	assert.Nil(t, second.Right, "odd page count leaves the right side absent")

	quiz, err := set.At(3)
	require.NoError(t, err)
	assert.Equal(t, book.SpreadQuiz, quiz.Kind)
}

/*
TestSpreadSet_QuizConsumesExtraIndex verifies that the quiz spread is an
additional trailing index, not a replacement for the last content spread.
*/
func TestSpreadSet_QuizConsumesExtraIndex(t *testing.T) {
	pages := makePages(4)

	without := book.BuildSpreads(pages, false)
	with := book.BuildSpreads(pages, true)

	assert.Equal(t, without.Total()+1, with.Total())

	last, err := with.At(with.Total() - 2)
	require.NoError(t, err)
	assert.Equal(t, book.SpreadContent, last.Kind)
	assert.Equal(t, with.Total()-2, with.LastContentIndex())
}

/*
TestSpreadSet_SectionAwarePairing verifies that a new section always opens on
a fresh spread: pages are paired only within their own section.
*/
func TestSpreadSet_SectionAwarePairing(t *testing.T) {
	pages := []book.Page{
		{Index: 0, Section: 0},
		{Index: 1, Section: 0},
		{Index: 2, Section: 0}, // odd tail of section 0
		{Index: 3, Section: 1},
		{Index: 4, Section: 1},
	}

	set := book.BuildSpreads(pages, false)
	require.Equal(t, 4, set.Total()) // cover + (0,1) + (2,-) + (3,4)

	tail, err := set.At(2)
	require.NoError(t, err)
	assert.Equal(t, 2, tail.Left.Index)
	assert.Nil(t, tail.Right)

	next, err := set.At(3)
	require.NoError(t, err)
	assert.Equal(t, 3, next.Left.Index)
	require.NotNil(t, next.Right)
	assert.Equal(t, 4, next.Right.Index)
}

/*
TestSpreadSet_OutOfRange verifies that invalid indices fail instead of
panicking. The session clamps, so this error is internal only.
*/
func TestSpreadSet_OutOfRange(t *testing.T) {
	set := book.BuildSpreads(makePages(2), false)

	_, err := set.At(-1)
	assert.Error(t, err)

	_, err = set.At(set.Total())
	assert.Error(t, err)
}

/*
TestSpreadSet_ExampleScenario walks the worked example from the reader
design: "<p>A</p><hr/><p>B</p>" at budget 1200 gives two isolated pages and
three spreads.
*/
func TestSpreadSet_ExampleScenario(t *testing.T) {
	pages := book.Paginate("<p>A</p><hr/><p>B</p>", 1200)
	require.Len(t, pages, 2)

	set := book.BuildSpreads(pages, false)
	assert.Equal(t, 3, set.Total())

	// The pages come from different sections, so each content spread holds
	// one lone page with the right side absent.
	first, err := set.At(1)
	require.NoError(t, err)
	assert.Equal(t, "<p>A</p>", first.Left.HTML)
	assert.Nil(t, first.Right)

	second, err := set.At(2)
	require.NoError(t, err)
	assert.Equal(t, "<p>B</p>", second.Left.HTML)
	assert.Nil(t, second.Right)
}
