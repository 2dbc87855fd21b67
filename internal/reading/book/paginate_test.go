package book_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dothai/truyenthong/internal/reading/book"
)

/*
TestPaginate_Deterministic verifies that splitting is a pure function:
the same input always yields byte-identical output.
*/
func TestPaginate_Deterministic(t *testing.T) {
	raw := "<p>" + strings.Repeat("Điện Biên Phủ ", 200) + "</p><hr/><p>Thống nhất</p>"

	first := book.Paginate(raw, 300)
	second := book.Paginate(raw, 300)

	require.Equal(t, first, second)
}

/*
TestPaginate_SectionIsolation verifies that a section break is always a page
boundary: content from two sections never shares a page.
*/
func TestPaginate_SectionIsolation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"self_closing", "<p>A</p><hr/><p>B</p>"},
		{"plain", "<p>A</p><hr><p>B</p>"},
		{"spaced", "<p>A</p><hr /><p>B</p>"},
		{"uppercase", "<p>A</p><HR/><p>B</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := book.Paginate(tt.raw, 1200)

			require.Len(t, pages, 2)
			assert.Equal(t, "<p>A</p>", pages[0].HTML)
			assert.Equal(t, "<p>B</p>", pages[1].HTML)
			assert.Equal(t, 0, pages[0].Index)
			assert.Equal(t, 1, pages[1].Index)
		})
	}
}

/*
TestPaginate_EmptySectionsDropped verifies whitespace-only sections are not
emitted as pages.
*/
func TestPaginate_EmptySectionsDropped(t *testing.T) {
	pages := book.Paginate("<hr/>  \n <hr/><p>Nội dung</p><hr/>", 1200)

	require.Len(t, pages, 1)
	assert.Equal(t, "<p>Nội dung</p>", pages[0].HTML)
}

/*
TestPaginate_BudgetOnVisibleText verifies the budget counts visible runes,
not raw bytes: a tag-heavy section within budget stays on one page.
*/
func TestPaginate_BudgetOnVisibleText(t *testing.T) {
	// 10 visible characters wrapped in markup far longer than the budget.
	raw := strings.Repeat("<em><strong>a</strong></em>", 10)

	pages := book.Paginate(raw, 10)

	require.Len(t, pages, 1)
	assert.Equal(t, raw, pages[0].HTML)
}

/*
TestPaginate_OverflowSplitting verifies that an oversized section is split
into budget-bounded pages and that concatenating the pages restores the
section content.
*/
func TestPaginate_OverflowSplitting(t *testing.T) {
	var builder strings.Builder
	for i := 0; i < 20; i++ {
		builder.WriteString("<p>")
		builder.WriteString(strings.Repeat("x", 50))
		builder.WriteString("</p>")
	}
	raw := builder.String()

	pages := book.Paginate(raw, 120)
	require.Greater(t, len(pages), 1)

	var recombined strings.Builder
	for _, page := range pages {
		// Budget property: visible length within budget for every page,
		// since no single text run here exceeds it.
		visible := stripTags(page.HTML)
		assert.LessOrEqual(t, len(visible), 120)
		recombined.WriteString(page.HTML)
	}

	assert.Equal(t, raw, recombined.String())
}

/*
TestPaginate_TagSafety verifies no page ever contains a dangling '<' without
its matching '>': tags are never split across pages.
*/
func TestPaginate_TagSafety(t *testing.T) {
	raw := "<div class=\"story\"><p>" + strings.Repeat("lịch sử ", 100) + "</p><img src=\"/a.jpg\"/></div>"

	for _, budget := range []int{30, 100, 250} {
		pages := book.Paginate(raw, budget)

		for _, page := range pages {
			assert.Equal(t, strings.Count(page.HTML, "<"), strings.Count(page.HTML, ">"),
				"unbalanced tag delimiters in page %d at budget %d", page.Index, budget)
		}
	}
}

/*
TestPaginate_OversizedRunSoftBudget verifies the explicit edge case: a single
text run longer than the budget lands on its own page, unsplit.
*/
func TestPaginate_OversizedRunSoftBudget(t *testing.T) {
	long := strings.Repeat("a", 500)
	raw := "<p>short</p><p>" + long + "</p>"

	pages := book.Paginate(raw, 100)

	require.Len(t, pages, 2)
	assert.Contains(t, pages[0].HTML, "short")
	assert.Contains(t, pages[1].HTML, long)
}

/*
TestWrapPlainTextAsParagraphs covers the plain-text promotion convenience:
escaping, paragraph splitting, and intra-paragraph line breaks.
*/
func TestWrapPlainTextAsParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"two_paragraphs",
			"Đoạn một.\n\nĐoạn hai.",
			"<p>Đoạn một.</p><p>Đoạn hai.</p>",
		},
		{
			"line_break_within_paragraph",
			"Dòng một\nDòng hai",
			"<p>Dòng một<br/>Dòng hai</p>",
		},
		{
			"html_escaped",
			"1 < 2 & \"q\"",
			"<p>1 &lt; 2 &amp; &#34;q&#34;</p>",
		},
		{
			"blank_paragraphs_dropped",
			"A\n\n\n\n\nB",
			"<p>A</p><p>B</p>",
		},
		{
			"empty_input",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, book.WrapPlainTextAsParagraphs(tt.text))
		})
	}
}

// stripTags removes markup for visible-length assertions in tests.
func stripTags(markup string) string {
	var out strings.Builder
	inTag := false
	for _, r := range markup {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return out.String()
}
