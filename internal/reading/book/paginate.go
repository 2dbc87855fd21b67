package book

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultPageCharBudget is the visible-character budget per page used when a
// session is opened without an explicit configuration.
const DefaultPageCharBudget = 1200

var (
	// sectionBreak matches an author-placed chapter break: a horizontal rule
	// in any casing, self-closing or not.
	sectionBreak = regexp.MustCompile(`(?i)<hr\s*/?>`)

	// tagRun matches one complete HTML tag.
	tagRun = regexp.MustCompile(`<[^>]*>`)

	// paragraphBreak splits plain text into paragraphs on blank lines.
	paragraphBreak = regexp.MustCompile(`\n{2,}`)
)

// Page is one fragment of split story content.
type Page struct {
	// Index is the zero-based position of the page within the document.
	Index int `json:"index"`
	// Section is the ordinal of the author-placed section the page belongs
	// to. A spread never pairs pages from different sections: a chapter
	// always opens on a fresh spread.
	Section int `json:"section"`
	// HTML is the fragment markup. Tags are never split across pages.
	HTML string `json:"html"`
}

// Paginate splits story markup into an ordered page list.
//
// The input is first split on section breaks ([sectionBreak]); a section
// boundary is always also a page boundary, so content from two sections
// never shares a page. Each section is then filled against maxCharsPerPage,
// where length is the visible-text rune count with tags stripped.
//
// The budget is a soft target: a single text run longer than the budget is
// emitted on its own page rather than split inside a word.
//
// Paginate is a pure function. Same input, same output, every call.
func Paginate(rawHTML string, maxCharsPerPage int) []Page {
	if maxCharsPerPage <= 0 {
		maxCharsPerPage = DefaultPageCharBudget
	}

	pages := make([]Page, 0, 8)
	sectionOrdinal := 0

	for _, section := range sectionBreak.Split(rawHTML, -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}

		if visibleLength(section) <= maxCharsPerPage {
			pages = append(pages, Page{Index: len(pages), Section: sectionOrdinal, HTML: section})
			sectionOrdinal++
			continue
		}

		for _, fragment := range splitSection(section, maxCharsPerPage) {
			pages = append(pages, Page{Index: len(pages), Section: sectionOrdinal, HTML: fragment})
		}
		sectionOrdinal++
	}

	return pages
}

// splitSection breaks one oversized section into budget-sized fragments.
//
// The section is tokenized into alternating tag and text runs. Text runs
// that would push the working buffer over the budget flush the buffer first;
// tag runs are always appended so no fragment ever ends inside a tag.
func splitSection(section string, budget int) []string {
	fragments := make([]string, 0, 4)

	var buffer strings.Builder
	bufferVisible := 0

	flush := func() {
		if buffer.Len() == 0 {
			return
		}
		fragments = append(fragments, buffer.String())
		buffer.Reset()
		bufferVisible = 0
	}

	for _, run := range tokenizeRuns(section) {
		if run.isTag {
			buffer.WriteString(run.text)
			continue
		}

		runLength := utf8.RuneCountInString(run.text)
		if bufferVisible+runLength > budget && buffer.Len() > 0 {
			flush()
		}

		buffer.WriteString(run.text)
		bufferVisible += runLength
	}

	flush()
	return fragments
}

// run is one tokenized slice of a section: either a complete tag or the text
// between tags.
type run struct {
	text  string
	isTag bool
}

// tokenizeRuns splits markup into alternating tag and text runs, preserving
// every byte of the input in order.
func tokenizeRuns(markup string) []run {
	runs := make([]run, 0, 16)
	cursor := 0

	for _, match := range tagRun.FindAllStringIndex(markup, -1) {
		if match[0] > cursor {
			runs = append(runs, run{text: markup[cursor:match[0]]})
		}
		runs = append(runs, run{text: markup[match[0]:match[1]], isTag: true})
		cursor = match[1]
	}

	if cursor < len(markup) {
		runs = append(runs, run{text: markup[cursor:]})
	}

	return runs
}

// visibleLength counts the runes a reader would see: markup with all tags
// stripped. Vietnamese text makes byte counting useless here.
func visibleLength(markup string) int {
	return utf8.RuneCountInString(tagRun.ReplaceAllString(markup, ""))
}

// WrapPlainTextAsParagraphs converts an explicitly-plain narrative field into
// paragraph markup suitable for [Paginate].
//
// Paragraphs are separated by runs of two or more newlines. Each paragraph is
// HTML-escaped first, single newlines inside a paragraph become explicit line
// breaks, and each paragraph is wrapped in a block element.
//
// This is a convenience for documents whose story was authored as plain
// text; it is not part of the paginator contract.
func WrapPlainTextAsParagraphs(text string) string {
	var builder strings.Builder

	for _, paragraph := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}

		escaped := html.EscapeString(paragraph)
		escaped = strings.ReplaceAll(escaped, "\n", "<br/>")

		builder.WriteString("<p>")
		builder.WriteString(escaped)
		builder.WriteString("</p>")
	}

	return builder.String()
}
