package book_test

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dothai/truyenthong/internal/platform/apperr"
	"github.com/dothai/truyenthong/internal/reading/book"
)

// fakeClock is a manually advanced time source for deterministic flip tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingMarker counts read-mark invocations.
type recordingMarker struct {
	mu     sync.Mutex
	events []book.ReadEvent
	done   chan struct{}
}

func newRecordingMarker() *recordingMarker {
	return &recordingMarker{done: make(chan struct{}, 8)}
}

func (m *recordingMarker) MarkRead(ctx context.Context, event book.ReadEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

func (m *recordingMarker) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// recordingReporter captures quiz result reports.
type recordingReporter struct {
	mu      sync.Mutex
	results []book.QuizResult
	done    chan struct{}
	err     error
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{done: make(chan struct{}, 8)}
}

func (r *recordingReporter) ReportResult(ctx context.Context, result book.QuizResult) error {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

var testQuestions = []book.Question{
	{ID: "q1", Prompt: "Năm thành lập?", Options: []string{"1945", "1954", "1975"}, CorrectIndex: 0},
	{ID: "q2", Prompt: "Chiến dịch?", Options: []string{"A", "B"}, CorrectIndex: 1},
}

func testDocument(withQuiz bool) book.Document {
	doc := book.Document{
		ID:        "doc-1",
		Title:     "Chặng đường 1945",
		StoryHTML: "<p>" + strings.Repeat("a", 100) + "</p><hr/><p>" + strings.Repeat("b", 100) + "</p>",
	}
	if withQuiz {
		doc.Questions = testQuestions
	}
	return doc
}

func testReader() *book.Reader {
	return &book.Reader{UserID: "u-1", UserName: "Nguyễn Văn An", Rank: "Thiếu úy", Unit: "d1"}
}

func openSession(t *testing.T, doc book.Document, reader *book.Reader, clock *fakeClock, marker book.ReadMarker, reporter book.ResultReporter) *book.Session {
	t.Helper()
	return book.NewSession(doc, reader, book.Config{
		PageCharBudget:  1200,
		TransitionDelay: 500 * time.Millisecond,
		Now:             clock.Now,
	}, marker, reporter, slog.Default())
}

/*
TestSession_OpensOnCover verifies the initial state after opening a document.
*/
func TestSession_OpensOnCover(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(false), nil, clock, nil, nil)

	view := session.Snapshot()
	assert.Equal(t, 0, view.CurrentIndex)
	assert.True(t, view.IsCover)
	assert.False(t, view.InTransition)
	assert.Equal(t, 3, view.TotalSpreads) // cover + two single-page spreads
	assert.False(t, view.HasQuiz)
	assert.Nil(t, view.Quiz)
}

/*
TestSession_NavigationClamping verifies that prev on the cover and next on
the last spread leave the index unchanged while still consuming a flip
window.
*/
func TestSession_NavigationClamping(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(false), nil, clock, nil, nil)

	view := session.Navigate(context.Background(), book.DirectionPrev)
	assert.True(t, view.InTransition, "a clamped move still consumes the lock cycle")

	clock.Advance(time.Second)
	view = session.Snapshot()
	assert.Equal(t, 0, view.CurrentIndex)
	assert.False(t, view.InTransition)

	// Walk to the end, then try to move past it.
	for i := 0; i < 5; i++ {
		session.Navigate(context.Background(), book.DirectionNext)
		clock.Advance(time.Second)
	}
	view = session.Snapshot()
	assert.Equal(t, view.TotalSpreads-1, view.CurrentIndex)

	session.Navigate(context.Background(), book.DirectionNext)
	clock.Advance(time.Second)
	assert.Equal(t, view.TotalSpreads-1, session.Snapshot().CurrentIndex)
}

/*
TestSession_TransitionGuard verifies that a navigate issued during an open
flip window has no effect on the committed index.
*/
func TestSession_TransitionGuard(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(false), nil, clock, nil, nil)

	session.Navigate(context.Background(), book.DirectionNext)

	// Window still open: these must be dropped.
	session.Navigate(context.Background(), book.DirectionNext)
	session.Navigate(context.Background(), book.DirectionNext)

	clock.Advance(time.Second)
	view := session.Snapshot()
	assert.Equal(t, 1, view.CurrentIndex, "only the first navigate may commit")
}

/*
TestSession_TransitionCommitsAfterDelay verifies the lazy-commit model: the
pending index becomes current once the window has elapsed.
*/
func TestSession_TransitionCommitsAfterDelay(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(false), nil, clock, nil, nil)

	view := session.Navigate(context.Background(), book.DirectionNext)
	assert.Equal(t, 0, view.CurrentIndex, "commit happens after the window, not at request time")
	assert.True(t, view.InTransition)

	clock.Advance(499 * time.Millisecond)
	assert.Equal(t, 0, session.Snapshot().CurrentIndex)

	clock.Advance(time.Millisecond)
	view = session.Snapshot()
	assert.Equal(t, 1, view.CurrentIndex)
	assert.False(t, view.InTransition)
}

/*
TestSession_ReadMarkOnce verifies the at-most-once read event: any number of
navigations in one session produce exactly one MarkRead call.
*/
func TestSession_ReadMarkOnce(t *testing.T) {
	clock := newFakeClock()
	marker := newRecordingMarker()
	session := openSession(t, testDocument(false), testReader(), clock, marker, nil)

	session.Navigate(context.Background(), book.DirectionNext)

	select {
	case <-marker.done:
	case <-time.After(2 * time.Second):
		t.Fatal("mark-read collaborator was never invoked")
	}

	// Keep flipping back and forth; no further events may fire.
	for i := 0; i < 4; i++ {
		clock.Advance(time.Second)
		session.Navigate(context.Background(), book.DirectionPrev)
		clock.Advance(time.Second)
		session.Navigate(context.Background(), book.DirectionNext)
	}

	assert.True(t, session.HasMarkedRead())
	assert.Equal(t, 1, marker.calls())

	event := marker.events[0]
	assert.Equal(t, "u-1", event.UserID)
	assert.Equal(t, "doc-1", event.DocumentID)
	assert.Equal(t, "Thiếu úy", event.Rank)
}

/*
TestSession_NoReadMarkForAnonymous verifies that anonymous sessions never
fire the read-history collaborator.
*/
func TestSession_NoReadMarkForAnonymous(t *testing.T) {
	clock := newFakeClock()
	marker := newRecordingMarker()
	session := openSession(t, testDocument(false), nil, clock, marker, nil)

	session.Navigate(context.Background(), book.DirectionNext)
	clock.Advance(time.Second)
	session.Navigate(context.Background(), book.DirectionNext)

	assert.False(t, session.HasMarkedRead())
	assert.Equal(t, 0, marker.calls())
}

/*
TestSession_JumpToQuiz verifies the immediate jump: no flip window, and the
read mark fires when jumping straight off the cover.
*/
func TestSession_JumpToQuiz(t *testing.T) {
	clock := newFakeClock()
	marker := newRecordingMarker()
	session := openSession(t, testDocument(true), testReader(), clock, marker, nil)

	view := session.JumpToQuiz(context.Background())
	assert.Equal(t, view.TotalSpreads-1, view.CurrentIndex)
	assert.True(t, view.IsQuizSpread)
	assert.False(t, view.InTransition)

	select {
	case <-marker.done:
	case <-time.After(2 * time.Second):
		t.Fatal("jumping off the cover must record the read event")
	}
	assert.Equal(t, 1, marker.calls())
}

/*
TestSession_JumpToQuizWithoutQuiz verifies the jump is a no-op for documents
without questions.
*/
func TestSession_JumpToQuizWithoutQuiz(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(false), nil, clock, nil, nil)

	view := session.JumpToQuiz(context.Background())
	assert.Equal(t, 0, view.CurrentIndex)
	assert.True(t, view.IsCover)
}

/*
TestSession_QuizOverride verifies that the open-time override can force the
quiz spread off even when questions exist.
*/
func TestSession_QuizOverride(t *testing.T) {
	clock := newFakeClock()
	off := false
	session := book.NewSession(testDocument(true), nil, book.Config{
		HasQuizOverride: &off,
		Now:             clock.Now,
	}, nil, nil, slog.Default())

	view := session.Snapshot()
	assert.False(t, view.HasQuiz)
	assert.Nil(t, view.Quiz)
}

/*
TestSession_CloseFreezesState verifies that navigation after Close has no
effect.
*/
func TestSession_CloseFreezesState(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(false), nil, clock, nil, nil)

	session.Close()
	session.Navigate(context.Background(), book.DirectionNext)
	clock.Advance(time.Second)

	assert.Equal(t, 0, session.Snapshot().CurrentIndex)
}

/*
TestSession_QuizScoring verifies score computation: one correct and one wrong
answer yield score 1, and the result is reported with the reader identity.
*/
func TestSession_QuizScoring(t *testing.T) {
	clock := newFakeClock()
	reporter := newRecordingReporter()
	session := openSession(t, testDocument(true), testReader(), clock, nil, reporter)

	require.NoError(t, session.SelectAnswer("q1", 0)) // correct
	require.NoError(t, session.SelectAnswer("q2", 0)) // wrong

	state, err := session.SubmitQuiz(context.Background())
	require.NoError(t, err)
	assert.Equal(t, book.QuizSubmitted, state.Phase)
	assert.Equal(t, 1, state.Score)

	select {
	case <-reporter.done:
	case <-time.After(2 * time.Second):
		t.Fatal("quiz result was never reported")
	}

	result := reporter.results[0]
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, "Chặng đường 1945", result.Topic)
	assert.Equal(t, "u-1", result.UserID)
}

/*
TestSession_QuizSubmitPrecondition verifies that submitting with an
unanswered question is rejected and the quiz stays in the answering phase.
*/
func TestSession_QuizSubmitPrecondition(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(true), testReader(), clock, nil, nil)

	require.NoError(t, session.SelectAnswer("q1", 0))

	state, err := session.SubmitQuiz(context.Background())
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Equal(t, book.QuizAnswering, state.Phase)
}

/*
TestSession_QuizSubmitRequiresAuth verifies that anonymous submission fails
with an authentication error without corrupting quiz state.
*/
func TestSession_QuizSubmitRequiresAuth(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(true), nil, clock, nil, nil)

	require.NoError(t, session.SelectAnswer("q1", 0))
	require.NoError(t, session.SelectAnswer("q2", 1))

	state, err := session.SubmitQuiz(context.Background())
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
	assert.Equal(t, book.QuizAnswering, state.Phase)
}

/*
TestSession_QuizRetry verifies that retry clears answers and score and
re-opens answering, and that selections after submit are ignored.
*/
func TestSession_QuizRetry(t *testing.T) {
	clock := newFakeClock()
	reporter := newRecordingReporter()
	session := openSession(t, testDocument(true), testReader(), clock, nil, reporter)

	require.NoError(t, session.SelectAnswer("q1", 0))
	require.NoError(t, session.SelectAnswer("q2", 1))

	state, err := session.SubmitQuiz(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, state.Score)

	// Locked after submission: this selection must not change anything.
	require.NoError(t, session.SelectAnswer("q1", 2))

	state = session.RetryQuiz()
	assert.Equal(t, book.QuizAnswering, state.Phase)
	assert.Equal(t, 0, state.Score)
	assert.Empty(t, state.Answers)
}

/*
TestSession_LastSelectionWins verifies answer overwriting before submission.
*/
func TestSession_LastSelectionWins(t *testing.T) {
	clock := newFakeClock()
	session := openSession(t, testDocument(true), testReader(), clock, nil, nil)

	require.NoError(t, session.SelectAnswer("q1", 2))
	require.NoError(t, session.SelectAnswer("q1", 0))
	require.NoError(t, session.SelectAnswer("q2", 1))

	state, err := session.SubmitQuiz(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, state.Score)
}
