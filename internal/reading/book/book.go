/*
Package book implements the interactive book engine used by the milestone
reader: HTML pagination, the two-page spread model, and the per-reader
session state machine with its embedded quiz.

Architecture:

  - Paginator: pure splitting of story markup into character-budgeted pages.
  - SpreadSet: maps the flat page list into cover/content/quiz spreads.
  - Session: mutable per-open-document state (position, transition lock,
    read-mark latch, quiz run).

The package owns no storage and no transport. Side effects (recording a read
event, reporting a quiz score) go through the small collaborator interfaces
below and are strictly best-effort: a failed collaborator call never blocks
or reverses navigation.
*/
package book

import (
	"context"
	"time"
)

// Document is the immutable reading subject for one session.
//
// StoryHTML is never mutated after the session is opened, so re-splitting a
// document always yields the same page list.
type Document struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle,omitempty"`
	YearLabel string     `json:"year_label,omitempty"`
	StoryHTML string     `json:"-"`
	Summary   string     `json:"summary,omitempty"`
	CoverURL  string     `json:"cover_url,omitempty"`
	AudioURL  string     `json:"audio_url,omitempty"`
	Questions []Question `json:"-"`
}

// HasQuiz reports whether the document carries at least one quiz question.
func (d Document) HasQuiz() bool {
	return len(d.Questions) > 0
}

// Question is one multiple-choice question embedded in a document.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"` // Never serialized to the reading client.
}

// Reader identifies the signed-in person holding the session.
//
// A nil *Reader means the session is anonymous: navigation works, but no
// read event is recorded and the quiz cannot be submitted.
type Reader struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Rank     string `json:"rank,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// # Collaborator Contracts

// ReadEvent is the payload handed to the read-history collaborator when a
// reader first moves past the cover.
type ReadEvent struct {
	UserID        string
	UserName      string
	Rank          string
	Unit          string
	DocumentID    string
	DocumentTitle string
}

// ReadMarker records that a reader opened a document.
//
// Implementations are expected to be idempotent per (user, document); the
// session additionally guarantees at most one call per open.
type ReadMarker interface {
	MarkRead(ctx context.Context, event ReadEvent) error
}

// QuizResult is the payload handed to the quiz-result collaborator after a
// successful submission. Score is computed locally and is authoritative for
// the reader-visible outcome; persisting it is telemetry.
type QuizResult struct {
	UserID         string
	UserName       string
	Rank           string
	Unit           string
	DocumentID     string
	Topic          string
	Score          int
	TotalQuestions int
	SubmittedAt    time.Time
}

// ResultReporter persists a submitted quiz result.
type ResultReporter interface {
	ReportResult(ctx context.Context, result QuizResult) error
}
