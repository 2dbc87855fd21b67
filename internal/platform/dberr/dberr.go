// Copyright (c) 2026 Truyen Thong. All rights reserved.
// Author: thai.dovan.mta@gmail.com

// Package dberr maps low-level PostgreSQL errors onto the application error
// taxonomy so that storage details never leak past the repository layer.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dothai/truyenthong/internal/platform/apperr"
)

// ErrNotFound is the standard error for a missing row.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap classifies a database error into a client-safe [apperr.AppError].
//
// The action string names the failed repository operation and travels with
// the wrapped cause for server-side logs only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.Unprocessable("Referenced resource does not exist")
		}
	}

	return apperr.Internal(&actionError{action: action, cause: err})
}

// actionError attaches the repository action name to the cause chain.
type actionError struct {
	action string
	cause  error
}

func (e *actionError) Error() string { return e.action + ": " + e.cause.Error() }
func (e *actionError) Unwrap() error { return e.cause }
