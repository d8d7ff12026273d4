package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories translate into domain errors
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// pgErrorCode returns the SQLSTATE of a server error, or "" for anything else
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError reports a missing project or parent row
func IsPgForeignKeyError(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

// IsPgInvalidTextError checks for malformed input such as a bad UUID literal
func IsPgInvalidTextError(err error) bool {
	return pgErrorCode(err) == codeInvalidText
}
