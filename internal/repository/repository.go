package repository

import "errors"

// ErrNotFound is the storage-level miss signal. Usecases translate it into
// the caller-facing domain error for the entity in question.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a unique
// constraint the usecase's own pre-checks did not catch (lost race).
var ErrConflict = errors.New("unique constraint violated")
