package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when an insert would violate the unique
// constraint on users.username.
var ErrDuplicateUsername = errors.New("username already exists")
