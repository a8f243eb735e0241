package domain

import "errors"

// ErrNotFound is returned by repositories and services when a record does not exist.
var ErrNotFound = errors.New("not found")

// Reference errors: a request named a related record that does not exist.
var (
	ErrInvalidConference = errors.New("invalid conference")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidLocation   = errors.New("invalid location")
	ErrInvalidState      = errors.New("invalid state")
)

// ErrNoPhoto is returned by a PhotoFinder when the search has no results.
var ErrNoPhoto = errors.New("no photo found")
