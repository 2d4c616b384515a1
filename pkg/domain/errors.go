package domain

import "errors"

// ErrHexNotFound is returned by stores when an id resolves to nothing.
var ErrHexNotFound = errors.New("hex not found")

// ErrHexExists is returned when a creation would overwrite an existing hex.
var ErrHexExists = errors.New("hex already exists")

// ErrMalformedRecord marks a stored record that fails the hex schema.
var ErrMalformedRecord = errors.New("malformed hex record")
