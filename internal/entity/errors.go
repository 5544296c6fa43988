package entity

import "errors"

// ErrNotFound is returned by repositories when the targeted row does not
// exist. Handlers translate it to a 404; it must never escape as a 500.
var ErrNotFound = errors.New("record not found")
