package repositories

import "errors"

// ErrNotFound covers both a missing row and a row owned by someone else;
// owner-scoped queries cannot tell the two apart and must not try to.
var ErrNotFound = errors.New("not found or no permission")

var ErrUserNotFound = errors.New("user not found")
