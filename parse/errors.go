package parse

import "errors"

// ErrMalformedNote indicates an onset or pitch field that is not a number,
// or a note record without both fields.
var ErrMalformedNote = errors.New("parse: malformed note record")
