package workbook

import "errors"

// ErrMalformed classifies every structural failure: a document that cannot
// be opened, an empty sheet, or a missing required column. Callers match it
// with errors.Is; the wrapped message carries the specific reason.
var ErrMalformed = errors.New("malformed workbook")
