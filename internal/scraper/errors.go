package scraper

import crerr "github.com/cockroachdb/errors"

var (
	// ErrRequest marks failures sending the request or reading the response.
	ErrRequest = crerr.New("table request failed")
	// ErrUnexpectedStatus marks a non-2xx response from the endpoint.
	ErrUnexpectedStatus = crerr.New("unexpected status code")
	// ErrDecode marks a response body that is not valid JSON.
	ErrDecode = crerr.New("invalid JSON response")
	// ErrMissingField marks an envelope without the CompTables field.
	ErrMissingField = crerr.New("missing field")
	// ErrWrongType marks a CompTables field that is not a string.
	ErrWrongType = crerr.New("wrong field type")
	// ErrParse marks an HTML fragment that could not be read.
	ErrParse = crerr.New("parsing HTML")
)
