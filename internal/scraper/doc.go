// Package scraper fetches and parses Volleyzone league tables.
//
// The Volleyzone competitions site renders its standings through a WordPress AJAX
// action. A form-encoded POST naming a competition id returns a JSON envelope whose
// CompTables field holds an HTML fragment; ParseTable turns the rows of that
// fragment marked with the tableContents class into standings.TeamStats records.
//
// Fetch failures are reported with the sentinel errors in errors.go so callers can
// tell a dropped connection from a malformed envelope. Some of them are attached
// as marks, so match them with Is from github.com/cockroachdb/errors.
package scraper
