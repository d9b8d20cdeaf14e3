// Package standings defines the league table record written by volleyzone-tables.
//
// A TeamStats value holds one row of a Volleyzone standings table as twelve
// trimmed text fields. Values are never converted to numbers so the upstream cell
// formatting survives into the CSV output unchanged.
package standings
