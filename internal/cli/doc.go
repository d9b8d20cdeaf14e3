// Package cli implements the command-line interface for volleyzone-tables.
//
// The root command exports every configured division: it fetches the division's
// table from Volleyzone, parses the standings rows and writes <label>.csv into the
// optional output directory. The Runner drives that pipeline and stops at the
// first failure, leaving files already written for earlier divisions in place.
package cli
