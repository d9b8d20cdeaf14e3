// Package storage writes league tables to CSV files.
//
// Each division is saved as <label>.csv inside the output directory, which defaults
// to the current working directory. Files start with the fixed standings header
// and contain one comma-joined line per team. Fields are written verbatim without
// quoting, so values containing commas will not survive a round trip.
package storage
