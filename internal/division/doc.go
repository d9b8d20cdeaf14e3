// Package division holds the ordered list of league divisions to export.
//
// A division pairs the label used for its CSV file name with the opaque Volleyzone
// competition id. Defaults returns the built-in list; Load reads a replacement list
// from a YAML file so that runs can target other competitions.
package division
