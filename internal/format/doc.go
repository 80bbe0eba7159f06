// Package format renders calculation results for a locale.
//
// Number, currency and percent rendering go through golang.org/x/text so
// grouping separators, decimal separators and currency symbols follow the
// locale's CLDR data. Human-readable error messages come from a message
// catalog keyed by the English text; Polish translations ship built in.
//
// Round gives a locale-neutral rendering of a value for machine-readable
// output.
package format
