// Package normalisers provides implementations of the Normaliser interface
// for page body formats. Each normaliser turns an encoded body into plain
// searchable text.
//
// Normalisers are registered with the Registry at startup.
package normalisers
