// Package html provides a Normaliser for HTML page bodies.
// It strips tags, scripts and styles and decodes entities, leaving
// readable text.
package html
