// Package parse converts SVG attribute text into values: numbers and
// number lists, colors, transform lists and path data.
package parse
