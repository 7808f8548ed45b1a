// Package types defines the prompt catalog entities, the static tag taxonomy,
// the Store interface, and the standard errors shared by every promptlib
// component.
package types
