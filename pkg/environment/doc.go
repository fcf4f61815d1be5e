// Package environment defines the application environment enumeration and
// context helpers for propagating it through request handling.
package environment
