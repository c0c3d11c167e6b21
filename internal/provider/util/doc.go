// Package util provides small helpers shared by the catalog, the CLI and the
// auth flows: environment lookups, terminal prompts, and token format checks.
package util
