// Package importer classifies credential files and extracts the provider and
// secret they carry.
//
// Four shapes are understood: JSON documents with an api_key style field,
// the equivalent YAML, dotenv files using well-known variable names, and
// Google service-account JSON. Detection looks at the file extension first
// and falls back to sniffing the content.
//
// Nothing in this package writes to disk; ParseFile only reads the file it
// is given.
package importer
