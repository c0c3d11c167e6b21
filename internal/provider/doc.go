// Package provider holds the catalog of AI vendors that proxypal can hold
// credentials for.
//
// The catalog is a fixed table built once at package initialization. Each
// entry records which acquisition methods the vendor supports (OAuth device
// code, API key, credential file import) and where users obtain a key.
// Lookups are case-insensitive and accept a few vendor aliases
// ("google" for gemini, "github" for copilot, "anthropic" for claude).
//
// Secret format checks in this package are advisory: they return a
// *FormatWarning describing what looks off, and callers are expected to
// persist the secret anyway.
package provider
