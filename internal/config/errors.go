// Package config provides configuration management for the application.
package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoSources is returned when no sources are configured.
	ErrNoSources = errors.New("no sources configured")
	// ErrInvalidMaxRecords is returned when the record cap is negative.
	ErrInvalidMaxRecords = errors.New("invalid max records")
	// ErrFilterWithoutKeywords is returned when the keyword filter is
	// enabled with an empty keyword set.
	ErrFilterWithoutKeywords = errors.New("keyword filter enabled without keywords")
	// ErrSourceNameRequired is returned when a source has no name.
	ErrSourceNameRequired = errors.New("source name required")
	// ErrStaticSourceURLRequired is returned when a static source has no URL.
	ErrStaticSourceURLRequired = errors.New("static source requires a url")
	// ErrUnknownDriver is returned for an unrecognized source driver.
	ErrUnknownDriver = errors.New("unknown source driver")
)
