package models

// Package represents a built RPM package with its header metadata
type Package struct {
	// Core metadata
	Name         string
	Version      string
	Release      string
	Architecture string
	Summary      string
	Description  string
	Packager     string
	Homepage     string
	License      string
	Group        string
	Requires     []string
	BuildTime    int64

	// Lifecycle scripts keyed by hook name (pre, post, preun, postun)
	Scripts map[string]string

	// Payload
	PayloadCompressor string

	// File information
	Filename  string
	Size      int64
	SHA256Sum string
	SHA512Sum string
}
