// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package config holds the SDK configuration: catalogue endpoint and
// credentials, file server credentials, and the profile file handling.
package config

import "time"

// Secret is a string whose value must not leak into logs or error messages.
// Formatting a Secret always yields a placeholder; code that actually needs
// the value calls Reveal.
type Secret string

// Reveal returns the underlying value.
func (s Secret) Reveal() string { return string(s) }

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool { return s == "" }

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "***REDACTED***"
}

// MarshalJSON writes the placeholder, never the value. Persisting a secret
// goes through Reveal explicitly.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON reads the raw value.
func (s *Secret) UnmarshalJSON(data []byte) error {
	v := string(data)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}
	*s = Secret(v)
	return nil
}

// Config is the full SDK configuration.
type Config struct {
	Catalogue CatalogueConfig
	S3        S3Config
}

// CatalogueConfig describes how to reach the metadata catalogue.
type CatalogueConfig struct {
	// BaseURL of the catalogue API, e.g. "https://scicat.example.com/api/v3".
	BaseURL string
	// AccessToken is sent as a bearer token when set.
	AccessToken Secret
	// Username and Password are used by Login to obtain a token.
	Username string
	Password Secret
	// Timeout applies per request, 0 means no timeout.
	Timeout time.Duration
}

// S3Config describes the S3 compatible file server holding the data files.
type S3Config struct {
	AccessKey    string
	SecretKey    Secret
	SessionToken Secret
	Region       string
	EndpointURL  string
	Bucket       string
	// SourceFolderPattern is expanded into a dataset's source folder when the
	// dataset does not specify one; "{pid}" is replaced by the escaped PID.
	SourceFolderPattern string
}
