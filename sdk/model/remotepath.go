// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"strings"
)

// RemotePath is a path on the remote file storage.
//
// Remote paths need not correspond to a regular filesystem path. They are any
// sequence of segments joined by forward slashes, e.g. a URL such as
// "s3://bucket/folder/file.dat". They never touch the local filesystem.
type RemotePath struct {
	path string
}

// NewRemotePath wraps a string as a RemotePath without modification.
func NewRemotePath(path string) RemotePath {
	return RemotePath{path: path}
}

// Join appends a segment, inserting exactly one "/" between the two parts.
func (p RemotePath) Join(other string) RemotePath {
	this := strings.TrimSuffix(p.path, "/")
	other = strings.TrimSuffix(strings.TrimPrefix(other, "/"), "/")
	if this == "" {
		return RemotePath{path: other}
	}
	return RemotePath{path: this + "/" + other}
}

// Name returns the final path segment with all directories removed.
func (p RemotePath) Name() string {
	trimmed := strings.TrimSuffix(p.path, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// Parent returns the path with the final segment removed.
func (p RemotePath) Parent() RemotePath {
	trimmed := strings.TrimSuffix(p.path, "/")
	i := strings.LastIndex(trimmed, "/")
	if i <= 0 {
		return RemotePath{}
	}
	return RemotePath{path: trimmed[:i]}
}

// Suffix returns the file extension including the leading period, or "".
func (p RemotePath) Suffix() string {
	name := p.Name()
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}

// IsZero reports whether the path is empty.
func (p RemotePath) IsZero() bool { return p.path == "" }

func (p RemotePath) String() string { return p.path }

func (p RemotePath) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.path)
}

func (p *RemotePath) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	p.path = s
	return nil
}
