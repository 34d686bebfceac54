// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// PID identifies a record in the catalogue.
//
// The full ID consists of an optional prefix, identifying the catalogue
// instance, and the main identifier, separated by a "/":
//
//	prefix/identifier
//
// A PID is immutable; the zero value means "no PID assigned yet".
type PID struct {
	prefix string
	id     string
}

// NewPID builds a PID from its two components.
func NewPID(prefix, id string) PID {
	return PID{prefix: prefix, id: id}
}

// ParsePID splits a string at the first "/" into prefix and main identifier.
// A string without "/" yields a PID without prefix.
func ParsePID(s string) PID {
	pieces := strings.SplitN(s, "/", 2)
	if len(pieces) == 1 {
		return PID{id: pieces[0]}
	}
	return PID{prefix: pieces[0], id: pieces[1]}
}

// GeneratePID creates a new unique PID using UUIDv4.
func GeneratePID(prefix string) PID {
	return PID{prefix: prefix, id: uuid.NewString()}
}

// Prefix returns the part identifying the catalogue instance, if any.
func (p PID) Prefix() string { return p.prefix }

// ID returns the main identifier.
func (p PID) ID() string { return p.id }

// IsZero reports whether no PID has been assigned.
func (p PID) IsZero() bool { return p.prefix == "" && p.id == "" }

// WithoutPrefix returns a copy of the PID with the prefix removed.
func (p PID) WithoutPrefix() PID { return PID{id: p.id} }

func (p PID) String() string {
	if p.prefix != "" {
		return p.prefix + "/" + p.id
	}
	return p.id
}

func (p PID) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = ParsePID(s)
	return nil
}
