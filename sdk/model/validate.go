// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"net/mail"
	"strings"
	"time"
)

// Layouts accepted for datetime fields, tried in order. The first two cover
// what the catalogue emits; the rest cover common user input.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime converts a string to a time. The literal "now" resolves to the
// current UTC time; anything else must be ISO-8601 parseable.
func ParseTime(field, value string) (time.Time, error) {
	if value == "now" {
		return time.Now().UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{Field: field, Reason: "not a valid datetime: " + value}
}

// ValidateEmails checks a semicolon separated list of email addresses against
// RFC 5322 syntax and returns the normalized list.
func ValidateEmails(field, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	items := strings.Split(value, ";")
	for i, item := range items {
		addr, err := mail.ParseAddress(strings.TrimSpace(item))
		if err != nil {
			return "", &ValidationError{Field: field, Reason: "not a valid email: " + item}
		}
		items[i] = addr.Address
	}
	return strings.Join(items, ";"), nil
}

// ValidateORCID checks an ORCID URL including its checksum digit.
// See https://support.orcid.org/hc/en-us/articles/360006897674.
func ValidateORCID(field, value string) error {
	if value == "" {
		return nil
	}
	invalid := func() error {
		return &ValidationError{
			Field:  field,
			Reason: "not a valid ORCID, note that ORCIDs must be prefixed with 'https://orcid.org': " + value,
		}
	}
	i := strings.LastIndex(value, "/")
	if i < 0 || value[:i] != "https://orcid.org" {
		return invalid()
	}
	id := value[i+1:]
	blocks := strings.Split(id, "-")
	if len(blocks) != 4 {
		return invalid()
	}
	for _, b := range blocks {
		if len(b) != 4 {
			return invalid()
		}
	}
	if orcidChecksum(id) != id[len(id)-1:] {
		return invalid()
	}
	return nil
}

func orcidChecksum(id string) string {
	digits := strings.ReplaceAll(id, "-", "")
	total := 0
	for _, c := range digits[:len(digits)-1] {
		if c < '0' || c > '9' {
			return ""
		}
		total = (total + int(c-'0')) * 2
	}
	result := (12 - total%11) % 11
	if result == 10 {
		return "X"
	}
	return string(rune('0' + result))
}

// ValidateSize rejects negative byte counts.
func ValidateSize(field string, value int64) error {
	if value < 0 {
		return &ValidationError{Field: field, Reason: "size must not be negative"}
	}
	return nil
}
