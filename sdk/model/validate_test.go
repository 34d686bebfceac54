// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

func TestParseTimeNow(t *testing.T) {
	before := time.Now().UTC()
	got, err := model.ParseTime("creation_time", "now")
	require.NoError(t, err)
	after := time.Now().UTC()

	assert.Equal(t, time.UTC, got.Location())
	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestParseTimeISO(t *testing.T) {
	got, err := model.ParseTime("creation_time", "2022-01-10T14:14:25Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 1, 10, 14, 14, 25, 0, time.UTC), got.UTC())

	_, err = model.ParseTime("creation_time", "2022-01-10")
	assert.NoError(t, err)
}

func TestParseTimeInvalid(t *testing.T) {
	_, err := model.ParseTime("end_time", "yesterday-ish")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_time", verr.Field)
}

func TestValidateEmailsList(t *testing.T) {
	got, err := model.ValidateEmails("contact_email", "a.person@example.com; other@example.org")
	require.NoError(t, err)
	assert.Equal(t, "a.person@example.com;other@example.org", got)
}

func TestValidateEmailsEmptyIsFine(t *testing.T) {
	got, err := model.ValidateEmails("owner_email", "")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestValidateEmailsRejectsBadAddress(t *testing.T) {
	_, err := model.ValidateEmails("contact_email", "a@example.com;not-an-email")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contact_email", verr.Field)
}

func TestValidateORCID(t *testing.T) {
	// checksum digit of this well-known sample ORCID is valid
	assert.NoError(t, model.ValidateORCID("orcid_of_owner", "https://orcid.org/0000-0002-1825-0097"))
	assert.NoError(t, model.ValidateORCID("orcid_of_owner", ""))
}

func TestValidateORCIDRejects(t *testing.T) {
	bad := []string{
		"0000-0002-1825-0097",                     // missing URL prefix
		"https://orcid.org/0000-0002-1825",        // too few blocks
		"https://orcid.org/0000-0002-1825-0098",   // wrong checksum digit
		"https://example.com/0000-0002-1825-0097", // wrong host
	}
	for _, v := range bad {
		assert.Error(t, model.ValidateORCID("orcid_of_owner", v), v)
	}
}

func TestValidateSize(t *testing.T) {
	assert.NoError(t, model.ValidateSize("size", 0))
	assert.NoError(t, model.ValidateSize("size", 123))
	assert.Error(t, model.ValidateSize("size", -1))
}
