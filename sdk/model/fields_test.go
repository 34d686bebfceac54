// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/dataset"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

func TestDatasetFieldNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	seenWire := map[string]bool{}
	for _, f := range model.DatasetFields {
		assert.False(t, seen[f.Name], "duplicate field name %q", f.Name)
		assert.False(t, seenWire[f.ScicatName], "duplicate wire name %q", f.ScicatName)
		seen[f.Name] = true
		seenWire[f.ScicatName] = true
	}
}

func TestWritableFieldsMapToDatasetStruct(t *testing.T) {
	rt := reflect.TypeOf(dataset.Dataset{})
	for _, f := range model.DatasetFields {
		if f.ReadOnly {
			assert.Empty(t, f.GoName, "read-only field %q must not map to a struct field", f.Name)
			continue
		}
		require.NotEmpty(t, f.GoName, "writable field %q needs a struct mapping", f.Name)
		_, ok := rt.FieldByName(f.GoName)
		assert.True(t, ok, "field %q maps to missing struct field %q", f.Name, f.GoName)
	}
}

func TestRequiredFieldsPerType(t *testing.T) {
	requiredFor := func(dt model.DatasetType) []string {
		var out []string
		for _, f := range model.DatasetFields {
			if f.Required && f.UsedBy(dt) {
				out = append(out, f.Name)
			}
		}
		return out
	}

	assert.ElementsMatch(t, []string{
		"contact_email", "creation_location", "creation_time",
		"owner", "owner_group", "principal_investigator", "source_folder",
	}, requiredFor(model.DatasetTypeRaw))

	assert.ElementsMatch(t, []string{
		"contact_email", "creation_time", "input_datasets", "investigator",
		"owner", "owner_group", "source_folder", "used_software",
	}, requiredFor(model.DatasetTypeDerived))
}

func TestDatasetFieldByName(t *testing.T) {
	f, ok := model.DatasetFieldByName("owner_group")
	require.True(t, ok)
	assert.Equal(t, "ownerGroup", f.ScicatName)
	assert.True(t, f.Required)

	_, ok = model.DatasetFieldByName("no_such_field")
	assert.False(t, ok)
}
