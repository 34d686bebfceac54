// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/config"
)

func TestSecretNeverFormatsItsValue(t *testing.T) {
	s := config.Secret("super-secret-token")

	assert.NotContains(t, s.String(), "super-secret-token")
	assert.NotContains(t, fmt.Sprintf("%v", s), "super-secret-token")
	assert.NotContains(t, fmt.Sprintf("%s", s), "super-secret-token")
	assert.NotContains(t, fmt.Sprintf("config: %+v", config.CatalogueConfig{AccessToken: s}), "super-secret-token")

	assert.Equal(t, "super-secret-token", s.Reveal())
}

func TestSecretEmpty(t *testing.T) {
	var s config.Secret
	assert.True(t, s.IsZero())
	assert.Equal(t, "", s.String())
}

func TestSecretJSONRedacts(t *testing.T) {
	raw, err := json.Marshal(config.Secret("tok"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tok")

	var back config.Secret
	require.NoError(t, json.Unmarshal([]byte(`"tok"`), &back))
	assert.Equal(t, "tok", back.Reveal())
}
