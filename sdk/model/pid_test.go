// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

func TestParsePIDSplitsAtFirstSlash(t *testing.T) {
	pid := model.ParsePID("PID.prefix.a0b1/1234-5678/abcd")
	assert.Equal(t, "PID.prefix.a0b1", pid.Prefix())
	assert.Equal(t, "1234-5678/abcd", pid.ID())
	assert.Equal(t, "PID.prefix.a0b1/1234-5678/abcd", pid.String())
}

func TestParsePIDWithoutPrefix(t *testing.T) {
	pid := model.ParsePID("1234-5678")
	assert.Equal(t, "", pid.Prefix())
	assert.Equal(t, "1234-5678", pid.ID())
	assert.Equal(t, "1234-5678", pid.String())
}

func TestPIDZeroValue(t *testing.T) {
	var pid model.PID
	assert.True(t, pid.IsZero())
	assert.False(t, model.ParsePID("x").IsZero())
}

func TestPIDWithoutPrefix(t *testing.T) {
	pid := model.NewPID("prefix", "some-id")
	assert.Equal(t, "some-id", pid.WithoutPrefix().String())
	assert.Equal(t, "", pid.WithoutPrefix().Prefix())
}

func TestGeneratePIDIsUnique(t *testing.T) {
	a := model.GeneratePID("prefix")
	b := model.GeneratePID("prefix")
	assert.Equal(t, "prefix", a.Prefix())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestPIDJSONRoundTrip(t *testing.T) {
	pid := model.NewPID("PID.prefix", "1234")
	raw, err := json.Marshal(pid)
	require.NoError(t, err)
	assert.Equal(t, `"PID.prefix/1234"`, string(raw))

	var back model.PID
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, pid, back)
}
