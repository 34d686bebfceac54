// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

func TestRemotePathJoinInsertsSingleSlash(t *testing.T) {
	cases := []struct {
		left, right, want string
	}{
		{"/folder", "file.dat", "/folder/file.dat"},
		{"/folder/", "file.dat", "/folder/file.dat"},
		{"/folder", "/file.dat", "/folder/file.dat"},
		{"/folder/", "/file.dat", "/folder/file.dat"},
		{"s3://bucket/folder", "sub/file.dat", "s3://bucket/folder/sub/file.dat"},
	}
	for _, c := range cases {
		got := model.NewRemotePath(c.left).Join(c.right)
		assert.Equal(t, c.want, got.String(), "join(%q, %q)", c.left, c.right)
	}
}

func TestRemotePathName(t *testing.T) {
	assert.Equal(t, "file.dat", model.NewRemotePath("/folder/file.dat").Name())
	assert.Equal(t, "folder", model.NewRemotePath("/base/folder/").Name())
	assert.Equal(t, "file.dat", model.NewRemotePath("file.dat").Name())
}

func TestRemotePathParent(t *testing.T) {
	assert.Equal(t, "/base/folder", model.NewRemotePath("/base/folder/file.dat").Parent().String())
	assert.True(t, model.NewRemotePath("file.dat").Parent().IsZero())
}

func TestRemotePathSuffix(t *testing.T) {
	assert.Equal(t, ".dat", model.NewRemotePath("/folder/file.dat").Suffix())
	assert.Equal(t, ".gz", model.NewRemotePath("archive.tar.gz").Suffix())
	assert.Equal(t, "", model.NewRemotePath("/folder/README").Suffix())
	assert.Equal(t, "", model.NewRemotePath(".hidden").Suffix())
}
