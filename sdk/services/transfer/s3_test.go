// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/dataset"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/logging"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

func TestSourceFolderPrefersDatasetValue(t *testing.T) {
	tr := &S3Transfer{pattern: "/archive/{pid}", log: logging.Discard()}
	ds := dataset.New(model.DatasetTypeRaw)
	ds.SourceFolder = model.NewRemotePath("/data/explicit")

	folder, err := tr.SourceFolder(ds)
	require.NoError(t, err)
	assert.Equal(t, "/data/explicit", folder.String())
}

func TestSourceFolderExpandsPattern(t *testing.T) {
	tr := &S3Transfer{pattern: "/archive/{pid}", log: logging.Discard()}
	dm := model.DownloadDataset{Type: model.DatasetTypeRaw}
	pid := model.NewPID("PID.prefix", "1234")
	dm.PID = &pid
	ds, err := dataset.FromDownloadModels(dm, nil)
	require.NoError(t, err)

	folder, err := tr.SourceFolder(ds)
	require.NoError(t, err)
	assert.Equal(t, "/archive/PID.prefix-1234", folder.String())
}

func TestSourceFolderGeneratesIDForNewDataset(t *testing.T) {
	tr := &S3Transfer{pattern: "/archive/{pid}", log: logging.Discard()}
	ds := dataset.New(model.DatasetTypeRaw)

	a, err := tr.SourceFolder(ds)
	require.NoError(t, err)
	b, err := tr.SourceFolder(ds)
	require.NoError(t, err)

	assert.NotEqual(t, a.String(), b.String())
	assert.Contains(t, a.String(), "/archive/")
}

func TestSourceFolderWithoutPatternFails(t *testing.T) {
	tr := &S3Transfer{log: logging.Discard()}
	_, err := tr.SourceFolder(dataset.New(model.DatasetTypeRaw))
	assert.Error(t, err)
}

func TestBucketAndKeyFromS3URL(t *testing.T) {
	tr := &S3Transfer{log: logging.Discard()}
	bucket, key, err := tr.bucketAndKey(model.NewRemotePath("s3://mybucket/folder/file.dat"))
	require.NoError(t, err)
	assert.Equal(t, "mybucket", bucket)
	assert.Equal(t, "folder/file.dat", key)
}

func TestBucketAndKeyDefaultsToConfiguredBucket(t *testing.T) {
	tr := &S3Transfer{bucket: "scicat-data", log: logging.Discard()}
	bucket, key, err := tr.bucketAndKey(model.NewRemotePath("/folder/file.dat"))
	require.NoError(t, err)
	assert.Equal(t, "scicat-data", bucket)
	assert.Equal(t, "folder/file.dat", key)
}

func TestUploadRefusesExistingRemoteFile(t *testing.T) {
	local := filepath.Join(t.TempDir(), "file1.dat")
	require.NoError(t, os.WriteFile(local, []byte("contents"), 0o644))
	f, err := dataset.FromLocal(local)
	require.NoError(t, err)

	conn := &s3UploadConnection{
		transfer: &S3Transfer{bucket: "scicat-data", log: logging.Discard()},
		folder:   model.NewRemotePath("/data/hex"),
		existing: map[string]struct{}{"file1.dat": {}},
	}

	_, err = conn.Upload(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
	var uerr *FileUploadError
	assert.ErrorAs(t, err, &uerr)
}

func TestBucketAndKeyErrors(t *testing.T) {
	tr := &S3Transfer{log: logging.Discard()}

	_, _, err := tr.bucketAndKey(model.NewRemotePath("/folder/file.dat"))
	assert.Error(t, err, "no bucket configured")

	_, _, err = tr.bucketAndKey(model.NewRemotePath("s3://bucketonly"))
	assert.Error(t, err, "malformed S3 path")
}
