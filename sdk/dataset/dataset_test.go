// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset_test

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/dataset"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// newRawDataset builds a dataset that passes upload validation.
func newRawDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d := dataset.New(model.DatasetTypeRaw)
	d.ContactEmail = "ponder.stibbons@uu.am"
	d.CreationLocation = "UU/LargeHall"
	d.Owner = "ponder"
	d.OwnerGroup = "faculty"
	d.PrincipalInvestigator = "mustrum.ridcully@uu.am"
	d.SourceFolder = model.NewRemotePath("/data/hex")
	return d
}

func downloadedDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	pid := model.NewPID("PID.prefix", "1234-abcd")
	creation := time.Date(2022, 1, 10, 14, 14, 25, 0, time.UTC)
	now := time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC)
	dm := model.DownloadDataset{
		PID:                   &pid,
		Type:                  model.DatasetTypeRaw,
		ContactEmail:          "ponder.stibbons@uu.am",
		CreationLocation:      "UU/LargeHall",
		CreationTime:          &creation,
		Owner:                 "ponder",
		OwnerGroup:            "faculty",
		PrincipalInvestigator: "mustrum.ridcully@uu.am",
		SourceFolder:          model.NewRemotePath("/data/hex"),
		DatasetName:           "thaum measurement",
		ScientificMetadata:    map[string]any{"temperature": map[string]any{"value": "123", "unit": "K"}},
		APIVersion:            "3.9",
		CreatedAt:             &now,
		CreatedBy:             "ingestor",
		UpdatedAt:             &now,
		UpdatedBy:             "ingestor",
	}
	ft := time.Date(2022, 1, 10, 12, 0, 0, 0, time.UTC)
	blocks := []model.DownloadOrigDatablock{{
		ID:        "block-1",
		DatasetID: &pid,
		Size:      13 + 666,
		ChkAlg:    "md5",
		DataFileList: []model.DownloadDataFile{
			{Path: "file1.dat", Size: 13, Time: &ft, Chk: "0123456789abcdef"},
			{Path: "sub/file2.dat", Size: 666, Time: &ft},
		},
	}}
	d, err := dataset.FromDownloadModels(dm, blocks)
	require.NoError(t, err)
	return d
}

func TestNewDatasetDefaults(t *testing.T) {
	d := dataset.New(model.DatasetTypeDerived)
	assert.Equal(t, model.DatasetTypeDerived, d.Type())
	assert.Equal(t, "blake2b", d.ChecksumAlgorithm)
	assert.True(t, d.PID().IsZero())
	assert.WithinDuration(t, time.Now().UTC(), d.CreationTime, time.Minute)
	assert.Zero(t, d.NumberOfFiles())
}

func TestAddFilesRejectsDuplicateRemotePath(t *testing.T) {
	d := newRawDataset(t)
	require.NoError(t, d.AddLocalFiles(writeFile(t, "file1.dat", "contents")))

	other := writeFile(t, "file1.dat", "different contents")
	err := d.AddLocalFiles(other)
	require.ErrorIs(t, err, fs.ErrExist)
	assert.Equal(t, 1, d.NumberOfFiles())
}

func TestSizeIsComputedFromFiles(t *testing.T) {
	d := newRawDataset(t)
	require.NoError(t, d.AddLocalFiles(
		writeFile(t, "a.dat", "1234567"),
		writeFile(t, "b.dat", "123"),
	))
	assert.Equal(t, int64(10), d.Size())
	assert.Equal(t, 2, d.NumberOfFiles())
}

func TestReplaceOverridesWritableField(t *testing.T) {
	d := newRawDataset(t)
	got, err := d.Replace(map[string]any{"owner": "rincewind", "name": "new name"})
	require.NoError(t, err)
	assert.Equal(t, "rincewind", got.Owner)
	assert.Equal(t, "new name", got.Name)
	assert.Equal(t, d.OwnerGroup, got.OwnerGroup)
	assert.Equal(t, "ponder", d.Owner, "receiver must not change")
}

func TestReplaceRejectsReadOnlyAndUnknown(t *testing.T) {
	d := newRawDataset(t)
	_, err := d.Replace(map[string]any{"pid": "boom"})
	assert.ErrorContains(t, err, "read-only")

	_, err = d.Replace(map[string]any{"wizard_count": 7})
	assert.ErrorContains(t, err, "unknown")
}

func TestReplaceRejectsWrongType(t *testing.T) {
	d := newRawDataset(t)
	_, err := d.Replace(map[string]any{"owner": 42})
	assert.Error(t, err)
}

func TestReplaceParsesDatetimeStrings(t *testing.T) {
	d := newRawDataset(t)

	got, err := d.Replace(map[string]any{"creation_time": "2022-01-10T14:14:25Z"})
	require.NoError(t, err)
	assert.True(t, got.CreationTime.Equal(time.Date(2022, 1, 10, 14, 14, 25, 0, time.UTC)))

	got, err = d.Replace(map[string]any{"end_time": "now"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), got.EndTime, time.Minute)

	_, err = d.Replace(map[string]any{"creation_time": "yesterday-ish"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "creation_time", verr.Field)
}

func TestReplaceMetaAndChecksumAlgorithm(t *testing.T) {
	d := newRawDataset(t)
	got, err := d.Replace(map[string]any{
		"meta":               map[string]any{"a": 1},
		"checksum_algorithm": "sha256",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, got.Meta)
	assert.Equal(t, "sha256", got.ChecksumAlgorithm)
}

func TestAsNewClearsServerFields(t *testing.T) {
	d := downloadedDataset(t)
	require.False(t, d.PID().IsZero())

	fresh := d.AsNew()
	assert.True(t, fresh.PID().IsZero())
	assert.Zero(t, fresh.CreatedAt())
	assert.Empty(t, fresh.CreatedBy())
	assert.Nil(t, fresh.Lifecycle())
	assert.WithinDuration(t, time.Now().UTC(), fresh.CreationTime, time.Minute)

	assert.Equal(t, d.Owner, fresh.Owner)
	assert.Equal(t, d.NumberOfFiles(), fresh.NumberOfFiles())
	assert.False(t, d.PID().IsZero(), "receiver must not change")
}

func TestDeriveDefaults(t *testing.T) {
	d := downloadedDataset(t)
	derived, err := d.Derive()
	require.NoError(t, err)

	assert.Equal(t, model.DatasetTypeDerived, derived.Type())
	assert.Equal(t, []model.PID{d.PID()}, derived.InputDatasets)
	assert.Equal(t, d.ContactEmail, derived.ContactEmail)
	assert.Equal(t, d.Owner, derived.Owner)
	assert.True(t, derived.PID().IsZero())
	assert.Empty(t, derived.CreationLocation, "raw-only fields must not carry over")
	assert.Zero(t, derived.NumberOfFiles())
}

func TestDeriveKeepList(t *testing.T) {
	d := downloadedDataset(t)
	derived, err := d.Derive("owner", "name")
	require.NoError(t, err)
	assert.Equal(t, d.Owner, derived.Owner)
	assert.Equal(t, d.Name, derived.Name)
	assert.Empty(t, derived.ContactEmail)
}

func TestDeriveCopiesSliceFields(t *testing.T) {
	d := downloadedDataset(t)
	d.Keywords = []string{"magic", "thaum"}

	derived, err := d.Derive("keywords")
	require.NoError(t, err)
	require.Equal(t, []string{"magic", "thaum"}, derived.Keywords)

	d.Keywords[0] = "changed"
	assert.Equal(t, []string{"magic", "thaum"}, derived.Keywords,
		"derived dataset must not share backing arrays with its source")
}

func TestDeriveRejectsRawOnlyField(t *testing.T) {
	d := downloadedDataset(t)
	_, err := d.Derive("creation_location")
	assert.ErrorContains(t, err, "not allowed in derived datasets")
}

func TestDeriveNeedsPID(t *testing.T) {
	_, err := newRawDataset(t).Derive()
	assert.ErrorContains(t, err, "PID")
}

func TestMakeUploadModelHappyPath(t *testing.T) {
	d := newRawDataset(t)
	d.Name = "thaum measurement"
	d.Meta = map[string]any{"temperature": "123K"}
	require.NoError(t, d.AddLocalFiles(
		writeFile(t, "a.dat", "1234567"),
		writeFile(t, "b.dat", "123"),
	))

	up, err := d.MakeUploadModel()
	require.NoError(t, err)
	assert.Equal(t, model.DatasetTypeRaw, up.Type)
	assert.Equal(t, "thaum measurement", up.DatasetName)
	assert.Equal(t, int64(10), up.Size)
	assert.Equal(t, 2, up.NumberOfFiles)
	assert.Equal(t, 0, up.NumberOfFilesArchived)
	assert.Equal(t, d.Meta, up.ScientificMetadata)
}

func TestMakeUploadModelMissingRequiredField(t *testing.T) {
	d := newRawDataset(t)
	d.Owner = ""
	_, err := d.MakeUploadModel()
	var merr *model.MissingRequiredFieldError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "owner", merr.Field)
}

func TestMakeUploadModelRejectsForeignTypeField(t *testing.T) {
	d := newRawDataset(t)
	d.Investigator = "someone@uu.am"
	_, err := d.MakeUploadModel()
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "investigator", verr.Field)
}

func TestMakeUploadModelRejectsDownloadedDataset(t *testing.T) {
	_, err := downloadedDataset(t).MakeUploadModel()
	assert.ErrorContains(t, err, "PID")
}

func TestMakeUploadModelValidatesEmails(t *testing.T) {
	d := newRawDataset(t)
	d.ContactEmail = "not an email"
	_, err := d.MakeUploadModel()
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contact_email", verr.Field)
}

func TestFromDownloadModelsRebuildsFiles(t *testing.T) {
	d := downloadedDataset(t)

	assert.Equal(t, "PID.prefix/1234-abcd", d.PID().String())
	assert.Equal(t, "3.9", d.APIVersion())
	assert.Equal(t, "ingestor", d.CreatedBy())
	assert.Equal(t, "md5", d.ChecksumAlgorithm)

	files := d.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "file1.dat", files[0].RemotePath().String())
	assert.True(t, files[0].IsOnRemote())
	assert.False(t, files[0].IsOnLocal())
	assert.Equal(t, int64(13+666), d.Size())

	blocks := d.OrigDatablocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "block-1", blocks[0].ID())
	assert.Equal(t, int64(13+666), blocks[0].Size())
}

func TestFromDownloadModelsRejectsUnknownType(t *testing.T) {
	_, err := dataset.FromDownloadModels(model.DownloadDataset{Type: "weird"}, nil)
	assert.Error(t, err)
}

func TestMakeDatablockUploadModel(t *testing.T) {
	d := newRawDataset(t)
	d.ChecksumAlgorithm = "md5"
	require.NoError(t, d.AddLocalFiles(writeFile(t, "data.dat", "hello world\n")))

	pid := model.NewPID("PID.prefix", "xyz")
	block, err := d.MakeDatablockUploadModel(pid)
	require.NoError(t, err)
	assert.Equal(t, pid, block.DatasetID)
	assert.Equal(t, "md5", block.ChkAlg)
	assert.Equal(t, "faculty", block.OwnerGroup)
	assert.Equal(t, int64(12), block.Size)
	require.Len(t, block.DataFileList, 1)
	assert.Equal(t, "6f5902ac237024bdd0c176cb93063dc4", block.DataFileList[0].Chk)
}

func TestMetadataYAMLRoundTrip(t *testing.T) {
	d := downloadedDataset(t)
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, d.SaveMetadata(path))

	back, err := dataset.LoadMetadata(path)
	require.NoError(t, err)

	assert.Equal(t, d.PID(), back.PID())
	assert.Equal(t, d.Owner, back.Owner)
	assert.Equal(t, d.Name, back.Name)
	assert.Equal(t, d.SourceFolder, back.SourceFolder)
	assert.Equal(t, d.NumberOfFiles(), back.NumberOfFiles())
	assert.Equal(t, d.Size(), back.Size())
	assert.Equal(t, d.ChecksumAlgorithm, back.ChecksumAlgorithm)
}
