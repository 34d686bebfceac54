// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"time"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// OrigDatablock groups data files for registration with the catalogue.
// The SDK uploads a single datablock per dataset holding all its files;
// downloaded datasets may carry several.
type OrigDatablock struct {
	ChecksumAlgorithm string
	OwnerGroup        string
	AccessGroups      []string
	InstrumentGroup   string

	id        string
	datasetID model.PID
	createdAt time.Time
	createdBy string
	updatedAt time.Time
	updatedBy string

	files []*File
}

// OrigDatablockFromDownload rebuilds a datablock and its files from a
// download model. Files are in remote-only state.
func OrigDatablockFromDownload(m model.DownloadOrigDatablock) *OrigDatablock {
	ob := &OrigDatablock{
		ChecksumAlgorithm: m.ChkAlg,
		OwnerGroup:        m.OwnerGroup,
		AccessGroups:      m.AccessGroups,
		InstrumentGroup:   m.InstrumentGroup,
		id:                m.ID,
		createdBy:         m.CreatedBy,
		updatedBy:         m.UpdatedBy,
	}
	if m.DatasetID != nil {
		ob.datasetID = *m.DatasetID
	}
	if m.CreatedAt != nil {
		ob.createdAt = *m.CreatedAt
	}
	if m.UpdatedAt != nil {
		ob.updatedAt = *m.UpdatedAt
	}
	for _, fm := range m.DataFileList {
		ob.files = append(ob.files, FromDownloadModel(fm, m.ChkAlg))
	}
	return ob
}

// ID returns the server assigned record id, "" for new datablocks.
func (b *OrigDatablock) ID() string { return b.id }

// DatasetID returns the PID of the dataset this datablock belongs to.
func (b *OrigDatablock) DatasetID() model.PID { return b.datasetID }

// CreatedAt returns when the record was created on the server.
func (b *OrigDatablock) CreatedAt() time.Time { return b.createdAt }

// CreatedBy returns the user who created the record on the server.
func (b *OrigDatablock) CreatedBy() string { return b.createdBy }

// UpdatedAt returns when the record was last updated on the server.
func (b *OrigDatablock) UpdatedAt() time.Time { return b.updatedAt }

// UpdatedBy returns the user who last updated the record on the server.
func (b *OrigDatablock) UpdatedBy() string { return b.updatedBy }

// Files returns the files listed in the datablock. The returned slice is a
// copy but shares the File objects.
func (b *OrigDatablock) Files() []*File {
	out := make([]*File, len(b.files))
	copy(out, b.files)
	return out
}

// Size returns the total size of the listed files in bytes.
func (b *OrigDatablock) Size() int64 {
	var total int64
	for _, f := range b.files {
		total += f.Size()
	}
	return total
}

// makeOrigDatablock builds the single upload datablock for a dataset,
// computing missing checksums with the dataset's algorithm. Ownership fields
// default to the dataset's.
func makeOrigDatablock(d *Dataset, datasetID model.PID) (model.UploadOrigDatablock, error) {
	up := model.UploadOrigDatablock{
		DatasetID:       datasetID,
		Size:            d.Size(),
		ChkAlg:          d.ChecksumAlgorithm,
		OwnerGroup:      d.OwnerGroup,
		AccessGroups:    d.AccessGroups,
		InstrumentGroup: d.InstrumentGroup,
	}
	for _, f := range d.files {
		fm, err := f.MakeUploadModel(d.ChecksumAlgorithm)
		if err != nil {
			return model.UploadOrigDatablock{}, err
		}
		up.DataFileList = append(up.DataFileList, fm)
	}
	return up, nil
}

// MakeDatablockUploadModel builds the upload model of the datablock holding
// all files of the dataset. The dataset id usually comes from the create
// response rather than the dataset itself.
func (d *Dataset) MakeDatablockUploadModel(datasetID model.PID) (model.UploadOrigDatablock, error) {
	return makeOrigDatablock(d, datasetID)
}
