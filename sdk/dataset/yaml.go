// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
)

// metadataDocument is the on-disk shape of a saved dataset: the record in its
// wire field names plus the datablocks describing the files. Server assigned
// fields are included so a downloaded dataset can be saved and restored
// without talking to the catalogue.
type metadataDocument struct {
	Dataset    model.DownloadDataset         `json:"dataset"`
	Datablocks []model.DownloadOrigDatablock `json:"origDatablocks,omitempty"`
}

// SaveMetadata writes the dataset metadata and its file list to a YAML file.
// Local paths are not recorded; a restored dataset sees its files as
// remote-only.
func (d *Dataset) SaveMetadata(path string) error {
	doc := metadataDocument{Dataset: d.makeDownloadModel()}
	for _, f := range d.files {
		fm := model.DownloadDataFile{
			Path: f.RemotePath().String(),
			Size: f.Size(),
			Chk:  f.checksum,
			UID:  f.RemoteUID(),
			GID:  f.RemoteGID(),
			Perm: f.RemotePerm(),
		}
		if !f.CreationTime().IsZero() {
			t := f.CreationTime()
			fm.Time = &t
		}
		if len(doc.Datablocks) == 0 {
			doc.Datablocks = []model.DownloadOrigDatablock{{
				ChkAlg:     d.ChecksumAlgorithm,
				OwnerGroup: d.OwnerGroup,
			}}
		}
		doc.Datablocks[0].DataFileList = append(doc.Datablocks[0].DataFileList, fm)
		doc.Datablocks[0].Size += fm.Size
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cannot serialize dataset metadata: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}

// LoadMetadata restores a dataset from a file written by SaveMetadata.
func LoadMetadata(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc metadataDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse dataset metadata in %s: %w", path, err)
	}
	return FromDownloadModels(doc.Dataset, doc.Datablocks)
}

// makeDownloadModel serializes the full dataset state, writable and server
// assigned fields alike. Unlike MakeUploadModel it never validates; it is
// used for persistence, not for talking to the catalogue.
func (d *Dataset) makeDownloadModel() model.DownloadDataset {
	dm := model.DownloadDataset{
		Type:                  d.dtype,
		ContactEmail:          d.ContactEmail,
		CreationLocation:      d.CreationLocation,
		InputDatasets:         d.InputDatasets,
		Investigator:          d.Investigator,
		Owner:                 d.Owner,
		OwnerGroup:            d.OwnerGroup,
		PrincipalInvestigator: d.PrincipalInvestigator,
		SourceFolder:          d.SourceFolder,
		UsedSoftware:          d.UsedSoftware,
		AccessGroups:          d.AccessGroups,
		Classification:        d.Classification,
		Comment:               d.Comment,
		DataFormat:            d.DataFormat,
		DataQualityMetrics:    d.DataQualityMetrics,
		Description:           d.Description,
		InstrumentGroup:       d.InstrumentGroup,
		InstrumentID:          d.InstrumentID,
		IsPublished:           d.IsPublished,
		JobLogData:            d.JobLogData,
		JobParameters:         d.JobParameters,
		Keywords:              d.Keywords,
		License:               d.License,
		DatasetName:           d.Name,
		OrcidOfOwner:          d.OrcidOfOwner,
		OwnerEmail:            d.OwnerEmail,
		ProposalID:            d.ProposalID,
		Relationships:         d.Relationships,
		SampleID:              d.SampleID,
		SharedWith:            d.SharedWith,
		SourceFolderHost:      d.SourceFolderHost,
		Techniques:            d.Techniques,
		ValidationStatus:      d.ValidationStatus,
		ScientificMetadata:    d.Meta,
		NumberOfFiles:         d.NumberOfFiles(),
		NumberOfFilesArchived: d.NumberOfFilesArchived(),
		Size:                  d.Size(),
		APIVersion:            d.apiVersion,
		CreatedBy:             d.createdBy,
		UpdatedBy:             d.updatedBy,
		Lifecycle:             d.lifecycle,
	}
	if !d.CreationTime.IsZero() {
		t := d.CreationTime
		dm.CreationTime = &t
	}
	if !d.EndTime.IsZero() {
		t := d.EndTime
		dm.EndTime = &t
	}
	if !d.pid.IsZero() {
		pid := d.pid
		dm.PID = &pid
	}
	if !d.createdAt.IsZero() {
		t := d.createdAt
		dm.CreatedAt = &t
	}
	if !d.updatedAt.IsZero() {
		t := d.updatedAt
		dm.UpdatedAt = &t
	}
	return dm
}
