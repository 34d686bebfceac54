// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package model holds the wire models of the catalogue schema.
//
// Every logical entity exists in up to two shapes: a download model mirroring
// what the server sends (all fields optional, unknown fields ignored for
// forward compatibility) and an upload model holding only the fields a client
// may write. The user facing Dataset and File types live in the dataset
// package and convert to and from these models.
package model

import "time"

// DownloadDataset is a dataset record as received from the catalogue.
// Field names follow the wire schema (camelCase).
type DownloadDataset struct {
	PID                   *PID           `json:"pid,omitempty"`
	Type                  DatasetType    `json:"type,omitempty"`
	ContactEmail          string         `json:"contactEmail,omitempty"`
	CreationLocation      string         `json:"creationLocation,omitempty"`
	CreationTime          *time.Time     `json:"creationTime,omitempty"`
	InputDatasets         []PID          `json:"inputDatasets,omitempty"`
	Investigator          string         `json:"investigator,omitempty"`
	Owner                 string         `json:"owner,omitempty"`
	OwnerGroup            string         `json:"ownerGroup,omitempty"`
	PrincipalInvestigator string         `json:"principalInvestigator,omitempty"`
	SourceFolder          RemotePath     `json:"sourceFolder,omitempty"`
	UsedSoftware          []string       `json:"usedSoftware,omitempty"`
	AccessGroups          []string       `json:"accessGroups,omitempty"`
	Classification        string         `json:"classification,omitempty"`
	Comment               string         `json:"comment,omitempty"`
	DataFormat            string         `json:"dataFormat,omitempty"`
	DataQualityMetrics    int            `json:"dataQualityMetrics,omitempty"`
	Description           string         `json:"description,omitempty"`
	EndTime               *time.Time     `json:"endTime,omitempty"`
	InstrumentGroup       string         `json:"instrumentGroup,omitempty"`
	InstrumentID          string         `json:"instrumentId,omitempty"`
	IsPublished           bool           `json:"isPublished,omitempty"`
	JobLogData            string         `json:"jobLogData,omitempty"`
	JobParameters         map[string]any `json:"jobParameters,omitempty"`
	Keywords              []string       `json:"keywords,omitempty"`
	License               string         `json:"license,omitempty"`
	DatasetName           string         `json:"datasetName,omitempty"`
	OrcidOfOwner          string         `json:"orcidOfOwner,omitempty"`
	OwnerEmail            string         `json:"ownerEmail,omitempty"`
	ProposalID            string         `json:"proposalId,omitempty"`
	Relationships         []Relationship `json:"relationships,omitempty"`
	SampleID              string         `json:"sampleId,omitempty"`
	SharedWith            []string       `json:"sharedWith,omitempty"`
	SourceFolderHost      string         `json:"sourceFolderHost,omitempty"`
	Techniques            []Technique    `json:"techniques,omitempty"`
	ValidationStatus      string         `json:"validationStatus,omitempty"`
	ScientificMetadata    map[string]any `json:"scientificMetadata,omitempty"`

	// Server computed aggregates.
	NumberOfFiles         int   `json:"numberOfFiles,omitempty"`
	NumberOfFilesArchived int   `json:"numberOfFilesArchived,omitempty"`
	PackedSize            int64 `json:"packedSize,omitempty"`
	Size                  int64 `json:"size,omitempty"`

	// Server assigned bookkeeping.
	APIVersion string     `json:"version,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	CreatedBy  string     `json:"createdBy,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy  string     `json:"updatedBy,omitempty"`
	Lifecycle  *Lifecycle `json:"datasetlifecycle,omitempty"`
}

// UploadDataset is a dataset record as sent to the catalogue. A single struct
// covers both raw and derived datasets; which fields are legal for which type
// is governed by the field table in fields.go, not by separate structs.
type UploadDataset struct {
	Type                  DatasetType    `json:"type"`
	ContactEmail          string         `json:"contactEmail"`
	CreationTime          time.Time      `json:"creationTime"`
	Owner                 string         `json:"owner"`
	OwnerGroup            string         `json:"ownerGroup"`
	SourceFolder          RemotePath     `json:"sourceFolder"`
	CreationLocation      string         `json:"creationLocation,omitempty"`
	PrincipalInvestigator string         `json:"principalInvestigator,omitempty"`
	Investigator          string         `json:"investigator,omitempty"`
	InputDatasets         []PID          `json:"inputDatasets,omitempty"`
	UsedSoftware          []string       `json:"usedSoftware,omitempty"`
	AccessGroups          []string       `json:"accessGroups,omitempty"`
	Classification        string         `json:"classification,omitempty"`
	Comment               string         `json:"comment,omitempty"`
	DataFormat            string         `json:"dataFormat,omitempty"`
	DataQualityMetrics    int            `json:"dataQualityMetrics,omitempty"`
	Description           string         `json:"description,omitempty"`
	EndTime               *time.Time     `json:"endTime,omitempty"`
	InstrumentGroup       string         `json:"instrumentGroup,omitempty"`
	InstrumentID          string         `json:"instrumentId,omitempty"`
	IsPublished           bool           `json:"isPublished,omitempty"`
	JobLogData            string         `json:"jobLogData,omitempty"`
	JobParameters         map[string]any `json:"jobParameters,omitempty"`
	Keywords              []string       `json:"keywords,omitempty"`
	License               string         `json:"license,omitempty"`
	DatasetName           string         `json:"datasetName,omitempty"`
	OrcidOfOwner          string         `json:"orcidOfOwner,omitempty"`
	OwnerEmail            string         `json:"ownerEmail,omitempty"`
	ProposalID            string         `json:"proposalId,omitempty"`
	Relationships         []Relationship `json:"relationships,omitempty"`
	SampleID              string         `json:"sampleId,omitempty"`
	SharedWith            []string       `json:"sharedWith,omitempty"`
	SourceFolderHost      string         `json:"sourceFolderHost,omitempty"`
	Techniques            []Technique    `json:"techniques,omitempty"`
	ValidationStatus      string         `json:"validationStatus,omitempty"`
	ScientificMetadata    map[string]any `json:"scientificMetadata,omitempty"`

	// Aggregates computed by the SDK at upload time.
	NumberOfFiles         int   `json:"numberOfFiles"`
	NumberOfFilesArchived int   `json:"numberOfFilesArchived"`
	PackedSize            int64 `json:"packedSize,omitempty"`
	Size                  int64 `json:"size,omitempty"`
}

// DownloadDataFile describes one file inside a downloaded datablock.
type DownloadDataFile struct {
	Path string     `json:"path,omitempty"`
	Size int64      `json:"size,omitempty"`
	Time *time.Time `json:"time,omitempty"`
	Chk  string     `json:"chk,omitempty"`
	UID  string     `json:"uid,omitempty"`
	GID  string     `json:"gid,omitempty"`
	Perm string     `json:"perm,omitempty"`
}

// UploadDataFile describes one file inside an uploaded datablock.
type UploadDataFile struct {
	Path string    `json:"path"`
	Size int64     `json:"size"`
	Time time.Time `json:"time"`
	Chk  string    `json:"chk,omitempty"`
	UID  string    `json:"uid,omitempty"`
	GID  string    `json:"gid,omitempty"`
	Perm string    `json:"perm,omitempty"`
}

// DownloadOrigDatablock is an orig datablock record as received from the
// catalogue.
type DownloadOrigDatablock struct {
	ID              string             `json:"_id,omitempty"`
	DatasetID       *PID               `json:"datasetId,omitempty"`
	Size            int64              `json:"size,omitempty"`
	ChkAlg          string             `json:"chkAlg,omitempty"`
	DataFileList    []DownloadDataFile `json:"dataFileList,omitempty"`
	OwnerGroup      string             `json:"ownerGroup,omitempty"`
	AccessGroups    []string           `json:"accessGroups,omitempty"`
	InstrumentGroup string             `json:"instrumentGroup,omitempty"`
	CreatedAt       *time.Time         `json:"createdAt,omitempty"`
	CreatedBy       string             `json:"createdBy,omitempty"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty"`
	UpdatedBy       string             `json:"updatedBy,omitempty"`
}

// UploadOrigDatablock is an orig datablock record as sent to the catalogue.
type UploadOrigDatablock struct {
	DatasetID       PID              `json:"datasetId"`
	Size            int64            `json:"size"`
	ChkAlg          string           `json:"chkAlg,omitempty"`
	DataFileList    []UploadDataFile `json:"dataFileList"`
	OwnerGroup      string           `json:"ownerGroup,omitempty"`
	AccessGroups    []string         `json:"accessGroups,omitempty"`
	InstrumentGroup string           `json:"instrumentGroup,omitempty"`
}

// DownloadAttachment is an attachment record as received from the catalogue.
type DownloadAttachment struct {
	ID              string     `json:"id,omitempty"`
	DatasetID       *PID       `json:"datasetId,omitempty"`
	Caption         string     `json:"caption,omitempty"`
	Thumbnail       string     `json:"thumbnail,omitempty"`
	OwnerGroup      string     `json:"ownerGroup,omitempty"`
	AccessGroups    []string   `json:"accessGroups,omitempty"`
	InstrumentGroup string     `json:"instrumentGroup,omitempty"`
	ProposalID      string     `json:"proposalId,omitempty"`
	SampleID        string     `json:"sampleId,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy       string     `json:"updatedBy,omitempty"`
}

// UploadAttachment is an attachment record as sent to the catalogue.
type UploadAttachment struct {
	DatasetID       *PID     `json:"datasetId,omitempty"`
	Caption         string   `json:"caption"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	OwnerGroup      string   `json:"ownerGroup"`
	AccessGroups    []string `json:"accessGroups,omitempty"`
	InstrumentGroup string   `json:"instrumentGroup,omitempty"`
	ProposalID      string   `json:"proposalId,omitempty"`
	SampleID        string   `json:"sampleId,omitempty"`
}
