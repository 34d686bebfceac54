// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

import "time"

// Attachment is the user facing shape of a small binary attached to a
// dataset, e.g. a thumbnail. Attachments have their own lifecycle and are
// uploaded and downloaded separately from data files.
type Attachment struct {
	Caption         string
	OwnerGroup      string
	AccessGroups    []string
	DatasetID       PID
	ID              string
	InstrumentGroup string
	ProposalID      string
	SampleID        string
	// Thumbnail holds the attachment body, typically a base64 data URL.
	Thumbnail string

	createdAt time.Time
	createdBy string
	updatedAt time.Time
	updatedBy string
}

// AttachmentFromDownload copies all fields from a download model, including
// the server assigned ones.
func AttachmentFromDownload(m DownloadAttachment) Attachment {
	a := Attachment{
		Caption:         m.Caption,
		OwnerGroup:      m.OwnerGroup,
		AccessGroups:    m.AccessGroups,
		ID:              m.ID,
		InstrumentGroup: m.InstrumentGroup,
		ProposalID:      m.ProposalID,
		SampleID:        m.SampleID,
		Thumbnail:       m.Thumbnail,
		createdBy:       m.CreatedBy,
		updatedBy:       m.UpdatedBy,
	}
	if m.DatasetID != nil {
		a.DatasetID = *m.DatasetID
	}
	if m.CreatedAt != nil {
		a.createdAt = *m.CreatedAt
	}
	if m.UpdatedAt != nil {
		a.updatedAt = *m.UpdatedAt
	}
	return a
}

// CreatedAt returns when the record was created on the server.
func (a Attachment) CreatedAt() time.Time { return a.createdAt }

// CreatedBy returns the user who created the record on the server.
func (a Attachment) CreatedBy() string { return a.createdBy }

// UpdatedAt returns when the record was last updated on the server.
func (a Attachment) UpdatedAt() time.Time { return a.updatedAt }

// UpdatedBy returns the user who last updated the record on the server.
func (a Attachment) UpdatedBy() string { return a.updatedBy }

// MakeUploadModel selects the writable fields into an upload model. Caption
// and owner group are required by the catalogue.
func (a Attachment) MakeUploadModel() (UploadAttachment, error) {
	if a.Caption == "" {
		return UploadAttachment{}, &MissingRequiredFieldError{Field: "caption"}
	}
	if a.OwnerGroup == "" {
		return UploadAttachment{}, &MissingRequiredFieldError{Field: "owner_group"}
	}
	m := UploadAttachment{
		Caption:         a.Caption,
		OwnerGroup:      a.OwnerGroup,
		AccessGroups:    a.AccessGroups,
		InstrumentGroup: a.InstrumentGroup,
		ProposalID:      a.ProposalID,
		SampleID:        a.SampleID,
		Thumbnail:       a.Thumbnail,
	}
	if !a.DatasetID.IsZero() {
		id := a.DatasetID
		m.DatasetID = &id
	}
	return m, nil
}
