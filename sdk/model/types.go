// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

import "fmt"

// DatasetType distinguishes the two dataset variants known to the catalogue.
type DatasetType string

const (
	DatasetTypeRaw     DatasetType = "raw"
	DatasetTypeDerived DatasetType = "derived"
)

// ParseDatasetType validates a dataset type string.
func ParseDatasetType(s string) (DatasetType, error) {
	switch DatasetType(s) {
	case DatasetTypeRaw, DatasetTypeDerived:
		return DatasetType(s), nil
	}
	return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown dataset type %q", s)}
}

// Technique describes a measurement technique linked to a dataset.
type Technique struct {
	PID  string `json:"pid"`
	Name string `json:"name"`
}

// Relationship links a dataset to another one.
type Relationship struct {
	PID          PID    `json:"pid"`
	Relationship string `json:"relationship"`
}

// Lifecycle holds archival and retrieval state of a dataset. All fields are
// maintained by the catalogue; the SDK never uploads a lifecycle.
type Lifecycle struct {
	Archivable             *bool  `json:"archivable,omitempty"`
	Publishable            *bool  `json:"publishable,omitempty"`
	Retrievable            *bool  `json:"retrievable,omitempty"`
	ArchiveStatusMessage   string `json:"archiveStatusMessage,omitempty"`
	RetrieveStatusMessage  string `json:"retrieveStatusMessage,omitempty"`
	ExportedTo             string `json:"exportedTo,omitempty"`
	IsOnCentralDisk        *bool  `json:"isOnCentralDisk,omitempty"`
	RetrieveIntegrityCheck *bool  `json:"retrieveIntegrityCheck,omitempty"`
}
