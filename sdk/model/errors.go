// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

import "fmt"

// ValidationError reports a field value that fails its format, type or range
// check during model conversion. It is raised synchronously at the conversion
// boundary, never deferred.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation of field %q failed: %s", e.Field, e.Reason)
}

// MissingRequiredFieldError reports a required field that is unset when
// constructing an upload model.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("required field %q is not set", e.Field)
}
