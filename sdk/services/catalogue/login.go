// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package catalogue

import (
	"context"
	"errors"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/config"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID          string `json:"id"`
	AccessToken string `json:"access_token"`
}

// Login exchanges a username and password for an access token. It tries the
// functional accounts endpoint first and falls back to the directory service
// endpoint, mirroring how the catalogue handles the two account kinds.
// Neither the password nor the token can appear in a returned error.
func (s *Service) Login(ctx context.Context, username string, password config.Secret) (config.Secret, error) {
	req := loginRequest{Username: username, Password: password.Reveal()}

	var resp loginResponse
	url := s.http.BuildURL("Users/login", "", nil)
	err := s.postJSON(ctx, "login", url, req, &resp)
	if err != nil {
		var ce *CommError
		if !errors.As(err, &ce) || ce.StatusCode < 400 || ce.StatusCode >= 500 {
			return "", err
		}
		url = s.http.BuildURL("auth/msad", "", nil)
		if err := s.postJSON(ctx, "login", url, req, &resp); err != nil {
			return "", err
		}
	}

	if resp.ID != "" {
		return config.Secret(resp.ID), nil
	}
	if resp.AccessToken != "" {
		return config.Secret(resp.AccessToken), nil
	}
	return "", &CommError{Op: "login", Err: errors.New("response contains no token")}
}
