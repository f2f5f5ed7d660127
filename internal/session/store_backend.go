// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/backend"
)

// BackendAuthenticator signs in through POST /api/auth/login.
type BackendAuthenticator struct {
	client *backend.Client
}

func NewBackendAuthenticator(client *backend.Client) *BackendAuthenticator {
	return &BackendAuthenticator{client: client}
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	Data        *struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	} `json:"data"`
}

func (response loginResponse) token() string {
	for _, candidate := range []string{response.Token, response.AccessToken} {
		if candidate != "" {
			return candidate
		}
	}
	if response.Data != nil {
		if response.Data.Token != "" {
			return response.Data.Token
		}
		return response.Data.AccessToken
	}
	return ""
}

func (authenticator *BackendAuthenticator) Login(context context.Context, email, password string) (string, error) {
	var response loginResponse
	body := map[string]string{"email": email, "password": password}

	if err := authenticator.client.Post(context, "/api/auth/login", body, &response); err != nil {
		return "", err
	}

	token := response.token()
	if token == "" {
		return "", apperr.BackendUnavailable(errors.New("backend: login response carried no token"))
	}
	return token, nil
}
