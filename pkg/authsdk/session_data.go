package authsdk

import (
	"context"
	"net/http"
)

// ViewData calls GET /v1/data. Requires: data.view
func (s *Session) ViewData(ctx context.Context) (*DataResponse, error) {
	return s.data(ctx, http.MethodGet, "data.view")
}

// EditData calls PUT /v1/data. Requires: data.edit
func (s *Session) EditData(ctx context.Context) (*DataResponse, error) {
	return s.data(ctx, http.MethodPut, "data.edit")
}

// DeleteData calls DELETE /v1/data. Requires: data.delete
func (s *Session) DeleteData(ctx context.Context) (*DataResponse, error) {
	return s.data(ctx, http.MethodDelete, "data.delete")
}

func (s *Session) data(ctx context.Context, method, scope string) (*DataResponse, error) {
	resp, err := s.doAuthRequest(ctx, method, "/v1/data", nil, nil, scope)
	if err != nil {
		return nil, err
	}

	var out DataResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
