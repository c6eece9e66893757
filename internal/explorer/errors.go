// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explorer

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/pdiddy/cord-explorer/internal/dataset"
)

// ErrResponse is the JSON body of every API error.
type ErrResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
}

// Render implements render.Renderer.
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrBadRequest wraps a query parameter problem.
func ErrBadRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Bad request",
		ErrorText:      err.Error(),
	}
}

// ErrUnavailable reports that the dataset could not be loaded.
func ErrUnavailable(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusServiceUnavailable,
		StatusText:     "Dataset unavailable",
		ErrorText:      err.Error(),
	}
}

// ErrInternal reports an unexpected failure.
func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal error",
		ErrorText:      err.Error(),
	}
}

// errorFor maps a table load error to a response.
func errorFor(err error) render.Renderer {
	var dse *dataset.DataSourceError
	if errors.As(err, &dse) {
		return ErrUnavailable(err)
	}
	return ErrInternal(err)
}
