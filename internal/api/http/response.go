package httpapi

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/render"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Response is the envelope of every analytics response.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`

	status int
}

func (rs *Response) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, rs.status)
	return nil
}

// OK wraps a computed report.
func OK(data any) render.Renderer {
	return &Response{Success: true, Data: data, status: http.StatusOK}
}

// Fail wraps err with the status its kind maps to.
func Fail(err error) render.Renderer {
	return &Response{Message: err.Error(), status: gerr.HTTPStatus(err)}
}

// ErrUnauthorized rejects a request without a valid bearer token.
func ErrUnauthorized(err error) render.Renderer {
	return &Response{Message: "unauthorized: " + err.Error(), status: http.StatusUnauthorized}
}

// respond renders data, or the classified error when err is set.
func respond(w http.ResponseWriter, r *http.Request, data any, err error) {
	if err != nil {
		if !gerr.IsValidation(err) {
			slog.Default().ErrorContext(r.Context(), "analytics request failed",
				slog.String("path", r.URL.Path),
				slog.String("err", err.Error()),
			)
		}
		render.Render(w, r, Fail(err))
		return
	}
	render.Render(w, r, OK(data))
}
