package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/triplog/internal/domain"
)

// listParams are the query parameters accepted by GET /api/trips. The filter
// parameters are shared with /api/stats and the export endpoints.
type listParams struct {
	Date  *openapi_types.Date
	Month *string
	From  *openapi_types.Date
	To    *openapi_types.Date
	Q     *string
	Page  *int
	Limit *int
}

// bindListParams binds the query string the way generated server wrappers do.
// Malformed values are reported per parameter as a domain.FieldErrors.
func bindListParams(r *http.Request) (listParams, error) {
	var p listParams
	q := r.URL.Query()
	for k, vs := range q {
		if len(vs) == 1 && strings.TrimSpace(vs[0]) == "" {
			q.Del(k) // an empty form field means "not set"
		}
	}
	fe := domain.FieldErrors{}

	bind := func(name string, dest any, msg string) {
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			fe.Add(name, msg)
		}
	}
	bind("date", &p.Date, "date must be YYYY-MM-DD")
	bind("month", &p.Month, "month must be YYYY-MM")
	bind("from", &p.From, "From Date must be YYYY-MM-DD.")
	bind("to", &p.To, "To Date must be YYYY-MM-DD.")
	bind("q", &p.Q, "q must be a string")
	bind("page", &p.Page, "page must be an integer")
	bind("limit", &p.Limit, "limit must be an integer")

	return p, fe.Err()
}

// filter converts the bound parameters into a domain.Filter.
func (p listParams) filter() domain.Filter {
	var f domain.Filter
	if p.Date != nil {
		f.Date = p.Date.Format(domain.DateLayout)
	}
	if p.Month != nil {
		f.Month = strings.TrimSpace(*p.Month)
	}
	if p.From != nil {
		f.From = p.From.Format(domain.DateLayout)
	}
	if p.To != nil {
		f.To = p.To.Format(domain.DateLayout)
	}
	return f
}

func (p listParams) search() string {
	if p.Q == nil {
		return ""
	}
	return strings.TrimSpace(*p.Q)
}

// pathParam binds a required path parameter from the chi route.
func pathParam(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return v, nil
}

// errBodyTooLarge is returned by decodeJSON when the body exceeds the limit
// set by the body size middleware.
var errBodyTooLarge = errors.New("request body too large")

// decodeJSON decodes the request body into v. Unknown fields are ignored so
// older clients keep working.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: request body must be valid JSON", domain.ErrValidation)
	}
	return nil
}

// writeDecodeError reports a decodeJSON failure.
func (s *Server) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error(), nil)
		return
	}
	s.writeServiceError(w, r, err, "")
}

// flexString accepts a JSON string, number or null. Form values reach the
// validator as the text the user typed, whichever way the client encoded them.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*f = flexString(n.String())
	}
	return nil
}
