package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
)

const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func optionalQuery(q url.Values, key string) *string {
	if v := q.Get(key); v != "" {
		return &v
	}
	return nil
}

func optionalIDQuery(q url.Values, key string, errs *validator.ValidationErrors) *int64 {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	id, ok := validator.ParsePositiveInt64(raw)
	if !ok {
		*errs = append(*errs, validator.ValidationError{Field: key, Message: key + " must be a positive number"})
		return nil
	}
	return &id
}

// pagination falls back to page 1 and limit 20 on missing or malformed values.
func pagination(q url.Values) (page, limit int) {
	page = 1
	if p := q.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	limit = 20
	if l := q.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	return page, limit
}
