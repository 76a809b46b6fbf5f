package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/shopspring/decimal"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/platform/crypto"
)

// SampleBook returns a fresh valid book so callers can mutate it freely.
func SampleBook() entity.Book {
	return entity.Book{
		ISBN:     "978-0-13-110362-7",
		Title:    "The C Programming Language",
		Authors:  []string{"Brian W. Kernighan", "Dennis M. Ritchie"},
		Category: "programming",
		Year:     1988,
		Price:    decimal.RequireFromString("67.5"),
	}
}

// GenerateTestToken signs a token valid for one hour.
func GenerateTestToken(secret, subject, role string) string {
	token, _, _ := crypto.GenerateToken(secret, subject, role, time.Hour)
	return token
}

// GenerateExpiredToken signs a token that expired an hour ago.
func GenerateExpiredToken(secret, subject, role string) string {
	token, _, _ := crypto.GenerateToken(secret, subject, role, -time.Hour)
	return token
}

// NewRequest builds a test request with body encoded as JSON. A string
// body is sent verbatim.
func NewRequest(method, path string, body any) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		bodyBytes, _ := json.Marshal(b)
		reader = bytes.NewReader(bodyBytes)
	}
	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// NewRequestWithAuth is NewRequest plus a bearer token.
func NewRequestWithAuth(method, path string, body any, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
	Raw    string
}

// RecordHTTPResponse decodes a JSON body when one is present.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
		Raw:    string(bodyBytes),
	}
}

// ErrorCode extracts error.code from an error envelope.
func (r RecordResponse) ErrorCode() string {
	errBody, ok := r.Body["error"].(map[string]any)
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}
