package catalog

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// List handles GET /books
// @Summary List books
// @Description Return every book in catalog order
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("list books failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, map[string]any{"total": len(books)})
}

// GetByISBN handles GET /books/{isbn}
// @Summary Get book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{isbn} [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")
	b, err := h.svc.GetByISBN(r.Context(), isbn)
	if err != nil {
		log.Printf("get book failed: isbn=%s request_id=%s error=%v", isbn, httpx.RequestIDFrom(r), err)
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Create handles POST /books
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	b, ok := decodeBook(w, r)
	if !ok {
		return
	}
	if err := h.svc.Create(r.Context(), &b); err != nil {
		log.Printf("create book failed: isbn=%s request_id=%s error=%v", b.ISBN, httpx.RequestIDFrom(r), err)
		writeError(w, r, err)
		return
	}
	log.Printf("book created: isbn=%s by=%s", b.ISBN, httpx.UserIDFrom(r))
	httpx.JSONSuccessCreated(w, r, b)
}

// Update handles PUT /books
// @Summary Update a book
// @Description Merge the given fields into the stored book with the same isbn. Blank or non-positive fields keep their stored value.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodeBook(w, r)
	if !ok {
		return
	}
	merged, err := h.svc.Update(r.Context(), &patch)
	if err != nil {
		log.Printf("update book failed: isbn=%s request_id=%s error=%v", patch.ISBN, httpx.RequestIDFrom(r), err)
		writeError(w, r, err)
		return
	}
	log.Printf("book updated: isbn=%s by=%s", merged.ISBN, httpx.UserIDFrom(r))
	httpx.JSONSuccess(w, r, merged, nil)
}

// Delete handles DELETE /books/{isbn}
// @Summary Delete a book
// @Tags books
// @Param isbn path string true "Book ISBN"
// @Security BearerAuth
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{isbn} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")
	if err := h.svc.Delete(r.Context(), isbn); err != nil {
		log.Printf("delete book failed: isbn=%s request_id=%s error=%v", isbn, httpx.RequestIDFrom(r), err)
		writeError(w, r, err)
		return
	}
	log.Printf("book deleted: isbn=%s by=%s", isbn, httpx.UserIDFrom(r))
	httpx.JSONSuccessNoContent(w)
}

// Report handles GET /books/report
// @Summary Render the catalog report
// @Tags books
// @Produce html
// @Param type query string false "Report format" default(html)
// @Success 200 {string} string
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/report [get]
func (h *HTTPHandler) Report(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("type")
	rep, err := h.svc.Report(r.Context(), format)
	if err != nil {
		log.Printf("render report failed: type=%s request_id=%s error=%v", format, httpx.RequestIDFrom(r), err)
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", rep.ContentType+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rep.Content))
}

// decodeBook reads a book body. Price starts unset so an omitted price is
// distinguishable from zero.
func decodeBook(w http.ResponseWriter, r *http.Request) (entity.Book, bool) {
	b := entity.Book{Price: entity.UnsetPrice}
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return entity.Book{}, false
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return entity.Book{}, false
	}
	return b, true
}
