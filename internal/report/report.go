// Package report renders a list of books into a downloadable report.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"bookcatalog/internal/book"
	"bookcatalog/internal/entity"
)

// Format names a report output format.
type Format string

const (
	FormatHTML Format = "html"
)

var (
	// ErrUnsupportedFormat is returned for formats without a renderer.
	ErrUnsupportedFormat = errors.New("unsupported report format")

	// ErrNoBooks is returned when there is nothing to render.
	ErrNoBooks = fmt.Errorf("%w: no books available to generate the report", book.ErrInvalidArgument)
)

// Report is a rendered document and the content type it is served with.
type Report struct {
	ContentType string
	Content     string
}

type renderer struct {
	contentType string
	component   func(books []entity.Book) templ.Component
}

var renderers = map[Format]renderer{
	FormatHTML: {contentType: "text/html", component: htmlTable},
}

// ParseFormat maps a user supplied format name to a Format. Names are case
// insensitive and an empty name selects HTML.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatHTML, nil
	}
	f := Format(name)
	if _, ok := renderers[f]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// Render produces the report for books in the given format. Rows follow the
// order of books.
func Render(format Format, books []entity.Book) (Report, error) {
	r, ok := renderers[format]
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if len(books) == 0 {
		return Report{}, ErrNoBooks
	}
	var sb strings.Builder
	if err := r.component(books).Render(context.Background(), &sb); err != nil {
		return Report{}, fmt.Errorf("render %s report: %w", format, err)
	}
	return Report{ContentType: r.contentType, Content: sb.String()}, nil
}
