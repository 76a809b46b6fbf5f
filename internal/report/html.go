package report

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"bookcatalog/internal/book"
	"bookcatalog/internal/entity"
)

const unknownAuthor = "Unknown Author"

const (
	htmlTableOpen = "<table border='1' style='border-collapse: collapse;'>"
	htmlHeader    = "<thead><tr><th>Title</th><th>Authors</th><th>Category</th><th>Year</th><th>Price</th></tr></thead>"
)

// htmlTable renders one row per book, in order, with every value escaped.
func htmlTable(books []entity.Book) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(htmlTableOpen)
		sb.WriteString(htmlHeader)
		sb.WriteString("<tbody>")
		for _, b := range books {
			authors := unknownAuthor
			if len(b.Authors) > 0 {
				authors = strings.Join(b.Authors, ", ")
			}

			sb.WriteString("<tr>")
			writeCell(&sb, b.Title)
			writeCell(&sb, authors)
			writeCell(&sb, b.Category)
			writeCell(&sb, strconv.Itoa(b.Year))
			writeCell(&sb, book.FormatPrice(b.Price))
			sb.WriteString("</tr>")
		}
		sb.WriteString("</tbody></table>")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func writeCell(sb *strings.Builder, value string) {
	sb.WriteString("<td>")
	sb.WriteString(templ.EscapeString(value))
	sb.WriteString("</td>")
}
