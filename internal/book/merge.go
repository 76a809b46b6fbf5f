package book

import (
	"strings"

	"bookcatalog/internal/entity"
)

// Merge applies patch on top of base. The isbn always comes from patch; any
// other field keeps base's value unless patch carries a meaningful one. Zero
// and negative prices or years, blank strings and empty author lists are not
// meaningful, so a field can never be cleared through Merge.
func Merge(base, patch entity.Book) entity.Book {
	merged := entity.Book{
		ISBN:     patch.ISBN,
		Title:    base.Title,
		Authors:  append([]string(nil), base.Authors...),
		Category: base.Category,
		Year:     base.Year,
		Price:    base.Price,
	}

	if strings.TrimSpace(patch.Title) != "" {
		merged.Title = patch.Title
	}
	if patch.Price.Sign() > 0 {
		merged.Price = patch.Price
	}
	if strings.TrimSpace(patch.Category) != "" {
		merged.Category = patch.Category
	}
	if len(patch.Authors) > 0 {
		merged.Authors = append([]string(nil), patch.Authors...)
	}
	if patch.Year > 0 {
		merged.Year = patch.Year
	}
	return merged
}
