// Package book holds the catalog's record store: the codec that maps XML
// book elements to entity.Book, the merge rules used by updates, and the
// storage backends behind the Repository contract.
package book

// Persisted document layout. Category is the only attribute; everything else
// is a child element, in this order.
const (
	TagBook      = "book"
	TagISBN      = "isbn"
	TagTitle     = "title"
	TagAuthor    = "author"
	TagYear      = "year"
	TagPrice     = "price"
	AttrCategory = "category"
)
