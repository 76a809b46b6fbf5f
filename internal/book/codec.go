package book

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"bookcatalog/internal/entity"
)

// Decode reads a book element. Fields are read in document order and the
// first missing or malformed one is reported.
func Decode(el *etree.Element) (entity.Book, error) {
	if el == nil {
		return entity.Book{}, transcodeErr(TagBook, "book element is nil")
	}

	isbn := el.SelectElement(TagISBN)
	if isbn == nil {
		return entity.Book{}, transcodeErr(TagISBN, "missing required isbn element")
	}

	title := el.SelectElement(TagTitle)
	if title == nil {
		return entity.Book{}, transcodeErr(TagTitle, "missing required title element")
	}

	authorEls := el.SelectElements(TagAuthor)
	if len(authorEls) == 0 {
		return entity.Book{}, transcodeErr("authors", "missing required author elements")
	}
	authors := make([]string, 0, len(authorEls))
	for _, a := range authorEls {
		authors = append(authors, textOf(a))
	}

	category := el.SelectAttr(AttrCategory)
	if category == nil {
		return entity.Book{}, transcodeErr(AttrCategory, "missing required category attribute")
	}

	yearEl := el.SelectElement(TagYear)
	if yearEl == nil {
		return entity.Book{}, transcodeErr(TagYear, "missing required year element")
	}
	rawYear := textOf(yearEl)
	year, err := strconv.Atoi(strings.TrimSpace(rawYear))
	if err != nil {
		return entity.Book{}, transcodeErr(TagYear, "invalid year value: '%s'", rawYear)
	}

	priceEl := el.SelectElement(TagPrice)
	if priceEl == nil {
		return entity.Book{}, transcodeErr(TagPrice, "missing required price element")
	}
	rawPrice := textOf(priceEl)
	price, err := parsePrice(rawPrice)
	if err != nil {
		return entity.Book{}, transcodeErr(TagPrice, "invalid price value: '%s'", rawPrice)
	}

	return entity.Book{
		ISBN:     textOf(isbn),
		Title:    textOf(title),
		Authors:  authors,
		Category: category.Value,
		Year:     year,
		Price:    price,
	}, nil
}

// Encode validates b and builds its book element.
func Encode(b *entity.Book) (*etree.Element, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}

	el := etree.NewElement(TagBook)
	el.CreateAttr(AttrCategory, b.Category)
	el.CreateElement(TagISBN).SetText(b.ISBN)
	el.CreateElement(TagTitle).SetText(b.Title)
	for _, author := range b.Authors {
		el.CreateElement(TagAuthor).SetText(author)
	}
	el.CreateElement(TagYear).SetText(strconv.Itoa(b.Year))
	el.CreateElement(TagPrice).SetText(FormatPrice(b.Price))
	return el, nil
}

// FormatPrice renders a price exactly, keeping the scale it was written
// with ("30.00" stays "30.00").
func FormatPrice(p decimal.Decimal) string {
	if exp := p.Exponent(); exp < 0 {
		return p.StringFixed(-exp)
	}
	return p.String()
}

func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, strconv.ErrSyntax
	}
	return decimal.NewFromString(s)
}

// textOf returns all character data under el, nested elements included.
func textOf(el *etree.Element) string {
	var sb strings.Builder
	collectText(el, &sb)
	return sb.String()
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			collectText(t, sb)
		}
	}
}

// findByISBN returns the first book element, at any depth, whose isbn child
// equals isbn.
func findByISBN(doc *etree.Document, isbn string) *etree.Element {
	for _, el := range bookElements(doc) {
		if isbnEl := el.SelectElement(TagISBN); isbnEl != nil && textOf(isbnEl) == isbn {
			return el
		}
	}
	return nil
}

func bookElements(doc *etree.Document) []*etree.Element {
	return doc.FindElements("//" + TagBook)
}
