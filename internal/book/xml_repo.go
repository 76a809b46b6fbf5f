package book

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"bookcatalog/internal/entity"
)

// XMLRepo keeps books as elements of a single XML document. The document is
// loaded at the start of every call and saved right after every mutation;
// nothing is cached between calls.
//
// Writers inside one process are serialized for the load-mutate-save
// sequence. Separate processes writing the same file are last-save-wins.
type XMLRepo struct {
	mu       sync.RWMutex
	docs     DocumentAccessor
	location string
}

func NewXMLRepo(docs DocumentAccessor, location string) *XMLRepo {
	return &XMLRepo{docs: docs, location: location}
}

func (r *XMLRepo) List(_ context.Context) ([]entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.docs.Load(r.location)
	if err != nil {
		return nil, err
	}

	elements := bookElements(doc)
	out := make([]entity.Book, 0, len(elements))
	for _, el := range elements {
		b, err := Decode(el)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *XMLRepo) GetByISBN(_ context.Context, isbn string) (entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.docs.Load(r.location)
	if err != nil {
		return entity.Book{}, err
	}

	el := findByISBN(doc, isbn)
	if el == nil {
		return entity.Book{}, fmt.Errorf("%w: could not find book by isbn: %s", ErrNotFound, isbn)
	}
	return Decode(el)
}

func (r *XMLRepo) Create(_ context.Context, b *entity.Book) error {
	el, err := Encode(b)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.docs.Load(r.location)
	if err != nil {
		return err
	}
	if findByISBN(doc, b.ISBN) != nil {
		return fmt.Errorf("%w: book with same isbn: %s already exists", ErrAlreadyExists, b.ISBN)
	}

	doc.Root().AddChild(el)
	return r.docs.Save(doc, r.location)
}

func (r *XMLRepo) Update(_ context.Context, patch *entity.Book) (entity.Book, error) {
	if patch == nil {
		return entity.Book{}, invalidArgument("book cannot be null")
	}
	if strings.TrimSpace(patch.ISBN) == "" {
		return entity.Book{}, invalidArgument("isbn cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.docs.Load(r.location)
	if err != nil {
		return entity.Book{}, err
	}

	existing := findByISBN(doc, patch.ISBN)
	if existing == nil {
		return entity.Book{}, fmt.Errorf("%w: isbn: %s", ErrNotFound, patch.ISBN)
	}

	base, err := Decode(existing)
	if err != nil {
		return entity.Book{}, err
	}

	merged := Merge(base, *patch)
	el, err := Encode(&merged)
	if err != nil {
		return entity.Book{}, err
	}

	parent := existing.Parent()
	idx := existing.Index()
	parent.RemoveChildAt(idx)
	parent.InsertChildAt(idx, el)

	if err := r.docs.Save(doc, r.location); err != nil {
		return entity.Book{}, err
	}
	return merged, nil
}

func (r *XMLRepo) Delete(_ context.Context, isbn string) error {
	if strings.TrimSpace(isbn) == "" {
		return invalidArgument("isbn cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.docs.Load(r.location)
	if err != nil {
		return err
	}

	el := findByISBN(doc, isbn)
	if el == nil {
		return fmt.Errorf("%w: isbn: %s", ErrNotFound, isbn)
	}

	el.Parent().RemoveChild(el)
	return r.docs.Save(doc, r.location)
}

// Ping reports whether the document can be loaded.
func (r *XMLRepo) Ping(_ context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, err := r.docs.Load(r.location)
	return err
}
