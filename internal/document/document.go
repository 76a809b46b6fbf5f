// Package document loads and saves the XML document that backs the catalog.
// It is the only code that touches the document's storage location.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/beevik/etree"

	"bookcatalog/internal/platform/fsutil"
)

// ErrNotFound is returned when the document location does not exist or holds
// no document.
var ErrNotFound = errors.New("document not found")

const defaultPerm fs.FileMode = 0o644

// FileAccessor reads and writes documents on the local filesystem.
type FileAccessor struct {
	perm fs.FileMode
}

func NewFileAccessor() *FileAccessor {
	return &FileAccessor{perm: defaultPerm}
}

// New returns an empty document with an XML declaration and the given root.
func New(rootTag string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateElement(rootTag)
	return doc
}

// Load parses the document stored at location.
func (a *FileAccessor) Load(location string) (*etree.Document, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrNotFound)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file path: %s", ErrNotFound, location)
		}
		return nil, fmt.Errorf("read document %s: %w", location, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: file is empty: %s", ErrNotFound, location)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", location, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element: %s", ErrNotFound, location)
	}
	return doc, nil
}

// Save writes doc to location, replacing any previous content atomically.
func (a *FileAccessor) Save(doc *etree.Document, location string) error {
	if location == "" {
		return fmt.Errorf("save document: empty location")
	}
	if doc == nil || doc.Root() == nil {
		return fmt.Errorf("save document %s: no root element", location)
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serialize document %s: %w", location, err)
	}
	if err := fsutil.WriteFileAtomic(location, data, a.perm); err != nil {
		return fmt.Errorf("save document %s: %w", location, err)
	}
	return nil
}
