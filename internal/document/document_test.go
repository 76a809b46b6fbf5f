package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="utf-8"?>
<bookstore>
  <book category="cooking">
    <isbn>111</isbn>
    <title>Everyday Italian</title>
    <author>Giada De Laurentiis</author>
    <year>2005</year>
    <price>30.00</price>
  </book>
</bookstore>
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileAccessor_Load(t *testing.T) {
	a := NewFileAccessor()

	t.Run("parses document", func(t *testing.T) {
		doc, err := a.Load(writeFile(t, "books.xml", sampleXML))
		require.NoError(t, err)
		require.NotNil(t, doc.Root())
		assert.Equal(t, "bookstore", doc.Root().Tag)
		assert.Len(t, doc.Root().SelectElements("book"), 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := a.Load(filepath.Join(t.TempDir(), "nope.xml"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty location", func(t *testing.T) {
		_, err := a.Load("")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := a.Load(writeFile(t, "empty.xml", "  \n"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed xml is not a not-found", func(t *testing.T) {
		_, err := a.Load(writeFile(t, "bad.xml", "<bookstore><book>"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestFileAccessor_SaveThenLoad(t *testing.T) {
	a := NewFileAccessor()
	path := filepath.Join(t.TempDir(), "out", "books.xml")

	doc := New("bookstore")
	book := doc.Root().CreateElement("book")
	book.CreateAttr("category", "web")
	book.CreateElement("isbn").SetText("222")

	require.NoError(t, a.Save(doc, path))

	loaded, err := a.Load(path)
	require.NoError(t, err)
	got := loaded.Root().SelectElement("book")
	require.NotNil(t, got)
	assert.Equal(t, "web", got.SelectAttrValue("category", ""))
	assert.Equal(t, "222", got.SelectElement("isbn").Text())
}

func TestFileAccessor_SaveRejectsEmptyDocument(t *testing.T) {
	a := NewFileAccessor()
	path := filepath.Join(t.TempDir(), "books.xml")

	assert.Error(t, a.Save(nil, path))
	assert.Error(t, a.Save(New("bookstore"), ""))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
