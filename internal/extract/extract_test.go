package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ziplai/ziplai/internal/errors"
)

func TestSupportedMime(t *testing.T) {
	assert.True(t, SupportedMime(MimePDF))
	assert.True(t, SupportedMime(MimeDOCX))
	assert.False(t, SupportedMime("image/png"))
	assert.False(t, SupportedMime("text/plain"))
	assert.False(t, SupportedMime(""))
}

func TestExtract_UnsupportedMime(t *testing.T) {
	_, err := New().Extract([]byte("data"), "application/msword")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}

func TestAssemblePage(t *testing.T) {
	tests := []struct {
		name      string
		fragments []textFragment
		want      string
	}{
		{
			name: "fragments on one baseline read left to right",
			fragments: []textFragment{
				{x: 300, y: 700, s: "Right"},
				{x: 72, y: 700, s: "Left"},
				{x: 72, y: 650, s: "Bottom"},
			},
			want: "Left Right\nBottom",
		},
		{
			name: "small vertical jitter stays on one line",
			fragments: []textFragment{
				{x: 200, y: 701.5, s: "world"},
				{x: 72, y: 700, s: "hello"},
			},
			want: "hello world",
		},
		{
			name: "descending y gives top to bottom order",
			fragments: []textFragment{
				{x: 72, y: 500, s: "third"},
				{x: 72, y: 700, s: "first"},
				{x: 72, y: 600, s: "second"},
			},
			want: "first\nsecond\nthird",
		},
		{
			name:      "no fragments",
			fragments: nil,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assemblePage(tt.fragments))
		})
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_DOCX(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r><w:r><w:t xml:space="preserve"> - Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t>Experience with Go services</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := New().Extract(buildDOCX(t, doc), MimeDOCX)

	require.NoError(t, err)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Jane Doe - Engineer", lines[0])
	assert.Equal(t, "Experience with Go services", lines[1])
}

func TestExtract_DOCX_Empty(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p></w:p></w:body>
</w:document>`

	_, err := New().Extract(buildDOCX(t, doc), MimeDOCX)
	assert.ErrorIs(t, err, apperrors.ErrEmptyDocument)
}

func TestExtract_DOCX_MissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = New().Extract(buf.Bytes(), MimeDOCX)
	assert.Error(t, err)
}

func TestExtract_PDF_Garbage(t *testing.T) {
	_, err := New().Extract([]byte("not a pdf at all"), MimePDF)
	assert.Error(t, err)
}
