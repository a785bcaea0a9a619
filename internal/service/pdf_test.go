package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/kdduha/chat-assistant/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a blank document with a correct xref table.
func buildPDF(pages int) []byte {
	var kids bytes.Buffer
	for i := 0; i < pages; i++ {
		fmt.Fprintf(&kids, "%d 0 R ", i+3)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), pages),
	}
	for i := 0; i < pages; i++ {
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] >>")
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

func TestCountPDFPages(t *testing.T) {
	pages, err := countPDFPages(buildPDF(3))

	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestCountPDFPages_Corrupt(t *testing.T) {
	_, err := countPDFPages([]byte("%PDF-1.7 this is not a document"))

	assert.Error(t, err)
}

func TestUpload_RealPDF(t *testing.T) {
	svc := NewUploadService(discard)

	acks := svc.HandleUpload(context.Background(), []UploadedFile{
		fileFrom("two.pdf", bytes.NewReader(buildPDF(2))),
		fileFrom("broken.pdf", bytes.NewReader([]byte("%PDF-1.7 garbage"))),
	})

	require.Len(t, acks, 2)
	require.True(t, acks[0].OK(), "%v", acks[0].Err)
	assert.Equal(t, contentTypePDF, acks[0].ContentType)
	assert.Equal(t, 2, acks[0].Pages)

	require.NotNil(t, acks[1].Err)
	assert.Equal(t, outcome.Malformed, acks[1].Err.Kind)
}
