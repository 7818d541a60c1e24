package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// DefaultTimeout bounds a single extraction when ctx carries no deadline.
const DefaultTimeout = 10 * time.Second

var (
	ErrUnsupportedType = errors.New("unsupported mime type")
	ErrTimeout         = errors.New("extraction timed out")
)

// Parsers for binary formats. Malformed input can make them spin or panic,
// so they only run through parseBounded.
var (
	pdfParser  = extractPDF
	docxParser = extractDOCX
)

// Result is the outcome of an extraction. A non-nil Err is a soft failure:
// callers keep the upload and record the failure.
type Result struct {
	Text string
	Err  error
}

// Failed reports whether extraction did not produce text.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Supported reports whether mimeType is one of the accepted upload types.
func Supported(mimeType string) bool {
	switch NormalizeMimeType(mimeType) {
	case MimePDF, MimeDOCX, MimeText:
		return true
	default:
		return false
	}
}

// NormalizeMimeType lower-cases a content type and drops its parameters.
func NormalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

// Extract pulls plain text out of an uploaded payload. Binary parsing is
// abandoned once ctx is done, or after DefaultTimeout if ctx has no deadline.
func Extract(ctx context.Context, data []byte, mimeType string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}
	normalized := NormalizeMimeType(mimeType)

	var (
		text string
		err  error
	)
	switch normalized {
	case MimePDF:
		text, err = parseBounded(ctx, pdfParser, data)
	case MimeDOCX:
		text, err = parseBounded(ctx, docxParser, data)
	case MimeText:
		text = strings.ToValidUTF8(string(data), "�")
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
	if err != nil {
		return Result{Err: fmt.Errorf("extract mime=%s: %w", normalized, err)}
	}
	return Result{Text: text}
}

// parseBounded runs parse on its own goroutine and gives up when ctx is done.
// An abandoned parse keeps running until it returns; its result is dropped.
func parseBounded(ctx context.Context, parse func([]byte) (string, error), data []byte) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("parser panic: %v", r)}
			}
		}()
		text, err := parse(data)
		done <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	case out := <-done:
		return out.text, out.err
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent())
}

// stripDocxXML keeps character data and turns paragraph and line breaks into newlines.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
