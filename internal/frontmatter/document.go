package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

const delimiter = "---\n"

// ErrMissingClosingDelimiter indicates a document opened a front matter block
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Render joins a front matter block and a Markdown body into one document:
//
//	---
//	Title: Hello
//	---
//
//	body
//
// The body is written with exactly one trailing newline.
func Render(fm *Block, body string) ([]byte, error) {
	meta, err := fm.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(meta) + len(body) + 2*len(delimiter) + 2)
	buf.WriteString(delimiter)
	buf.Write(meta)
	buf.WriteString(delimiter)
	buf.WriteString("\n")
	if body = strings.TrimRight(body, "\n"); body != "" {
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Split separates the YAML front matter from the body of a rendered
// document. ok is false when the document has no front matter.
func Split(doc []byte) (meta []byte, body []byte, ok bool, err error) {
	open := []byte(delimiter)
	if !bytes.HasPrefix(doc, open) {
		return nil, doc, false, nil
	}

	rest := doc[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, bytes.TrimPrefix(rest[len(open):], []byte("\n")), true, nil
	}

	idx := bytes.Index(rest, []byte("\n"+delimiter))
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	meta = rest[:idx+1]
	body = rest[idx+1+len(open):]
	return meta, bytes.TrimPrefix(body, []byte("\n")), true, nil
}
