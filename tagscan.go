package uniprot

import (
	"bytes"
	"fmt"
)

// tagKind classifies one XML markup construct recognized by scanTag.
// This is the coarse tokenizer's vocabulary: it never descends into
// attribute values or text content beyond what is needed to find tag
// boundaries, doing the minimum XML work necessary to be correct.
type tagKind int

const (
	tagStart tagKind = iota
	tagEnd
	tagEmpty
	tagComment
	tagCDATA
	tagPI
	tagDoctype
)

// rawTag is one scanned markup construct together with its exact raw
// bytes (including the leading '<'), so frames can be reassembled
// byte-for-byte from the pieces the scanner walks over.
type rawTag struct {
	kind tagKind
	name string
	attr string
	raw  []byte
}

func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-' || b == '.' || b == ':':
		return true
	default:
		return false
	}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// scanTag reads one markup construct from src, assuming the leading '<'
// has already been consumed by the caller (ReadUntilLT strips it). It
// is a small state machine over start tags, end tags, empty tags,
// comments, CDATA sections and processing instructions.
func scanTag(src *entrySource) (rawTag, error) {
	var buf bytes.Buffer
	buf.WriteByte('<')

	b, err := src.ReadByte()
	if err != nil {
		return rawTag{}, err
	}

	switch b {
	case '?':
		buf.WriteByte('?')
		if err := scanUntilDelim(src, &buf, "?>"); err != nil {
			return rawTag{}, err
		}
		return rawTag{kind: tagPI, raw: buf.Bytes()}, nil

	case '!':
		buf.WriteByte('!')
		return scanMarkupDecl(src, &buf)

	case '/':
		buf.WriteByte('/')
		name, err := scanName(src, &buf)
		if err != nil {
			return rawTag{}, err
		}
		if err := scanToTagClose(src, &buf); err != nil {
			return rawTag{}, err
		}
		return rawTag{kind: tagEnd, name: name, raw: buf.Bytes()}, nil

	default:
		if err := src.UnreadByte(); err != nil {
			return rawTag{}, err
		}
		name, err := scanName(src, &buf)
		if err != nil {
			return rawTag{}, err
		}
		attr, empty, err := scanAttributes(src, &buf)
		if err != nil {
			return rawTag{}, err
		}
		kind := tagStart
		if empty {
			kind = tagEmpty
		}
		return rawTag{kind: kind, name: name, attr: attr, raw: buf.Bytes()}, nil
	}
}

// scanMarkupDecl disambiguates a "<!" construct into a comment, a CDATA
// section, or a DOCTYPE/other markup declaration, having already
// written "<!" into buf.
func scanMarkupDecl(src *entrySource, buf *bytes.Buffer) (rawTag, error) {
	if peek, err := src.Peek(2); err == nil && len(peek) == 2 && peek[0] == '-' && peek[1] == '-' {
		for i := 0; i < 2; i++ {
			c, err := src.ReadByte()
			if err != nil {
				return rawTag{}, err
			}
			buf.WriteByte(c)
		}
		if err := scanUntilDelim(src, buf, "-->"); err != nil {
			return rawTag{}, err
		}
		return rawTag{kind: tagComment, raw: buf.Bytes()}, nil
	}

	if peek, err := src.Peek(7); err == nil && string(peek) == "[CDATA[" {
		for i := 0; i < 7; i++ {
			c, err := src.ReadByte()
			if err != nil {
				return rawTag{}, err
			}
			buf.WriteByte(c)
		}
		if err := scanUntilDelim(src, buf, "]]>"); err != nil {
			return rawTag{}, err
		}
		return rawTag{kind: tagCDATA, raw: buf.Bytes()}, nil
	}

	// DOCTYPE or another markup declaration: skip to the balanced '>'.
	if err := scanDoctype(src, buf); err != nil {
		return rawTag{}, err
	}
	return rawTag{kind: tagDoctype, raw: buf.Bytes()}, nil
}

// scanName reads an XML element name, writing it into buf (the running
// raw-tag buffer) and returning it separately.
func scanName(src *entrySource, buf *bytes.Buffer) (string, error) {
	var name bytes.Buffer
	for {
		b, err := src.ReadByte()
		if err != nil {
			return "", err
		}
		if !isNameByte(b) {
			if err := src.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		buf.WriteByte(b)
		name.WriteByte(b)
	}
	if name.Len() == 0 {
		return "", fmt.Errorf("expected an element name")
	}
	return name.String(), nil
}

// scanAttributes reads the remainder of a start/empty tag, tracking
// single- and double-quoted attribute values so that '<', '>', or '/'
// inside a quoted value never triggers premature tag detection (the
// InAttrValueSingle/InAttrValueDouble states).
func scanAttributes(src *entrySource, buf *bytes.Buffer) (attr string, empty bool, err error) {
	var raw bytes.Buffer
	inSingle, inDouble := false, false

	for {
		b, rerr := src.ReadByte()
		if rerr != nil {
			return "", false, rerr
		}
		switch {
		case inSingle:
			buf.WriteByte(b)
			raw.WriteByte(b)
			if b == '\'' {
				inSingle = false
			}
		case inDouble:
			buf.WriteByte(b)
			raw.WriteByte(b)
			if b == '"' {
				inDouble = false
			}
		case b == '\'':
			inSingle = true
			buf.WriteByte(b)
			raw.WriteByte(b)
		case b == '"':
			inDouble = true
			buf.WriteByte(b)
			raw.WriteByte(b)
		case b == '>':
			buf.WriteByte(b)
			text := trimRight(raw.String())
			if hasSuffixByte(text, '/') {
				return trimRight(text[:len(text)-1]), true, nil
			}
			return text, false, nil
		default:
			buf.WriteByte(b)
			raw.WriteByte(b)
		}
	}
}

func trimRight(s string) string {
	end := len(s)
	for end > 0 && isSpaceByte(s[end-1]) {
		end--
	}
	return s[:end]
}

func hasSuffixByte(s string, b byte) bool {
	return len(s) > 0 && s[len(s)-1] == b
}

// scanToTagClose consumes trailing whitespace and the closing '>' of an
// end tag, writing everything into buf.
func scanToTagClose(src *entrySource, buf *bytes.Buffer) error {
	for {
		b, err := src.ReadByte()
		if err != nil {
			return err
		}
		buf.WriteByte(b)
		if b == '>' {
			return nil
		}
		if !isSpaceByte(b) {
			return fmt.Errorf("unexpected character %q in end tag", b)
		}
	}
}

// scanUntilDelim reads and appends bytes to buf until its trailing
// bytes equal delim (used for comments, CDATA, and processing
// instructions, each of which may contain embedded '<' or '>').
func scanUntilDelim(src *entrySource, buf *bytes.Buffer, delim string) error {
	tail := make([]byte, 0, len(delim))
	for {
		b, err := src.ReadByte()
		if err != nil {
			return err
		}
		buf.WriteByte(b)
		tail = append(tail, b)
		if len(tail) > len(delim) {
			tail = tail[1:]
		}
		if string(tail) == delim {
			return nil
		}
	}
}

// scanDoctype skips a DOCTYPE or other markup declaration to its
// balanced closing '>', tracking bracketed internal subsets and quoted
// literals so an internal subset's own '>' characters are not mistaken
// for the declaration's end.
func scanDoctype(src *entrySource, buf *bytes.Buffer) error {
	depth := 0
	inSingle, inDouble := false, false
	for {
		b, err := src.ReadByte()
		if err != nil {
			return err
		}
		buf.WriteByte(b)
		switch {
		case inSingle:
			if b == '\'' {
				inSingle = false
			}
		case inDouble:
			if b == '"' {
				inDouble = false
			}
		case b == '\'':
			inSingle = true
		case b == '"':
			inDouble = true
		case b == '[':
			depth++
		case b == ']':
			depth--
		case b == '>' && depth <= 0:
			return nil
		}
	}
}
