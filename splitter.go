package uniprot

import (
	"bytes"
	"io"
	"strings"
)

// Splitter is the Frame Splitter: an XML-aware byte scanner
// that verifies the root element and emits one Frame per direct-child
// <entry> element, discarding any other direct child without emitting
// a frame. It is a coarse tokenizer — it tracks element-name nesting
// only deeply enough to find entry boundaries, never builds a tree.
//
// A Splitter is forward-only and single-use: call Next repeatedly
// until it returns io.EOF.
type Splitter struct {
	src         *entrySource
	rootNames   []string
	rootName    string
	nsAttr      string
	initialized bool
	done        bool
	nextSeq     int64
}

// NewSplitter wraps r for the given flavour's root element contract.
func NewSplitter(r io.Reader, flavour Flavour) *Splitter {
	return &Splitter{src: newEntrySource(r), rootNames: flavour.rootNames()}
}

// BytesRead reports how many bytes have been consumed from the
// underlying reader so far.
func (sp *Splitter) BytesRead() int64 {
	return sp.src.BytesRead()
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// ensureInit reads the XML prolog and the root start tag, verifying its
// name against the flavour's accepted root names.
func (sp *Splitter) ensureInit() error {
	if sp.initialized {
		return nil
	}
	sp.initialized = true

	for {
		text, found, err := sp.src.ReadUntilLT()
		if err != nil {
			return malformedXMLError(-1, "no root element found: %v", err)
		}
		if !found {
			return malformedXMLError(-1, "no root element found")
		}
		if strings.TrimSpace(string(text)) != "" {
			return malformedXMLError(-1, "unexpected content before root element")
		}

		tag, err := scanTag(sp.src)
		if err != nil {
			return malformedXMLError(-1, "malformed XML before root element: %v", err)
		}

		switch tag.kind {
		case tagPI, tagComment, tagDoctype:
			continue
		case tagStart, tagEmpty:
			if !containsName(sp.rootNames, tag.name) {
				return rootMismatchError(sp.rootNames, tag.name)
			}
			sp.rootName = tag.name
			sp.nsAttr = tag.attr
			if tag.kind == tagEmpty {
				sp.done = true
			}
			return nil
		default:
			return malformedXMLError(-1, "unexpected markup before root element")
		}
	}
}

// Next produces the next entry Frame, or (nil, io.EOF) once the root
// element's end tag has been reached. Any other error is terminal: the
// splitter must not be called again.
func (sp *Splitter) Next() (*Frame, error) {
	if err := sp.ensureInit(); err != nil {
		return nil, err
	}
	if sp.done {
		return nil, io.EOF
	}

	for {
		text, found, err := sp.src.ReadUntilLT()
		if err != nil || !found {
			return nil, malformedXMLError(sp.nextSeq, "unexpected end of input before root element %q was closed", sp.rootName)
		}
		if strings.TrimSpace(string(text)) != "" {
			// ordinary text directly under the root, outside any entry; ignored.
		}

		tag, scanErr := scanTag(sp.src)
		if scanErr != nil {
			if scanErr == io.EOF {
				return nil, malformedXMLError(sp.nextSeq, "unexpected end of input before root element %q was closed", sp.rootName)
			}
			return nil, malformedXMLError(sp.nextSeq, "malformed XML at top level: %v", scanErr)
		}

		switch tag.kind {
		case tagComment, tagPI, tagDoctype:
			continue

		case tagEnd:
			if tag.name != sp.rootName {
				return nil, malformedXMLError(sp.nextSeq, "mismatched root end tag: expected </%s>, found </%s>", sp.rootName, tag.name)
			}
			sp.done = true
			return nil, io.EOF

		case tagEmpty:
			if tag.name == "entry" {
				return sp.emit(tag.raw), nil
			}
			continue

		case tagStart:
			if tag.name == "entry" {
				var buf bytes.Buffer
				buf.Write(tag.raw)
				if err := consumeSubtree(sp.src, &buf, "entry"); err != nil {
					if err == io.ErrUnexpectedEOF {
						return nil, truncatedEntryError(sp.nextSeq)
					}
					return nil, malformedXMLError(sp.nextSeq, "%v", err)
				}
				return sp.emit(buf.Bytes()), nil
			}
			if err := consumeSubtree(sp.src, nil, tag.name); err != nil {
				if err == io.ErrUnexpectedEOF {
					return nil, malformedXMLError(sp.nextSeq, "unexpected end of input inside <%s>", tag.name)
				}
				return nil, malformedXMLError(sp.nextSeq, "%v", err)
			}
			continue

		default:
			return nil, malformedXMLError(sp.nextSeq, "unexpected markup at top level")
		}
	}
}

// emit assigns the next sequence number to raw entry bytes, splices in
// the root's namespace declarations, and returns the resulting Frame.
func (sp *Splitter) emit(raw []byte) *Frame {
	f := &Frame{Seq: sp.nextSeq, Data: injectNamespace(raw, sp.nsAttr)}
	sp.nextSeq++
	return f
}

// injectNamespace splices the root element's attribute text into an
// <entry> tag so each frame tokenizes as a self-contained document,
// "Output framing" contract.
func injectNamespace(raw []byte, nsAttr string) []byte {
	if nsAttr == "" {
		return raw
	}
	const prefix = "<entry"
	if !bytes.HasPrefix(raw, []byte(prefix)) {
		return raw
	}
	var out bytes.Buffer
	out.Write(raw[:len(prefix)])
	out.WriteByte(' ')
	out.WriteString(nsAttr)
	out.Write(raw[len(prefix):])
	return out.Bytes()
}

// consumeSubtree reads forward past a balanced element subtree whose
// start tag has already been scanned (openName), tracking nesting depth
// only — UniProt schemas never nest <entry> inside <entry>, so a pure
// depth counter is safe, but the
// closing tag's name is still checked against openName as a hardening
// measure. When buf is non-nil every byte walked over, including the
// opening tag's own raw bytes (already written by the caller) and all
// descendant tags, text, comments and CDATA, is appended to it so the
// caller can reconstruct the exact source bytes of the subtree.
func consumeSubtree(src *entrySource, buf *bytes.Buffer, openName string) error {
	depth := 1
	for {
		text, found, err := src.ReadUntilLT()
		if buf != nil && len(text) > 0 {
			buf.Write(text)
		}
		if err != nil || !found {
			return io.ErrUnexpectedEOF
		}

		tag, err := scanTag(src)
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		if buf != nil {
			buf.Write(tag.raw)
		}

		switch tag.kind {
		case tagStart:
			depth++
		case tagEnd:
			depth--
			if depth == 0 {
				if tag.name != openName {
					return &mismatchedEndTagError{want: openName, got: tag.name}
				}
				return nil
			}
		}
	}
}

type mismatchedEndTagError struct {
	want, got string
}

func (e *mismatchedEndTagError) Error() string {
	return "mismatched end tag: expected </" + e.want + ">, found </" + e.got + ">"
}
