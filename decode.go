package uniprot

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/unicode/norm"
)

// frameDecoder is the "full XML tokenizer over the frame". It
// drives encoding/xml.Decoder — itself a pull-style token stream —
// rather than a hand-rolled scanner: once a frame is fully buffered
// (bounded to one <entry>, never the whole file) the cross-block
// streaming concern that justifies the splitter's custom scanner no
// longer applies, so the standard library's decoder is the idiomatic
// choice here (see DESIGN.md).
type frameDecoder struct {
	dec  *xml.Decoder
	raw  []byte
	path []string
	seq  int64
	pool *InternPool
	opts Options
}

func newFrameDecoder(frame []byte, seq int64, pool *InternPool, opts Options) *frameDecoder {
	dec := xml.NewDecoder(bytes.NewReader(frame))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	return &frameDecoder{dec: dec, raw: frame, seq: seq, pool: pool, opts: opts}
}

func (d *frameDecoder) errf(format string, args ...any) error {
	return decodeError(d.seq, d.path, format, args...)
}

func (d *frameDecoder) unknownVariant(field, observed string) error {
	return unknownVariantError(d.seq, d.path, field, observed)
}

func (d *frameDecoder) intern(s string) string {
	if !d.opts.InternShortStrings() {
		return s
	}
	return d.pool.Intern(s)
}

func (d *frameDecoder) push(name string) {
	d.path = append(d.path, name)
}

func (d *frameDecoder) pop() {
	d.path = d.path[:len(d.path)-1]
}

// next returns the next token together with the byte offset at which
// it started, so callers that need to capture a subtree's raw source
// (forward-compatibility capture UnknownElement) can slice d.raw
// once they know where the subtree ends.
func (d *frameDecoder) next() (xml.Token, int64, error) {
	off := d.dec.InputOffset()
	tok, err := d.dec.Token()
	return tok, off, err
}

// attr looks up an attribute by local name.
func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// readText reads character data up to the matching EndElement for an
// element whose StartElement (se) has already been consumed. Nested
// elements encountered while reading a nominally text-only field are
// skipped rather than treated as an error, since mixed content of this
// kind (e.g. an embedded <evidence> marker) is common in UniProt free
// text.
func (d *frameDecoder) readText(se xml.StartElement) (string, error) {
	var buf strings.Builder
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return "", d.errf("unexpected end of frame reading <%s>: %v", se.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if t.Name.Local != se.Name.Local {
				return "", d.errf("mismatched end tag: expected </%s>, found </%s>", se.Name.Local, t.Name.Local)
			}
			// Normalize to NFC so visually-identical UniProt free text
			// (accented author names, composed vs. decomposed forms)
			// compares equal regardless of how the source dump encoded it.
			return norm.NFC.String(buf.String()), nil
		case xml.StartElement:
			d.push(t.Name.Local)
			if err := d.dec.Skip(); err != nil {
				return "", d.errf("unexpected end of frame inside <%s>: %v", t.Name.Local, err)
			}
			d.pop()
		}
	}
}

// skipSubtree consumes the subtree rooted at se (already read) without
// interpreting it, capturing its raw source into an UnknownElement so
// forward compatibility is observable rather than silently lossy.
func (d *frameDecoder) skipSubtree(se xml.StartElement, startOff int64) (UnknownElement, error) {
	d.push(se.Name.Local)
	defer d.pop()

	if err := d.dec.Skip(); err != nil {
		return UnknownElement{}, d.errf("unexpected end of frame inside <%s>: %v", se.Name.Local, err)
	}
	endOff := d.dec.InputOffset()

	path := make([]string, len(d.path))
	copy(path, d.path)

	var raw string
	if startOff >= 0 && endOff <= int64(len(d.raw)) && startOff <= endOff {
		raw = string(d.raw[startOff:endOff])
	}
	return UnknownElement{Path: path, Raw: raw}, nil
}

// parseInt parses a decimal integer with an explicit bit-width range
// check against the field's declared width.
func (d *frameDecoder) parseInt(field, s string, bitSize int) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, bitSize)
	if err != nil {
		return 0, d.errf("invalid integer %q for %s: %v", s, field, err)
	}
	return n, nil
}

// parseBool recognizes exactly "true" and "false".
func (d *frameDecoder) parseBool(field, s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, d.errf("invalid boolean %q for %s", s, field)
	}
}

// decodeDBReference reads one <dbReference> block, shared by the
// UniProtKB and UniParc cross-reference lists (UniRef members use
// decodeUniRefMemberRef instead).
func (d *frameDecoder) decodeDBReference(se xml.StartElement) (DBReference, error) {
	var ref DBReference
	d.push("dbReference")
	defer d.pop()
	if v, ok := attr(se, "type"); ok {
		ref.Type = d.intern(v)
	}
	if v, ok := attr(se, "id"); ok {
		ref.ID = v
	}
	for {
		tok, off, err := d.next()
		if err != nil {
			return ref, d.errf("unexpected end of frame inside <dbReference>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "dbReference" {
				return ref, d.errf("mismatched end tag inside <dbReference>")
			}
			return ref, nil
		case xml.StartElement:
			if t.Name.Local != "property" {
				if _, err := d.skipSubtree(t, off); err != nil {
					return ref, err
				}
				continue
			}
			k, _ := attr(t, "type")
			v, _ := attr(t, "value")
			if ref.Properties == nil {
				ref.Properties = map[string]string{}
			}
			ref.Properties[d.intern(k)] = v
			if err := d.dec.Skip(); err != nil {
				return ref, d.errf("unexpected end of frame inside <property>: %v", err)
			}
		}
	}
}

// decodeSequence reads a <sequence> block, shared across all three
// flavours. Embedded whitespace the schema uses to wrap the residue
// string is stripped from Value.
func (d *frameDecoder) decodeSequence(se xml.StartElement) (Sequence, error) {
	var sq Sequence
	if v, ok := attr(se, "length"); ok {
		n, err := d.parseInt("sequence@length", v, 32)
		if err != nil {
			return sq, err
		}
		sq.Length = int(n)
	}
	if v, ok := attr(se, "mass"); ok {
		n, err := d.parseInt("sequence@mass", v, 64)
		if err != nil {
			return sq, err
		}
		sq.Mass = n
	}
	if v, ok := attr(se, "checksum"); ok {
		sq.Checksum = v
	}
	if v, ok := attr(se, "modified"); ok {
		cd, err := d.parseDate("sequence@modified", v)
		if err != nil {
			return sq, err
		}
		sq.Modified = cd
	}
	if v, ok := attr(se, "version"); ok {
		n, err := d.parseInt("sequence@version", v, 32)
		if err != nil {
			return sq, err
		}
		sq.Version = int(n)
	}
	text, err := d.readText(se)
	if err != nil {
		return sq, err
	}
	sq.Value = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\t', '\r':
			return -1
		}
		return r
	}, text)
	return sq, nil
}

// calendarDate is a date without a time-of-day component, matching the
// UniProt schema's date fields exactly: the schema has no time-of-day
// to carry.
type calendarDate struct {
	Year  int
	Month int
	Day   int
}

func (c calendarDate) String() string {
	return time.Date(c.Year, time.Month(c.Month), c.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// parseDate parses an ISO-8601 calendar date, accepting (and
// discarding) a trailing zone designator — "Z" or "±HH:MM" — since the
// schema carries no time-of-day for the zone to modify. The strict
// "YYYY-MM-DD[zone]" form is tried first; on failure dateparse.ParseAny
// is consulted as a backstop for the handful of non-canonical but
// unambiguous date strings real dumps occasionally carry. A value that
// is invalid under both remains a decode error carrying the original
// string, so a genuinely malformed date like "2021-13-01" is still
// rejected rather than silently coerced.
func (d *frameDecoder) parseDate(field, s string) (calendarDate, error) {
	s = strings.TrimSpace(s)
	datePart := s
	for _, cut := range []string{"Z", "+", "-"} {
		if cut != "-" {
			if i := strings.IndexByte(s, cut[0]); i > 10 {
				datePart = s[:i]
				break
			}
		}
	}
	if len(datePart) >= 10 && datePart[4] == '-' && datePart[7] == '-' {
		if t, err := time.Parse("2006-01-02", datePart[:10]); err == nil {
			return calendarDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
		}
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return calendarDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
	}
	return calendarDate{}, d.errf("invalid date %q for %s", s, field)
}
