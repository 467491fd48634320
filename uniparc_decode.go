package uniprot

import "encoding/xml"

func decodeUniParcEntry(frame []byte, seq int64, pool *InternPool, opts Options) (UniParcEntry, error) {
	var entry UniParcEntry
	d := newFrameDecoder(frame, seq, pool, opts)

	tok, _, err := d.next()
	if err != nil {
		return entry, d.errf("empty or unreadable frame: %v", err)
	}
	se, ok := tok.(xml.StartElement)
	if !ok || se.Name.Local != "entry" {
		return entry, d.errf("expected <entry> as the frame root")
	}
	d.push("entry")
	defer d.pop()

	for {
		tok, off, err := d.next()
		if err != nil {
			return entry, d.errf("unexpected end of frame inside <entry>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "entry" {
				return entry, d.errf("mismatched end tag: expected </entry>, found </%s>", t.Name.Local)
			}
			return entry, nil
		case xml.StartElement:
			if err := decodeUniParcChild(d, &entry, t, off); err != nil {
				return entry, err
			}
		}
	}
}

func decodeUniParcChild(d *frameDecoder, entry *UniParcEntry, t xml.StartElement, off int64) error {
	switch t.Name.Local {
	case "accession":
		text, err := d.readText(t)
		if err != nil {
			return err
		}
		entry.Accession = text
	case "dbReference":
		ref, err := d.decodeUniParcDBReference(t)
		if err != nil {
			return err
		}
		entry.DBReferences = append(entry.DBReferences, ref)
	case "signatureSequenceMatch":
		m, err := d.decodeSignatureMatch(t)
		if err != nil {
			return err
		}
		entry.SignatureMatches = append(entry.SignatureMatches, m)
	case "sequence":
		sq, err := d.decodeSequence(t)
		if err != nil {
			return err
		}
		entry.Sequence = sq
	default:
		u, err := d.skipSubtree(t, off)
		if err != nil {
			return err
		}
		entry.Unparsed = append(entry.Unparsed, u)
	}
	return nil
}

// decodeUniParcDBReference extends the shared dbReference decode with
// the source-database bookkeeping attributes (version, active,
// created, last) UniParc's schema attaches that no other flavour uses.
func (d *frameDecoder) decodeUniParcDBReference(se xml.StartElement) (UniParcDBReference, error) {
	var out UniParcDBReference
	if v, ok := attr(se, "version"); ok {
		n, err := d.parseInt("dbReference@version", v, 32)
		if err != nil {
			return out, err
		}
		out.Version = int(n)
	} else if v, ok := attr(se, "version_i"); ok {
		n, err := d.parseInt("dbReference@version_i", v, 32)
		if err != nil {
			return out, err
		}
		out.Version = int(n)
	}
	if v, ok := attr(se, "active"); ok {
		out.Active = v == "Y" || v == "true"
	}
	if v, ok := attr(se, "created"); ok {
		cd, err := d.parseDate("dbReference@created", v)
		if err != nil {
			return out, err
		}
		out.Created = cd
	}
	if v, ok := attr(se, "last"); ok {
		cd, err := d.parseDate("dbReference@last", v)
		if err != nil {
			return out, err
		}
		out.Modified = cd
	}

	ref, err := d.decodeDBReference(se)
	if err != nil {
		return out, err
	}
	out.DBReference = ref
	return out, nil
}

func (d *frameDecoder) decodeSignatureMatch(se xml.StartElement) (SignatureMatch, error) {
	var m SignatureMatch
	d.push("signatureSequenceMatch")
	defer d.pop()
	if v, ok := attr(se, "database"); ok {
		m.Database = d.intern(v)
	}
	if v, ok := attr(se, "id"); ok {
		m.ID = v
	}
	for {
		tok, off, err := d.next()
		if err != nil {
			return m, d.errf("unexpected end of frame inside <signatureSequenceMatch>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "signatureSequenceMatch" {
				return m, d.errf("mismatched end tag inside <signatureSequenceMatch>")
			}
			return m, nil
		case xml.StartElement:
			if t.Name.Local != "lcn" {
				if _, err := d.skipSubtree(t, off); err != nil {
					return m, err
				}
				continue
			}
			loc, err := d.decodeSignatureLocation(t)
			if err != nil {
				return m, err
			}
			m.Locations = append(m.Locations, loc)
		}
	}
}

func (d *frameDecoder) decodeSignatureLocation(se xml.StartElement) (SignatureLocation, error) {
	var loc SignatureLocation
	if v, ok := attr(se, "start"); ok {
		n, err := d.parseInt("lcn@start", v, 32)
		if err != nil {
			return loc, err
		}
		loc.Start = int(n)
	}
	if v, ok := attr(se, "end"); ok {
		n, err := d.parseInt("lcn@end", v, 32)
		if err != nil {
			return loc, err
		}
		loc.End = int(n)
	}
	if err := d.dec.Skip(); err != nil {
		return loc, d.errf("unexpected end of frame inside <lcn>: %v", err)
	}
	return loc, nil
}
