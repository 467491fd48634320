package uniprot

import "encoding/xml"

func decodeUniRefEntry(frame []byte, seq int64, pool *InternPool, opts Options) (UniRefEntry, error) {
	var entry UniRefEntry
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

	if v, ok := attr(se, "id"); ok {
		entry.ID = v
	}
	if v, ok := attr(se, "updated"); ok {
		cd, err := d.parseDate("entry@updated", v)
		if err != nil {
			return entry, err
		}
		entry.Updated = cd
	}

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
			if err := decodeUniRefChild(d, &entry, t, off); err != nil {
				return entry, err
			}
		}
	}
}

func decodeUniRefChild(d *frameDecoder, entry *UniRefEntry, t xml.StartElement, off int64) error {
	switch t.Name.Local {
	case "name":
		text, err := d.readText(t)
		if err != nil {
			return err
		}
		entry.Name = text
	case "property":
		typ, _ := attr(t, "type")
		val, _ := attr(t, "value")
		switch typ {
		case "common taxon":
			entry.CommonTaxon = val
		case "common taxon ID":
			n, err := d.parseInt("entry/property[common taxon ID]@value", val, 64)
			if err != nil {
				return err
			}
			entry.CommonTaxonID = n
		}
		if err := d.dec.Skip(); err != nil {
			return d.errf("unexpected end of frame inside <property>: %v", err)
		}
	case "representativeMember":
		m, err := d.decodeUniRefMember(t)
		if err != nil {
			return err
		}
		entry.Representative = m
		if m.Sequence != nil {
			entry.Sequence = *m.Sequence
		}
	case "member":
		m, err := d.decodeUniRefMember(t)
		if err != nil {
			return err
		}
		entry.Members = append(entry.Members, m)
	default:
		u, err := d.skipSubtree(t, off)
		if err != nil {
			return err
		}
		entry.Unparsed = append(entry.Unparsed, u)
	}
	return nil
}

// decodeUniRefMember decodes a <member> or <representativeMember>
// block. Both wrap a single <dbReference> carrying the member's
// cross-reference properties; representativeMember additionally
// carries the cluster's own <sequence>.
func (d *frameDecoder) decodeUniRefMember(se xml.StartElement) (UniRefMember, error) {
	var m UniRefMember
	d.push(se.Name.Local)
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return m, d.errf("unexpected end of frame inside <%s>: %v", se.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != se.Name.Local {
				return m, d.errf("mismatched end tag inside <%s>", se.Name.Local)
			}
			return m, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "dbReference":
				if err := d.decodeUniRefMemberRef(t, &m); err != nil {
					return m, err
				}
			case "sequence":
				sq, err := d.decodeSequence(t)
				if err != nil {
					return m, err
				}
				m.Sequence = &sq
			default:
				if _, err := d.skipSubtree(t, off); err != nil {
					return m, err
				}
			}
		}
	}
}

func (d *frameDecoder) decodeUniRefMemberRef(se xml.StartElement, m *UniRefMember) error {
	d.push("dbReference")
	defer d.pop()
	if v, ok := attr(se, "type"); ok {
		m.Type = d.intern(v)
	}
	if v, ok := attr(se, "id"); ok {
		m.ID = v
	}
	for {
		tok, off, err := d.next()
		if err != nil {
			return d.errf("unexpected end of frame inside <dbReference>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "dbReference" {
				return d.errf("mismatched end tag inside <dbReference>")
			}
			return nil
		case xml.StartElement:
			if t.Name.Local != "property" {
				if _, err := d.skipSubtree(t, off); err != nil {
					return err
				}
				continue
			}
			typ, _ := attr(t, "type")
			val, _ := attr(t, "value")
			if m.Properties == nil {
				m.Properties = map[string]string{}
			}
			m.Properties[d.intern(typ)] = val
			switch typ {
			case "UniProtKB accession":
				m.Accession = val
			case "UniProtKB ID", "UniParc ID":
				m.UniProtName = val
			case "NCBI taxonomy":
				n, err := d.parseInt("dbReference/property[NCBI taxonomy]@value", val, 64)
				if err != nil {
					return err
				}
				m.TaxonID = n
			case "sequence length":
				n, err := d.parseInt("dbReference/property[sequence length]@value", val, 32)
				if err != nil {
					return err
				}
				m.Length = int(n)
			}
			if err := d.dec.Skip(); err != nil {
				return d.errf("unexpected end of frame inside <property>: %v", err)
			}
		}
	}
}
