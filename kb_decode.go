package uniprot

import (
	"encoding/xml"
	"strings"
)

var proteinExistenceLevels = map[string]int{
	"evidence at protein level":    1,
	"evidence at transcript level": 2,
	"inferred from homology":       3,
	"predicted":                    4,
	"uncertain":                    5,
}

// decodeKBEntry decodes one UniProtKB <entry> frame. It is a pure
// function of its input bytes: no I/O, no shared mutable state
// beyond the caller-supplied intern pool.
func decodeKBEntry(frame []byte, seq int64, pool *InternPool, opts Options) (KBEntry, error) {
	var entry KBEntry
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

	if v, ok := attr(se, "dataset"); ok {
		entry.Dataset = d.intern(v)
	}
	if v, ok := attr(se, "version"); ok {
		n, err := d.parseInt("entry@version", v, 32)
		if err != nil {
			return entry, err
		}
		entry.Version = int(n)
	}
	if v, ok := attr(se, "created"); ok {
		cd, err := d.parseDate("entry@created", v)
		if err != nil {
			return entry, err
		}
		entry.Created = cd
	}
	if v, ok := attr(se, "modified"); ok {
		cd, err := d.parseDate("entry@modified", v)
		if err != nil {
			return entry, err
		}
		entry.Modified = cd
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
			if err := decodeKBChild(d, &entry, t, off); err != nil {
				return entry, err
			}
		}
	}
}

func decodeKBChild(d *frameDecoder, entry *KBEntry, t xml.StartElement, off int64) error {
	switch t.Name.Local {
	case "accession":
		text, err := d.readText(t)
		if err != nil {
			return err
		}
		entry.Accessions = append(entry.Accessions, text)
	case "name":
		text, err := d.readText(t)
		if err != nil {
			return err
		}
		entry.Name = text
	case "protein":
		pd, unknown, err := d.decodeProtein(t)
		if err != nil {
			return err
		}
		entry.Protein = pd
		entry.Unparsed = append(entry.Unparsed, unknown...)
	case "gene":
		g, err := d.decodeGene(t)
		if err != nil {
			return err
		}
		entry.Genes = append(entry.Genes, g)
	case "organism":
		o, err := d.decodeOrganism(t)
		if err != nil {
			return err
		}
		entry.Organism = o
	case "organismHost":
		o, err := d.decodeOrganism(t)
		if err != nil {
			return err
		}
		entry.OrganismHosts = append(entry.OrganismHosts, o)
	case "reference":
		c, err := d.decodeCitation(t)
		if err != nil {
			return err
		}
		entry.References = append(entry.References, c)
	case "comment":
		c, err := d.decodeComment(t)
		if err != nil {
			return err
		}
		entry.Comments = append(entry.Comments, c)
	case "dbReference":
		ref, err := d.decodeDBReference(t)
		if err != nil {
			return err
		}
		entry.DBReferences = append(entry.DBReferences, ref)
	case "proteinExistence":
		typ, _ := attr(t, "type")
		level, ok := proteinExistenceLevels[typ]
		if !ok {
			return d.unknownVariant("proteinExistence@type", typ)
		}
		entry.ProteinExistence = level
		if err := d.dec.Skip(); err != nil {
			return d.errf("unexpected end of frame inside <proteinExistence>: %v", err)
		}
	case "keyword":
		kw, err := d.decodeKeyword(t)
		if err != nil {
			return err
		}
		entry.Keywords = append(entry.Keywords, kw)
	case "feature":
		f, err := d.decodeFeature(t)
		if err != nil {
			return err
		}
		entry.Features = append(entry.Features, f)
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

func (d *frameDecoder) decodeProtein(se xml.StartElement) (ProteinDescription, []UnknownElement, error) {
	var pd ProteinDescription
	var unknown []UnknownElement
	d.push(se.Name.Local)
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return pd, unknown, d.errf("unexpected end of frame inside <protein>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "protein" {
				return pd, unknown, d.errf("mismatched end tag inside <protein>")
			}
			return pd, unknown, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "recommendedName":
				ng, err := d.decodeNameGroup(t)
				if err != nil {
					return pd, unknown, err
				}
				pd.Recommended = ng
			case "alternativeName", "submittedName":
				ng, err := d.decodeNameGroup(t)
				if err != nil {
					return pd, unknown, err
				}
				pd.Alternative = append(pd.Alternative, ng)
			default:
				u, err := d.skipSubtree(t, off)
				if err != nil {
					return pd, unknown, err
				}
				unknown = append(unknown, u)
			}
		}
	}
}

func (d *frameDecoder) decodeNameGroup(se xml.StartElement) (NameGroup, error) {
	var ng NameGroup
	d.push(se.Name.Local)
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return ng, d.errf("unexpected end of frame inside <%s>: %v", se.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != se.Name.Local {
				return ng, d.errf("mismatched end tag inside <%s>", se.Name.Local)
			}
			return ng, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "fullName":
				text, err := d.readText(t)
				if err != nil {
					return ng, err
				}
				ng.Full = text
			case "shortName":
				text, err := d.readText(t)
				if err != nil {
					return ng, err
				}
				ng.Short = append(ng.Short, text)
			case "ecNumber":
				text, err := d.readText(t)
				if err != nil {
					return ng, err
				}
				ng.ECNumber = append(ng.ECNumber, text)
			default:
				if _, err := d.skipSubtree(t, off); err != nil {
					return ng, err
				}
			}
		}
	}
}

func (d *frameDecoder) decodeGene(se xml.StartElement) (Gene, error) {
	var g Gene
	d.push("gene")
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return g, d.errf("unexpected end of frame inside <gene>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "gene" {
				return g, d.errf("mismatched end tag inside <gene>")
			}
			return g, nil
		case xml.StartElement:
			if t.Name.Local != "name" {
				if _, err := d.skipSubtree(t, off); err != nil {
					return g, err
				}
				continue
			}
			typ, _ := attr(t, "type")
			text, err := d.readText(t)
			if err != nil {
				return g, err
			}
			switch typ {
			case "primary", "":
				g.Name = text
			case "synonym":
				g.Synonyms = append(g.Synonyms, text)
			case "ordered locus":
				g.LocusNames = append(g.LocusNames, text)
			case "ORF":
				g.OrfNames = append(g.OrfNames, text)
			default:
				return g, d.unknownVariant("gene/name@type", typ)
			}
		}
	}
}

func (d *frameDecoder) decodeOrganism(se xml.StartElement) (Organism, error) {
	var o Organism
	d.push(se.Name.Local)
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return o, d.errf("unexpected end of frame inside <%s>: %v", se.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != se.Name.Local {
				return o, d.errf("mismatched end tag inside <%s>", se.Name.Local)
			}
			return o, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				typ, _ := attr(t, "type")
				text, err := d.readText(t)
				if err != nil {
					return o, err
				}
				switch typ {
				case "scientific":
					o.ScientificName = text
				case "common":
					o.CommonName = text
				case "synonym":
					o.Synonyms = append(o.Synonyms, text)
				default:
					return o, d.unknownVariant("organism/name@type", typ)
				}
			case "dbReference":
				id, _ := attr(t, "id")
				if typ, _ := attr(t, "type"); typ == "NCBI Taxonomy" {
					n, err := d.parseInt("organism/dbReference@id", id, 64)
					if err != nil {
						return o, err
					}
					o.TaxonID = n
				}
				if err := d.dec.Skip(); err != nil {
					return o, d.errf("unexpected end of frame inside <dbReference>: %v", err)
				}
			case "lineage":
				lineage, err := d.decodeLineage(t)
				if err != nil {
					return o, err
				}
				o.Lineage = lineage
			default:
				if _, err := d.skipSubtree(t, off); err != nil {
					return o, err
				}
			}
		}
	}
}

func (d *frameDecoder) decodeLineage(se xml.StartElement) ([]string, error) {
	var taxa []string
	d.push("lineage")
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return taxa, d.errf("unexpected end of frame inside <lineage>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "lineage" {
				return taxa, d.errf("mismatched end tag inside <lineage>")
			}
			return taxa, nil
		case xml.StartElement:
			if t.Name.Local != "taxon" {
				if _, err := d.skipSubtree(t, off); err != nil {
					return taxa, err
				}
				continue
			}
			text, err := d.readText(t)
			if err != nil {
				return taxa, err
			}
			taxa = append(taxa, text)
		}
	}
}

func (d *frameDecoder) decodeCitation(se xml.StartElement) (Citation, error) {
	var c Citation
	d.push("reference")
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return c, d.errf("unexpected end of frame inside <reference>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "reference" {
				return c, d.errf("mismatched end tag inside <reference>")
			}
			return c, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "citation":
				typ, _ := attr(t, "type")
				c.Type = typ
				if err := d.decodeCitationBody(t, &c); err != nil {
					return c, err
				}
			case "scope":
				text, err := d.readText(t)
				if err != nil {
					return c, err
				}
				c.Scopes = append(c.Scopes, text)
			default:
				if _, err := d.skipSubtree(t, off); err != nil {
					return c, err
				}
			}
		}
	}
}

func (d *frameDecoder) decodeCitationBody(se xml.StartElement, c *Citation) error {
	d.push("citation")
	defer d.pop()
	if v, ok := attr(se, "name"); ok {
		c.Source = v
	}
	for {
		tok, off, err := d.next()
		if err != nil {
			return d.errf("unexpected end of frame inside <citation>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "citation" {
				return d.errf("mismatched end tag inside <citation>")
			}
			return nil
		case xml.StartElement:
			switch t.Name.Local {
			case "title":
				text, err := d.readText(t)
				if err != nil {
					return err
				}
				c.Title = text
			case "person":
				if v, ok := attr(t, "name"); ok {
					c.Authors = append(c.Authors, v)
				}
				if err := d.dec.Skip(); err != nil {
					return d.errf("unexpected end of frame inside <person>: %v", err)
				}
			default:
				if _, err := d.skipSubtree(t, off); err != nil {
					return err
				}
			}
		}
	}
}

func (d *frameDecoder) decodeComment(se xml.StartElement) (Comment, error) {
	var c Comment
	d.push("comment")
	defer d.pop()
	typ, _ := attr(se, "type")
	kind, ok := commentKindByXMLType[typ]
	if ok {
		c.Kind = kind
	}
	for {
		tok, off, err := d.next()
		if err != nil {
			return c, d.errf("unexpected end of frame inside <comment>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "comment" {
				return c, d.errf("mismatched end tag inside <comment>")
			}
			return c, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "text":
				if v, ok := attr(t, "evidence"); ok {
					ids, err := d.parseEvidenceList(v)
					if err != nil {
						return c, err
					}
					c.Evidences = append(c.Evidences, ids...)
				}
				text, err := d.readText(t)
				if err != nil {
					return c, err
				}
				c.Text = text
			case "disease":
				if err := d.decodeDisease(t, &c); err != nil {
					return c, err
				}
			case "subcellularLocation":
				if err := d.decodeSubcellularLocation(t, &c); err != nil {
					return c, err
				}
			default:
				if _, err := d.skipSubtree(t, off); err != nil {
					return c, err
				}
			}
		}
	}
}

func (d *frameDecoder) decodeDisease(se xml.StartElement, c *Comment) error {
	d.push("disease")
	defer d.pop()
	if v, ok := attr(se, "id"); ok {
		c.DiseaseID = v
	}
	for {
		tok, off, err := d.next()
		if err != nil {
			return d.errf("unexpected end of frame inside <disease>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "disease" {
				return d.errf("mismatched end tag inside <disease>")
			}
			return nil
		case xml.StartElement:
			if t.Name.Local != "name" {
				if _, err := d.skipSubtree(t, off); err != nil {
					return err
				}
				continue
			}
			text, err := d.readText(t)
			if err != nil {
				return err
			}
			c.DiseaseName = text
		}
	}
}

func (d *frameDecoder) decodeSubcellularLocation(se xml.StartElement, c *Comment) error {
	d.push("subcellularLocation")
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return d.errf("unexpected end of frame inside <subcellularLocation>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "subcellularLocation" {
				return d.errf("mismatched end tag inside <subcellularLocation>")
			}
			return nil
		case xml.StartElement:
			if t.Name.Local != "location" {
				if _, err := d.skipSubtree(t, off); err != nil {
					return err
				}
				continue
			}
			text, err := d.readText(t)
			if err != nil {
				return err
			}
			c.Locations = append(c.Locations, text)
		}
	}
}

func (d *frameDecoder) parseEvidenceList(s string) ([]int, error) {
	fields := strings.Fields(s)
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := d.parseInt("evidence", f, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, int(n))
	}
	return ids, nil
}

func (d *frameDecoder) decodeKeyword(se xml.StartElement) (Keyword, error) {
	id, _ := attr(se, "id")
	text, err := d.readText(se)
	if err != nil {
		return Keyword{}, err
	}
	return Keyword{ID: id, Name: text}, nil
}

func (d *frameDecoder) decodeFeature(se xml.StartElement) (Feature, error) {
	var f Feature
	d.push("feature")
	defer d.pop()
	if v, ok := attr(se, "type"); ok {
		f.Type = d.intern(v)
	}
	if v, ok := attr(se, "description"); ok {
		f.Description = v
	}
	if v, ok := attr(se, "evidence"); ok {
		ids, err := d.parseEvidenceList(v)
		if err != nil {
			return f, err
		}
		f.Evidences = ids
	}
	for {
		tok, off, err := d.next()
		if err != nil {
			return f, d.errf("unexpected end of frame inside <feature>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "feature" {
				return f, d.errf("mismatched end tag inside <feature>")
			}
			return f, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "location":
				loc, err := d.decodeFeatureLocation(t)
				if err != nil {
					return f, err
				}
				f.Location = loc
			default:
				if _, err := d.skipSubtree(t, off); err != nil {
					return f, err
				}
			}
		}
	}
}

func (d *frameDecoder) decodeFeatureLocation(se xml.StartElement) (FeatureLocation, error) {
	var loc FeatureLocation
	d.push("location")
	defer d.pop()
	for {
		tok, off, err := d.next()
		if err != nil {
			return loc, d.errf("unexpected end of frame inside <location>: %v", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local != "location" {
				return loc, d.errf("mismatched end tag inside <location>")
			}
			return loc, nil
		case xml.StartElement:
			switch t.Name.Local {
			case "position":
				pos, _, err := d.decodeFeaturePosition(t)
				if err != nil {
					return loc, err
				}
				loc.IsPosition = true
				loc.Position = pos
			case "begin":
				pos, fuzzy, err := d.decodeFeaturePosition(t)
				if err != nil {
					return loc, err
				}
				loc.Begin = pos
				loc.BeginFuzzy = fuzzy
			case "end":
				pos, fuzzy, err := d.decodeFeaturePosition(t)
				if err != nil {
					return loc, err
				}
				loc.End = pos
				loc.EndFuzzy = fuzzy
			default:
				if _, err := d.skipSubtree(t, off); err != nil {
					return loc, err
				}
			}
		}
	}
}

func (d *frameDecoder) decodeFeaturePosition(se xml.StartElement) (int, bool, error) {
	fuzzy := false
	if v, ok := attr(se, "status"); ok && (v == "less than" || v == "greater than" || v == "unknown") {
		fuzzy = true
	}
	pos := 0
	if v, ok := attr(se, "position"); ok {
		n, err := d.parseInt(se.Name.Local+"@position", v, 32)
		if err != nil {
			return 0, fuzzy, err
		}
		pos = int(n)
	}
	if err := d.dec.Skip(); err != nil {
		return 0, fuzzy, d.errf("unexpected end of frame inside <%s>: %v", se.Name.Local, err)
	}
	return pos, fuzzy, nil
}
