package uniprot

import "net/url"

// ParsedURL is the structured form of a link: scheme, host, path and
// raw query alongside the original string. parseLinkURL builds one;
// none of the entry decoders calls it, so decoded entries carry no
// ParsedURL values whether or not Options.ExposeURLType is enabled.
//
// No third-party URL parser appears anywhere in the retrieval pack, and
// net/url is the idiomatic, complete choice for RFC 3986 parsing in Go
// — see DESIGN.md for why this one concern stays on the standard
// library instead of an ecosystem dependency.
type ParsedURL struct {
	Raw      string
	Scheme   string
	Host     string
	Path     string
	RawQuery string
}

// parseLinkURL parses raw into a ParsedURL, returning a decode error
// (not a panic) on malformed input.
func (d *frameDecoder) parseLinkURL(field, raw string) (*ParsedURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, d.errf("invalid URL %q for %s: %v", raw, field, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, d.errf("invalid URL %q for %s: missing scheme or host", raw, field)
	}
	return &ParsedURL{
		Raw:      raw,
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     u.Path,
		RawQuery: u.RawQuery,
	}, nil
}
