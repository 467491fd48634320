package uniprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinkURL(t *testing.T) {
	d := newFrameDecoder(nil, 0, NewInternPool(), NewOptions())
	u, err := d.parseLinkURL("dbReference/property[link]@value", "https://rest.uniprot.org/uniprotkb/P00001?format=xml")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "rest.uniprot.org", u.Host)
	assert.Equal(t, "/uniprotkb/P00001", u.Path)
	assert.Equal(t, "format=xml", u.RawQuery)
}

func TestParseLinkURLRejectsOpaqueText(t *testing.T) {
	d := newFrameDecoder(nil, 0, NewInternPool(), NewOptions())
	_, err := d.parseLinkURL("field", "not a url")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindDecode, pe.Kind)
}
