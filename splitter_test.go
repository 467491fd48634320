package uniprot

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAllFrames(t *testing.T, sp *Splitter) []*Frame {
	t.Helper()
	var frames []*Frame
	for {
		f, err := sp.Next()
		if err == io.EOF {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, f)
	}
}

func TestSplitterEmptyRootSelfClosing(t *testing.T) {
	sp := NewSplitter(strings.NewReader(`<uniprot xmlns="x"/>`), FlavourUniProtKB)
	frames := readAllFrames(t, sp)
	assert.Empty(t, frames)
}

func TestSplitterEmptyRootExplicitClose(t *testing.T) {
	sp := NewSplitter(strings.NewReader(`<uniprot xmlns="x"></uniprot>`), FlavourUniProtKB)
	frames := readAllFrames(t, sp)
	assert.Empty(t, frames)
}

func TestSplitterSingleEntry(t *testing.T) {
	doc := `<uniprot xmlns="http://uniprot.org/uniprot"><entry dataset="Swiss-Prot"><accession>P00001</accession></entry></uniprot>`
	sp := NewSplitter(strings.NewReader(doc), FlavourUniProtKB)
	frames := readAllFrames(t, sp)
	require.Len(t, frames, 1)
	assert.EqualValues(t, 0, frames[0].Seq)
	assert.Contains(t, string(frames[0].Data), `xmlns="http://uniprot.org/uniprot"`)
	assert.Contains(t, string(frames[0].Data), "P00001")
}

func TestSplitterDiscardsNonEntryChildren(t *testing.T) {
	doc := `<uniprot><copyright>ignored</copyright><entry dataset="x"><accession>P1</accession></entry></uniprot>`
	sp := NewSplitter(strings.NewReader(doc), FlavourUniProtKB)
	frames := readAllFrames(t, sp)
	require.Len(t, frames, 1)
	assert.Contains(t, string(frames[0].Data), "P1")
}

func TestSplitterSequenceNumbersAreDenseAndOrdered(t *testing.T) {
	doc := `<uniprot><entry dataset="a"><accession>P1</accession></entry><entry dataset="b"><accession>P2</accession></entry><entry dataset="c"><accession>P3</accession></entry></uniprot>`
	sp := NewSplitter(strings.NewReader(doc), FlavourUniProtKB)
	frames := readAllFrames(t, sp)
	require.Len(t, frames, 3)
	for i, f := range frames {
		assert.EqualValues(t, i, f.Seq)
	}
}

func TestSplitterRootMismatch(t *testing.T) {
	sp := NewSplitter(strings.NewReader(`<foo></foo>`), FlavourUniProtKB)
	_, err := sp.Next()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindRootMismatch, pe.Kind)
}

func TestSplitterTruncatedEntry(t *testing.T) {
	doc := `<uniprot><entry dataset="x"><accession>P1</accession>`
	sp := NewSplitter(strings.NewReader(doc), FlavourUniProtKB)
	_, err := sp.Next()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindTruncatedEntry, pe.Kind)
}

func TestSplitterMalformedXMLBadEndTagSyntax(t *testing.T) {
	doc := `<uniprot><entry dataset="x"><accession>P1</accession end></entry></uniprot>`
	sp := NewSplitter(strings.NewReader(doc), FlavourUniProtKB)
	_, err := sp.Next()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindMalformedXML, pe.Kind)
}

func TestSplitterAcceptsAnyUniRefFamilyRoot(t *testing.T) {
	for _, root := range []string{"UniRef50", "UniRef90", "UniRef100"} {
		doc := `<` + root + `><entry id="x"></entry></` + root + `>`
		sp := NewSplitter(strings.NewReader(doc), FlavourUniRef)
		frames := readAllFrames(t, sp)
		require.Len(t, frames, 1, "root %s", root)
	}
}

func TestSplitterEmptyEntryTagEmitsFrame(t *testing.T) {
	doc := `<uniparc><entry/></uniparc>`
	sp := NewSplitter(strings.NewReader(doc), FlavourUniParc)
	frames := readAllFrames(t, sp)
	require.Len(t, frames, 1)
}

func TestSplitterIgnoresCommentsAndPIsAtTopLevel(t *testing.T) {
	doc := `<?xml version="1.0"?><uniprot><!-- a comment --><entry dataset="x"><accession>P1</accession></entry></uniprot>`
	sp := NewSplitter(strings.NewReader(doc), FlavourUniProtKB)
	frames := readAllFrames(t, sp)
	require.Len(t, frames, 1)
}

func TestSplitterBytesReadAdvances(t *testing.T) {
	doc := `<uniprot><entry dataset="x"><accession>P1</accession></entry></uniprot>`
	sp := NewSplitter(strings.NewReader(doc), FlavourUniProtKB)
	assert.EqualValues(t, 0, sp.BytesRead())
	_, err := sp.Next()
	require.NoError(t, err)
	assert.Greater(t, sp.BytesRead(), int64(0))
}
