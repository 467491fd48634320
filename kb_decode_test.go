package uniprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleKBFrame = `<entry dataset="Swiss-Prot" created="1995-02-01" modified="2023-06-28" version="5">
	<accession>P00001</accession>
	<accession>Q99999</accession>
	<name>CYC_HUMAN</name>
	<protein>
		<recommendedName>
			<fullName>Cytochrome c</fullName>
			<shortName>Cyt c</shortName>
		</recommendedName>
		<alternativeName>
			<fullName>Something else</fullName>
		</alternativeName>
	</protein>
	<gene>
		<name type="primary">CYCS</name>
		<name type="synonym">CYC</name>
	</gene>
	<organism>
		<name type="scientific">Homo sapiens</name>
		<name type="common">Human</name>
		<dbReference type="NCBI Taxonomy" id="9606"/>
		<lineage>
			<taxon>Eukaryota</taxon>
			<taxon>Metazoa</taxon>
		</lineage>
	</organism>
	<reference>
		<citation type="journal article" name="J Biol Chem">
			<title>On cytochromes.</title>
			<person name="Smith J."/>
			<person name="Doe A."/>
		</citation>
		<scope>SEQUENCE</scope>
	</reference>
	<comment type="function">
		<text>Electron carrier.</text>
	</comment>
	<comment type="disease">
		<disease id="DI-00001">
			<name>Some disease</name>
		</disease>
	</comment>
	<comment type="subcellular location">
		<subcellularLocation>
			<location>Mitochondrion</location>
		</subcellularLocation>
	</comment>
	<comment type="totally unknown topic">
		<text>unused</text>
	</comment>
	<dbReference type="EMBL" id="X01234">
		<property type="molecule type" value="mRNA"/>
	</dbReference>
	<proteinExistence type="evidence at protein level"/>
	<keyword id="KW-0249">Electron transport</keyword>
	<feature type="chain" description="Cytochrome c">
		<location>
			<begin position="1"/>
			<end position="104" status="greater than"/>
		</location>
	</feature>
	<feature type="modified residue" description="N-acetyl">
		<location>
			<position position="1"/>
		</location>
	</feature>
	<somethingFromTheFuture attr="x"><nested>val</nested></somethingFromTheFuture>
	<sequence length="10" mass="1234" checksum="ABCDEF" version="1">MSEQ
	VALUE</sequence>
</entry>`

func decodeSampleKB(t *testing.T) KBEntry {
	t.Helper()
	pool := NewInternPool()
	opts := NewOptions()
	entry, err := decodeKBEntry([]byte(sampleKBFrame), 7, pool, opts)
	require.NoError(t, err)
	return entry
}

func TestDecodeKBEntryBasics(t *testing.T) {
	entry := decodeSampleKB(t)
	assert.Equal(t, "Swiss-Prot", entry.Dataset)
	assert.Equal(t, []string{"P00001", "Q99999"}, entry.Accessions)
	assert.Equal(t, "CYC_HUMAN", entry.Name)
	assert.Equal(t, 5, entry.Version)
	assert.Equal(t, calendarDate{1995, 2, 1}, entry.Created)
	assert.Equal(t, calendarDate{2023, 6, 28}, entry.Modified)
}

func TestDecodeKBEntryProtein(t *testing.T) {
	entry := decodeSampleKB(t)
	assert.Equal(t, "Cytochrome c", entry.Protein.Recommended.Full)
	assert.Equal(t, []string{"Cyt c"}, entry.Protein.Recommended.Short)
	require.Len(t, entry.Protein.Alternative, 1)
	assert.Equal(t, "Something else", entry.Protein.Alternative[0].Full)
}

func TestDecodeKBEntryGene(t *testing.T) {
	entry := decodeSampleKB(t)
	require.Len(t, entry.Genes, 1)
	assert.Equal(t, "CYCS", entry.Genes[0].Name)
	assert.Equal(t, []string{"CYC"}, entry.Genes[0].Synonyms)
}

func TestDecodeKBEntryOrganism(t *testing.T) {
	entry := decodeSampleKB(t)
	assert.Equal(t, "Homo sapiens", entry.Organism.ScientificName)
	assert.Equal(t, "Human", entry.Organism.CommonName)
	assert.EqualValues(t, 9606, entry.Organism.TaxonID)
	assert.Equal(t, []string{"Eukaryota", "Metazoa"}, entry.Organism.Lineage)
}

func TestDecodeKBEntryCitation(t *testing.T) {
	entry := decodeSampleKB(t)
	require.Len(t, entry.References, 1)
	ref := entry.References[0]
	assert.Equal(t, "journal article", ref.Type)
	assert.Equal(t, "On cytochromes.", ref.Title)
	assert.Equal(t, "J Biol Chem", ref.Source)
	assert.Equal(t, []string{"Smith J.", "Doe A."}, ref.Authors)
	assert.Equal(t, []string{"SEQUENCE"}, ref.Scopes)
}

func TestDecodeKBEntryComments(t *testing.T) {
	entry := decodeSampleKB(t)
	require.Len(t, entry.Comments, 4)
	assert.Equal(t, CommentFunction, entry.Comments[0].Kind)
	assert.Equal(t, "Electron carrier.", entry.Comments[0].Text)
	assert.Equal(t, CommentDisease, entry.Comments[1].Kind)
	assert.Equal(t, "Some disease", entry.Comments[1].DiseaseName)
	assert.Equal(t, "DI-00001", entry.Comments[1].DiseaseID)
	assert.Equal(t, CommentSubcellularLocation, entry.Comments[2].Kind)
	assert.Equal(t, []string{"Mitochondrion"}, entry.Comments[2].Locations)
	assert.Equal(t, CommentUnknown, entry.Comments[3].Kind)
}

func TestDecodeKBEntryDBReferenceAndExistence(t *testing.T) {
	entry := decodeSampleKB(t)
	require.Len(t, entry.DBReferences, 1)
	assert.Equal(t, "EMBL", entry.DBReferences[0].Type)
	assert.Equal(t, "mRNA", entry.DBReferences[0].Properties["molecule type"])
	assert.Equal(t, 1, entry.ProteinExistence)
}

func TestDecodeKBEntryKeywordAndFeature(t *testing.T) {
	entry := decodeSampleKB(t)
	require.Len(t, entry.Keywords, 1)
	assert.Equal(t, "KW-0249", entry.Keywords[0].ID)
	require.Len(t, entry.Features, 2)
	assert.Equal(t, 1, entry.Features[0].Location.Begin)
	assert.Equal(t, 104, entry.Features[0].Location.End)
	assert.True(t, entry.Features[0].Location.EndFuzzy)
	assert.True(t, entry.Features[1].Location.IsPosition)
	assert.Equal(t, 1, entry.Features[1].Location.Position)
}

func TestDecodeKBEntryUnparsedForwardCompat(t *testing.T) {
	entry := decodeSampleKB(t)
	require.Len(t, entry.Unparsed, 1)
	assert.Equal(t, "somethingFromTheFuture", entry.Unparsed[0].Path[len(entry.Unparsed[0].Path)-1])
	assert.Contains(t, entry.Unparsed[0].Raw, "<nested>val</nested>")
}

func TestDecodeKBEntrySequence(t *testing.T) {
	entry := decodeSampleKB(t)
	assert.Equal(t, 10, entry.Sequence.Length)
	assert.EqualValues(t, 1234, entry.Sequence.Mass)
	assert.Equal(t, "ABCDEF", entry.Sequence.Checksum)
	assert.Equal(t, "MSEQVALUE", entry.Sequence.Value)
}

func TestDecodeKBEntryUnknownGeneNameTypeFails(t *testing.T) {
	frame := `<entry dataset="x"><gene><name type="bogus">X</name></gene></entry>`
	_, err := decodeKBEntry([]byte(frame), 0, NewInternPool(), NewOptions())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindDecode, pe.Kind)
}

func TestDecodeKBEntryInvalidDateFails(t *testing.T) {
	frame := `<entry dataset="x" created="2021-13-01"></entry>`
	_, err := decodeKBEntry([]byte(frame), 3, NewInternPool(), NewOptions())
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindDecode, pe.Kind)
	assert.EqualValues(t, 3, pe.Seq)
}

func TestDecodeKBEntryDateWithZoneDesignator(t *testing.T) {
	frame := `<entry dataset="x" created="1995-02-01Z"></entry>`
	entry, err := decodeKBEntry([]byte(frame), 0, NewInternPool(), NewOptions())
	require.NoError(t, err)
	assert.Equal(t, calendarDate{1995, 2, 1}, entry.Created)
}
