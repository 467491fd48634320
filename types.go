package uniprot

// Flavour selects a dataset family: its required root element name(s)
// and, indirectly, which decoder the driver dispatches each frame to.
type Flavour int

const (
	// FlavourUniProtKB selects UniProtKB (Swiss-Prot/TrEMBL) dumps,
	// root element "uniprot".
	FlavourUniProtKB Flavour = iota
	// FlavourUniRef selects UniRef dumps, root element one of
	// "UniRef100", "UniRef90", "UniRef50".
	FlavourUniRef
	// FlavourUniParc selects UniParc dumps, root element "uniparc".
	FlavourUniParc
)

// rootNames returns the set of root element names accepted for a flavour.
func (f Flavour) rootNames() []string {
	switch f {
	case FlavourUniProtKB:
		return []string{"uniprot"}
	case FlavourUniRef:
		return []string{"UniRef100", "UniRef90", "UniRef50"}
	case FlavourUniParc:
		return []string{"uniparc"}
	default:
		return nil
	}
}

// Frame is an owned, contiguous byte buffer holding the raw XML of
// exactly one top-level <entry>...</entry>, self-contained with the
// namespace declarations inherited from the root. Seq is a
// monotonically increasing, dense, zero-based sequence number assigned
// at production time; frames are produced in document order.
type Frame struct {
	Seq  int64
	Data []byte
}

// workItem is the pair (sequence number, frame) sent from producer to
// decoder workers. A non-nil splitErr marks a pass-through item: the
// frame that raised a splitter-level error never reaches a decoder, it
// is simply relayed to the reassembler at its reserved sequence number
// so ordering is preserved without a second writer on resultChan.
type workItem struct {
	seq      int64
	frame    []byte
	splitErr error
}

// resultItem is the pair (sequence number, decoded entry or error) sent
// from workers back to the reassembler.
type resultItem struct {
	seq   int64
	entry any
	err   error
}
