package uniprot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorMessage(t *testing.T) {
	err := decodeError(42, []string{"entry", "feature", "location"}, "invalid integer %q for %s", "xx", "begin@position")
	assert.Equal(t, "decode: invalid integer \"xx\" for begin@position (at entry/feature/location)", err.Error())
	assert.EqualValues(t, 42, err.Seq)
}

func TestRootMismatchError(t *testing.T) {
	err := rootMismatchError([]string{"uniprot"}, "foo")
	assert.Equal(t, KindRootMismatch, err.Kind)
	assert.Equal(t, int64(-1), err.Seq)
}

func TestIsTerminal(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"root mismatch", rootMismatchError([]string{"uniprot"}, "foo"), true},
		{"malformed xml", malformedXMLError(3, "bad"), true},
		{"truncated entry", truncatedEntryError(5), true},
		{"io", ioError(1, errors.New("boom")), true},
		{"decode", decodeError(1, nil, "bad"), false},
		{"plain error", errors.New("not a ParseError"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsTerminal(c.err))
		})
	}
}

func TestIOErrorUnwraps(t *testing.T) {
	cause := errors.New("disk on fire")
	err := ioError(0, cause)
	assert.ErrorIs(t, err, cause)
}

func TestUnknownVariantError(t *testing.T) {
	err := unknownVariantError(7, []string{"entry", "gene", "name"}, "gene/name@type", "weird")
	assert.Equal(t, KindDecode, err.Kind)
	assert.Contains(t, err.Message, "weird")
	assert.Contains(t, err.Message, "gene/name@type")
}
