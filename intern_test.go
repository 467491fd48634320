package uniprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternPoolReturnsEqualStrings(t *testing.T) {
	p := NewInternPool()
	a := p.Intern("Swiss-Prot")
	b := p.Intern("Swiss-Prot")
	assert.Equal(t, a, b)
	assert.Equal(t, "Swiss-Prot", a)
}

func TestInternPoolEmptyStringPassthrough(t *testing.T) {
	p := NewInternPool()
	assert.Equal(t, "", p.Intern(""))
}

func TestInternPoolNilReceiverIsSafe(t *testing.T) {
	var p *InternPool
	assert.Equal(t, "x", p.Intern("x"))
}
