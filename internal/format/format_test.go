package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBND = `
node Input {
}

NODE Mid {
	logic = (Input);
}

node Out {
	logic = (Mid & !Input);
}
`

func TestBNDParse(t *testing.T) {
	p := &BNDParser{}
	net, warns, err := p.Parse(sampleBND)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, net, 3)

	assert.True(t, net["Input"].IsInput)
	assert.Empty(t, net["Input"].Rule)
	assert.Equal(t, "(Input)", net["Mid"].Rule)
	assert.Equal(t, "(Mid & !Input)", net["Out"].Rule)
}

func TestBNDParseIdempotent(t *testing.T) {
	p := &BNDParser{}
	first, _, err := p.Parse(sampleBND)
	require.NoError(t, err)
	second, _, err := p.Parse(sampleBND)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBNDParseMalformedBlockContinues(t *testing.T) {
	text := `
node Good {
	logic = (A | B);
}

node Broken {
	logic = (A | B)
}

node AlsoGood {
	logic = (A);
}
`
	p := &BNDParser{}
	net, warns, err := p.Parse(text)
	require.NoError(t, err)

	// The broken rule is kept raw; parsing of the rest continues.
	require.Len(t, net, 3)
	assert.Equal(t, "(A | B)", net["Broken"].Rule)
	require.Len(t, warns, 1)
	assert.Equal(t, "Broken", warns[0].Node)
}

func TestBNDParseDuplicateWarns(t *testing.T) {
	text := `
node A { logic = (B); }
node A { logic = (C); }
`
	p := &BNDParser{}
	net, warns, err := p.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "(C)", net["A"].Rule)
	require.Len(t, warns, 1)
}

const sampleGraphML = `<?xml version="1.0"?>
<graphml>
  <graph>
    <node id="Input"/>
    <node id="Mid">
      <att name="MY-RULE" value="Input"/>
    </node>
    <node id="Out">
      <att name="MY-RULE" value="Mid and not(Input)"/>
    </node>
  </graph>
</graphml>
`

func TestGraphMLParse(t *testing.T) {
	p := &GraphMLParser{}
	net, warns, err := p.Parse(sampleGraphML)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, net, 3)

	assert.True(t, net["Input"].IsInput)
	assert.False(t, net["Mid"].IsInput)
	assert.Equal(t, "Input", net["Mid"].Rule)
	assert.Equal(t, "Mid & !(Input)", net["Out"].Rule)
}

func TestNormalizeRule(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A and B", "A & B"},
		{"A or B", "A | B"},
		{"not A", "! A"},
		{"not(A)", "!(A)"},
		{"A and not(B or C)", "A & !(B | C)"},
		{"Band or Nand", "Band | Nand"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRule(tt.in), "input %q", tt.in)
	}
}

func TestForPath(t *testing.T) {
	p, err := ForPath("cell_cycle.bnd")
	require.NoError(t, err)
	assert.Equal(t, "bnd", p.Name())

	p, err = ForPath("cell_cycle.graphml")
	require.NoError(t, err)
	assert.Equal(t, "graphml", p.Name())

	_, err = ForPath("cell_cycle.pdf")
	assert.Error(t, err)
}
