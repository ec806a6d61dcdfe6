package ids

import (
	"bytes"
	"errors"
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestIdentifierShapes(t *testing.T) {
	g := New(rand.New(rand.NewSource(42)))

	tests := []struct {
		name    string
		gen     func() string
		pattern string
	}{
		{"block", g.BlockID, `^docx[a-z0-9]{4}(_[a-z0-9]{4}){3}$`},
		{"record", g.RecordID, `^doxcn[a-z0-9]{4}(_[a-z0-9]{4}){3}$`},
		{"page", g.PageID, `^Wqf[a-z0-9]{4}(_[a-z0-9]{4}){3}$`},
		{"random", g.RandomID, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`},
		{"column", g.ColumnID, `^col[0-9a-f]{32}$`},
		{"row", g.RowID, `^row[0-9a-f]{32}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), tt.gen())
		})
	}
}

func TestDeterministicWithSeededSource(t *testing.T) {
	a := New(rand.New(rand.NewSource(7)))
	b := New(rand.New(rand.NewSource(7)))

	for i := 0; i < 5; i++ {
		assert.Equal(t, a.RecordID(), b.RecordID())
	}
	assert.Equal(t, a.RandomID(), b.RandomID())
}

func TestFixedEntropy(t *testing.T) {
	g := New(bytes.NewReader(make([]byte, 16)))
	assert.Equal(t, "doxcnaaaa_aaaa_aaaa_aaaa", g.RecordID())
}

func TestFailingSourceFallsBack(t *testing.T) {
	g := New(failingReader{})

	assert.Regexp(t, `^doxcn[a-z0-9]{4}(_[a-z0-9]{4}){3}$`, g.RecordID())
	assert.Len(t, g.RandomID(), 36)
}
