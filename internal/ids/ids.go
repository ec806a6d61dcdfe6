// Package ids generates the random identifiers used in Lark clipboard
// payloads. Collisions are not checked for.
package ids

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const idChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// Prefixes distinguishing the identifier namespaces
const (
	BlockPrefix  = "docx"
	RecordPrefix = "doxcn"
	PagePrefix   = "Wqf"
)

// Generator produces identifiers from an entropy source. It is safe for
// concurrent use.
type Generator struct {
	mu sync.Mutex
	r  io.Reader
}

// New creates a generator reading from r. A nil reader uses crypto/rand.
func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{r: r}
}

// Default returns a generator backed by crypto/rand
func Default() *Generator {
	return New(nil)
}

// BlockID returns an auxiliary block id: docx + four groups of four
func (g *Generator) BlockID() string {
	return g.token(BlockPrefix)
}

// RecordID returns a record id: doxcn + four groups of four
func (g *Generator) RecordID() string {
	return g.token(RecordPrefix)
}

// PageID returns a page root id: Wqf + four groups of four
func (g *Generator) PageID() string {
	return g.token(PagePrefix)
}

// RandomID returns a version 4 UUID
func (g *Generator) RandomID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := uuid.NewRandomFromReader(g.r)
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// ColumnID returns a table column id
func (g *Generator) ColumnID() string {
	return "col" + strings.ReplaceAll(g.RandomID(), "-", "")
}

// RowID returns a table row id
func (g *Generator) RowID() string {
	return "row" + strings.ReplaceAll(g.RandomID(), "-", "")
}

func (g *Generator) token(prefix string) string {
	buf := g.read(16)

	var b strings.Builder
	b.Grow(len(prefix) + 19)
	b.WriteString(prefix)
	for i, c := range buf {
		if i > 0 && i%4 == 0 {
			b.WriteByte('_')
		}
		b.WriteByte(idChars[int(c)%len(idChars)])
	}
	return b.String()
}

// read fills n bytes from the source, falling back to crypto/rand when the
// source fails so that generation itself never errors.
func (g *Generator) read(n int) []byte {
	buf := make([]byte, n)

	g.mu.Lock()
	_, err := io.ReadFull(g.r, buf)
	g.mu.Unlock()

	if err != nil {
		_, _ = io.ReadFull(rand.Reader, buf)
	}
	return buf
}
