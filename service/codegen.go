package service

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// CodeGenerator produces the random suffix appended to a list's primary key
// to form its join code. One instance is shared across request goroutines and
// rand.Rand is not safe for concurrent use, so draws are serialized.
type CodeGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate draws 6 characters from [A-Z0-9] by rejection sampling: a draw
// that repeats an already-used character is discarded, so no character
// appears twice within one code.
func (g *CodeGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	used := make(map[byte]bool, codeLength)
	var code strings.Builder

	for code.Len() < codeLength {
		c := codeAlphabet[g.rand.Intn(len(codeAlphabet))]
		if used[c] {
			continue
		}
		used[c] = true
		code.WriteByte(c)
	}
	return code.String()
}
