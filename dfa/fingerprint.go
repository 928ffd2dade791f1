package dfa

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"
	"strings"

	"github.com/holiman/uint256"
)

// Fingerprint returns a 256-bit commitment to the machine: a SHA-256 over
// the sorted transition table, the start state, the accept set and the
// alphabet. Machines with the same states, transitions, start and accept
// set fingerprint identically regardless of construction order. The value
// keys the machine cache and binds acceptance proofs to one machine.
func (m *Machine) Fingerprint() *uint256.Int {
	transitions := make([]string, len(m.Transitions))
	for i, tr := range m.Transitions {
		transitions[i] = string(tr.From) + "\x00" + string(tr.Symbol) + "\x00" + string(tr.To)
	}
	sort.Strings(transitions)

	accept := make([]string, 0, len(m.Accept))
	for s := range m.Accept {
		accept = append(accept, string(s))
	}
	sort.Strings(accept)

	h := sha256.New()
	writeSection := func(parts []string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(parts)))
		h.Write(n[:])
		h.Write([]byte(strings.Join(parts, "\x01")))
	}
	writeSection(transitions)
	writeSection([]string{string(m.Start)})
	writeSection(accept)
	writeSection([]string{string(m.Alphabet)})

	return new(uint256.Int).SetBytes(h.Sum(nil))
}
