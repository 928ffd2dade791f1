package regular

import (
	"fmt"
	"strings"
)

// Canonical renders l in its canonical printed form: "∅", "ε", the literal
// character, "(A ∪ B)", "(AB)" and "(A*)". For fully reduced languages the
// printed form is the state identity used throughout the dfa package: two
// reduced languages denote the same state exactly when they print the same.
func Canonical(l Language) string {
	var b strings.Builder
	writeCanonical(&b, l)
	return b.String()
}

func writeCanonical(b *strings.Builder, l Language) {
	switch v := l.(type) {
	case Empty:
		b.WriteString("∅")
	case Epsilon:
		b.WriteString("ε")
	case Char:
		b.WriteRune(v.R)
	case Union:
		b.WriteByte('(')
		writeCanonical(b, v.Left)
		b.WriteString(" ∪ ")
		writeCanonical(b, v.Right)
		b.WriteByte(')')
	case Concat:
		b.WriteByte('(')
		writeCanonical(b, v.Left)
		writeCanonical(b, v.Right)
		b.WriteByte(')')
	case Star:
		b.WriteByte('(')
		writeCanonical(b, v.Inner)
		b.WriteString("*)")
	default:
		panic(fmt.Sprintf("regular: unknown language form %T", l))
	}
}
