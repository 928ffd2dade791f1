// Package regular implements the algebra of regular languages used for
// derivative-based automaton construction. A language is a closed tagged
// union of six forms; derivatives, nullability and simplification are
// defined by structural recursion over those forms.
//
// Every variant is a comparable value type, so languages compare with ==,
// key maps, and act as visited-set members without any auxiliary hashing.
package regular

import "fmt"

// Language is a symbolic regular language. The six implementations below
// are the only ones; algorithms switch exhaustively over them.
type Language interface {
	isLanguage()
}

// Empty denotes the language containing no strings.
type Empty struct{}

// Epsilon denotes the language containing exactly the empty string.
type Epsilon struct{}

// Char denotes the single one-character string R.
type Char struct {
	R rune
}

// Union denotes the set union of two languages.
type Union struct {
	Left  Language
	Right Language
}

// Concat denotes the concatenation of two languages.
type Concat struct {
	Left  Language
	Right Language
}

// Star denotes the Kleene closure of a language.
type Star struct {
	Inner Language
}

func (Empty) isLanguage()   {}
func (Epsilon) isLanguage() {}
func (Char) isLanguage()    {}
func (Union) isLanguage()   {}
func (Concat) isLanguage()  {}
func (Star) isLanguage()    {}

// Ch returns the language of the single one-character string r.
func Ch(r rune) Language {
	return Char{R: r}
}

// Or folds the given languages into a right-nested union.
// Or(a, b, c) is Union(a, Union(b, c)).
func Or(first, second Language, rest ...Language) Language {
	if len(rest) == 0 {
		return Union{Left: first, Right: second}
	}
	return Union{Left: first, Right: Or(second, rest[0], rest[1:]...)}
}

// Cat folds the given languages into a right-nested concatenation.
func Cat(first, second Language, rest ...Language) Language {
	if len(rest) == 0 {
		return Concat{Left: first, Right: second}
	}
	return Concat{Left: first, Right: Cat(second, rest[0], rest[1:]...)}
}

// Many returns the Kleene closure of l.
func Many(l Language) Language {
	return Star{Inner: l}
}

// Lit returns the language of exactly the string s: Epsilon for the empty
// string, otherwise the concatenation of its characters.
func Lit(s string) Language {
	runes := []rune(s)
	if len(runes) == 0 {
		return Epsilon{}
	}
	lang := Language(Char{R: runes[len(runes)-1]})
	for i := len(runes) - 2; i >= 0; i-- {
		lang = Concat{Left: Char{R: runes[i]}, Right: lang}
	}
	return lang
}

// Nullable reports whether l contains the empty string.
func Nullable(l Language) bool {
	switch v := l.(type) {
	case Empty:
		return false
	case Epsilon:
		return true
	case Char:
		return false
	case Union:
		return Nullable(v.Left) || Nullable(v.Right)
	case Concat:
		return Nullable(v.Left) && Nullable(v.Right)
	case Star:
		return true
	default:
		panic(fmt.Sprintf("regular: unknown language form %T", l))
	}
}

// Derivative returns the Brzozowski derivative of l with respect to c:
// the language of suffixes of strings in l that begin with c.
func Derivative(l Language, c rune) Language {
	switch v := l.(type) {
	case Empty:
		return Empty{}
	case Epsilon:
		return Empty{}
	case Char:
		if v.R == c {
			return Epsilon{}
		}
		return Empty{}
	case Union:
		return Union{
			Left:  Derivative(v.Left, c),
			Right: Derivative(v.Right, c),
		}
	case Concat:
		head := Concat{Left: Derivative(v.Left, c), Right: v.Right}
		if Nullable(v.Left) {
			return Union{Left: head, Right: Derivative(v.Right, c)}
		}
		return head
	case Star:
		return Concat{Left: Derivative(v.Inner, c), Right: v}
	default:
		panic(fmt.Sprintf("regular: unknown language form %T", l))
	}
}

// Simplify applies one recursive pass of local algebraic identities:
// Concat with an Epsilon operand collapses to the other operand, Concat
// with an Empty operand collapses to Empty, Union with an Empty operand
// collapses to the other operand, Star(Epsilon) and Star(Empty) collapse
// to Epsilon and Empty. Identities are checked against a node's original
// children, so a reduction produced inside a child can expose a parent
// reduction the same pass misses. A pass never grows the term; Reduce
// iterates to the fixpoint.
func Simplify(l Language) Language {
	switch v := l.(type) {
	case Empty, Epsilon, Char:
		return l
	case Union:
		if v.Left == (Empty{}) {
			return Simplify(v.Right)
		}
		if v.Right == (Empty{}) {
			return Simplify(v.Left)
		}
		return Union{Left: Simplify(v.Left), Right: Simplify(v.Right)}
	case Concat:
		if v.Left == (Empty{}) || v.Right == (Empty{}) {
			return Empty{}
		}
		if v.Left == (Epsilon{}) {
			return Simplify(v.Right)
		}
		if v.Right == (Epsilon{}) {
			return Simplify(v.Left)
		}
		return Concat{Left: Simplify(v.Left), Right: Simplify(v.Right)}
	case Star:
		if v.Inner == (Empty{}) {
			return Empty{}
		}
		if v.Inner == (Epsilon{}) {
			return Epsilon{}
		}
		return Star{Inner: Simplify(v.Inner)}
	default:
		panic(fmt.Sprintf("regular: unknown language form %T", l))
	}
}

// Reduce applies Simplify until it reaches a structural fixpoint and
// returns that fixpoint. Termination follows from Simplify never
// increasing structural size; any new rule added to Simplify must keep
// that property.
func Reduce(l Language) Language {
	for {
		next := Simplify(l)
		if next == l {
			return next
		}
		l = next
	}
}

// Matches reports whether input is in l, by folding derivatives over the
// input and testing nullability at the end. This is the reference
// semantics the compiled automaton must agree with.
func Matches(l Language, input string) bool {
	for _, c := range input {
		l = Reduce(Derivative(l, c))
	}
	return Nullable(l)
}

// Size returns the number of nodes in the syntax tree of l.
func Size(l Language) int {
	switch v := l.(type) {
	case Empty, Epsilon, Char:
		return 1
	case Union:
		return 1 + Size(v.Left) + Size(v.Right)
	case Concat:
		return 1 + Size(v.Left) + Size(v.Right)
	case Star:
		return 1 + Size(v.Inner)
	default:
		panic(fmt.Sprintf("regular: unknown language form %T", l))
	}
}
