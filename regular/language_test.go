package regular

import "testing"

// === Constructor Tests ===

func TestLit(t *testing.T) {
	if Lit("") != (Epsilon{}) {
		t.Error("Lit of empty string should be Epsilon")
	}
	if Lit("a") != (Char{R: 'a'}) {
		t.Error("Lit of single character should be Char")
	}
	want := Concat{Left: Char{R: 'a'}, Right: Concat{Left: Char{R: 'b'}, Right: Char{R: 'c'}}}
	if Lit("abc") != Language(want) {
		t.Errorf("Lit(abc) = %s, want %s", Canonical(Lit("abc")), Canonical(want))
	}
}

func TestOrCatFolding(t *testing.T) {
	abc := Or(Ch('a'), Ch('b'), Ch('c'))
	want := Union{Left: Char{R: 'a'}, Right: Union{Left: Char{R: 'b'}, Right: Char{R: 'c'}}}
	if abc != Language(want) {
		t.Errorf("Or(a,b,c) = %s, want right-nested union", Canonical(abc))
	}

	cat := Cat(Ch('a'), Ch('b'), Ch('c'))
	if cat != Lit("abc") {
		t.Errorf("Cat(a,b,c) = %s, want %s", Canonical(cat), Canonical(Lit("abc")))
	}
}

// === Structural Equality ===

func TestStructuralEquality(t *testing.T) {
	l1 := Cat(Many(Ch('a')), Ch('b'))
	l2 := Cat(Many(Ch('a')), Ch('b'))
	l3 := Cat(Many(Ch('a')), Ch('c'))

	if l1 != l2 {
		t.Error("structurally identical languages should compare equal")
	}
	if l1 == l3 {
		t.Error("structurally distinct languages should not compare equal")
	}

	// Languages must be usable as map keys.
	seen := map[Language]bool{l1: true}
	if !seen[l2] {
		t.Error("equal language should hit the same map key")
	}
	if seen[l3] {
		t.Error("distinct language should not hit the same map key")
	}
}

// === Nullable Tests ===

func TestNullable(t *testing.T) {
	cases := []struct {
		lang Language
		want bool
	}{
		{Empty{}, false},
		{Epsilon{}, true},
		{Ch('a'), false},
		{Or(Ch('a'), Epsilon{}), true},
		{Or(Ch('a'), Ch('b')), false},
		{Cat(Epsilon{}, Epsilon{}), true},
		{Cat(Ch('a'), Epsilon{}), false},
		{Many(Ch('a')), true},
		{Many(Empty{}), true},
	}
	for _, c := range cases {
		if got := Nullable(c.lang); got != c.want {
			t.Errorf("Nullable(%s) = %v, want %v", Canonical(c.lang), got, c.want)
		}
	}
}

// === Derivative Tests ===

func TestDerivativeBase(t *testing.T) {
	if Derivative(Empty{}, 'a') != (Empty{}) {
		t.Error("derivative of Empty should be Empty")
	}
	if Derivative(Epsilon{}, 'a') != (Empty{}) {
		t.Error("derivative of Epsilon should be Empty")
	}
	if Derivative(Ch('a'), 'a') != (Epsilon{}) {
		t.Error("derivative of Char by its own symbol should be Epsilon")
	}
	if Derivative(Ch('a'), 'b') != (Empty{}) {
		t.Error("derivative of Char by another symbol should be Empty")
	}
}

func TestDerivativeUnion(t *testing.T) {
	d := Derivative(Or(Ch('a'), Ch('b')), 'a')
	want := Union{Left: Epsilon{}, Right: Empty{}}
	if d != Language(want) {
		t.Errorf("derivative of union = %s, want %s", Canonical(d), Canonical(want))
	}
}

func TestDerivativeConcat(t *testing.T) {
	// Left side not nullable: only the left branch survives.
	d := Derivative(Cat(Ch('a'), Ch('b')), 'a')
	want := Concat{Left: Epsilon{}, Right: Char{R: 'b'}}
	if d != Language(want) {
		t.Errorf("derivative of concat = %s, want %s", Canonical(d), Canonical(want))
	}

	// Left side nullable: the symbol may also start the right side.
	d = Derivative(Cat(Many(Ch('a')), Ch('b')), 'b')
	if !Nullable(Reduce(d)) {
		t.Errorf("(a*)b after consuming b should be nullable, got %s", Canonical(Reduce(d)))
	}
}

func TestDerivativeStar(t *testing.T) {
	star := Many(Ch('a'))
	d := Reduce(Derivative(star, 'a'))
	if d != star {
		t.Errorf("reduced derivative of a* by a should be a*, got %s", Canonical(d))
	}
	if Reduce(Derivative(star, 'b')) != (Empty{}) {
		t.Errorf("reduced derivative of a* by b should be ∅")
	}
}

// === Simplify / Reduce Tests ===

func TestSimplifyIdentities(t *testing.T) {
	cases := []struct {
		in   Language
		want Language
	}{
		{Cat(Epsilon{}, Ch('a')), Ch('a')},
		{Cat(Ch('a'), Epsilon{}), Ch('a')},
		{Cat(Empty{}, Ch('a')), Empty{}},
		{Cat(Ch('a'), Empty{}), Empty{}},
		{Or(Empty{}, Ch('a')), Ch('a')},
		{Or(Ch('a'), Empty{}), Ch('a')},
		{Many(Epsilon{}), Epsilon{}},
		{Many(Empty{}), Empty{}},
	}
	for _, c := range cases {
		if got := Simplify(c.in); got != c.want {
			t.Errorf("Simplify(%s) = %s, want %s", Canonical(c.in), Canonical(got), Canonical(c.want))
		}
	}
}

func TestSimplifySinglePassIsNotFixpoint(t *testing.T) {
	// Simplifying the inner concat exposes a union simplification that a
	// single pass does not perform.
	l := Or(Cat(Empty{}, Ch('a')), Ch('b'))
	once := Simplify(l)
	if once != Or(Empty{}, Ch('b')) {
		t.Errorf("one pass of Simplify(%s) = %s, want (∅ ∪ b)", Canonical(l), Canonical(once))
	}
	if Simplify(once) == once {
		t.Error("a second pass should still make progress")
	}
	if Reduce(l) != Language(Ch('b')) {
		t.Errorf("Reduce(%s) = %s, want b", Canonical(l), Canonical(Reduce(l)))
	}
}

func TestSimplifyNonGrowth(t *testing.T) {
	langs := []Language{
		Cat(Many(Or(Ch('a'), Empty{})), Cat(Epsilon{}, Ch('b'))),
		Derivative(Many(Or(Ch('a'), Ch('b'))), 'a'),
		Derivative(Derivative(Cat(Many(Ch('a')), Many(Ch('b'))), 'a'), 'b'),
		Or(Many(Empty{}), Cat(Empty{}, Many(Epsilon{}))),
	}
	for _, l := range langs {
		if Size(Simplify(l)) > Size(l) {
			t.Errorf("Simplify grew %s from %d to %d nodes",
				Canonical(l), Size(l), Size(Simplify(l)))
		}
	}
}

func TestReduceIdempotent(t *testing.T) {
	langs := []Language{
		Empty{},
		Epsilon{},
		Ch('a'),
		Or(Cat(Empty{}, Ch('a')), Many(Epsilon{})),
		Derivative(Cat(Many(Ch('a')), Ch('b')), 'a'),
		Derivative(Derivative(Or(Lit("ab"), Lit("ba")), 'a'), 'b'),
	}
	for _, l := range langs {
		r := Reduce(l)
		if Reduce(r) != r {
			t.Errorf("Reduce not idempotent for %s: %s vs %s",
				Canonical(l), Canonical(r), Canonical(Reduce(r)))
		}
	}
}

// === Matches (reference semantics) ===

func TestMatches(t *testing.T) {
	cases := []struct {
		lang  Language
		input string
		want  bool
	}{
		{Empty{}, "", false},
		{Empty{}, "a", false},
		{Epsilon{}, "", true},
		{Epsilon{}, "a", false},
		{Ch('a'), "a", true},
		{Ch('a'), "", false},
		{Ch('a'), "aa", false},
		{Or(Ch('a'), Ch('b')), "a", true},
		{Or(Ch('a'), Ch('b')), "b", true},
		{Or(Ch('a'), Ch('b')), "ab", false},
		{Cat(Ch('a'), Ch('b')), "ab", true},
		{Cat(Ch('a'), Ch('b')), "ba", false},
		{Many(Ch('a')), "", true},
		{Many(Ch('a')), "aaaa", true},
		{Many(Ch('a')), "aab", false},
		{Cat(Many(Ch('a')), Ch('b')), "aaab", true},
		{Cat(Many(Ch('a')), Ch('b')), "b", true},
		{Cat(Many(Or(Ch('a'), Ch('b'))), Ch('c')), "ababc", true},
	}
	for _, c := range cases {
		if got := Matches(c.lang, c.input); got != c.want {
			t.Errorf("Matches(%s, %q) = %v, want %v", Canonical(c.lang), c.input, got, c.want)
		}
	}
}

// === Canonical Printing ===

func TestCanonical(t *testing.T) {
	cases := []struct {
		lang Language
		want string
	}{
		{Empty{}, "∅"},
		{Epsilon{}, "ε"},
		{Ch('a'), "a"},
		{Or(Ch('a'), Ch('b')), "(a ∪ b)"},
		{Cat(Ch('a'), Ch('b')), "(ab)"},
		{Many(Ch('a')), "(a*)"},
		{Cat(Many(Ch('a')), Or(Ch('b'), Epsilon{})), "((a*)(b ∪ ε))"},
	}
	for _, c := range cases {
		if got := Canonical(c.lang); got != c.want {
			t.Errorf("Canonical = %q, want %q", got, c.want)
		}
	}
}

func TestSize(t *testing.T) {
	if Size(Empty{}) != 1 {
		t.Error("Size of leaf should be 1")
	}
	if got := Size(Cat(Many(Ch('a')), Or(Ch('b'), Epsilon{}))); got != 6 {
		t.Errorf("Size = %d, want 6", got)
	}
}
