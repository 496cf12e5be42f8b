package transcript

import "testing"

func TestChallengeDeterministic(t *testing.T) {
	t1 := New("statement")
	t1.Append("x", []byte("hello"))
	c1 := t1.Challenge("c")

	t2 := New("statement")
	t2.Append("x", []byte("hello"))
	c2 := t2.Challenge("c")

	if c1 != c2 {
		t.Fatal("identical transcripts produced different challenges")
	}
}

func TestChallengeSensitiveToStatement(t *testing.T) {
	t1 := New("statement-a")
	t1.Append("x", []byte("hello"))
	c1 := t1.Challenge("c")

	t2 := New("statement-b")
	t2.Append("x", []byte("hello"))
	c2 := t2.Challenge("c")

	if c1 == c2 {
		t.Fatal("different statements produced the same challenge")
	}
}

func TestChallengeSensitiveToAppendedData(t *testing.T) {
	t1 := New("statement")
	t1.Append("x", []byte("hello"))

	t2 := New("statement")
	t2.Append("x", []byte("goodbye"))

	if t1.Challenge("c") == t2.Challenge("c") {
		t.Fatal("different appended data produced the same challenge")
	}
}

func TestForkProducesDistinctStreams(t *testing.T) {
	base := New("statement")
	base.Append("x", []byte("hello"))

	rng1 := base.Fork("witnesses", [][]byte{[]byte("w")})
	rng2 := base.Fork("witnesses", [][]byte{[]byte("w")})

	var b1, b2 [32]byte
	if _, err := rng1.Read(b1[:]); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := rng2.Read(b2[:]); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if b1 == b2 {
		t.Fatal("two forks of the same transcript produced identical streams (entropy reseed not mixed in)")
	}
}

func TestForkStreamIsLong(t *testing.T) {
	base := New("statement")
	rng := base.Fork("witnesses", nil)
	buf := make([]byte, 1000)
	n, err := rng.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read returned %d bytes, want %d", n, len(buf))
	}
}
