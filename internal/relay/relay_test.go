package relay

import "testing"

func TestWrap(t *testing.T) {
	t.Parallel()

	target := "https://www.reddit.com/r/testsub/top.json?limit=100"

	if got := Wrap("", target); got != target {
		t.Fatalf("empty base must pass through, got %s", got)
	}

	got := Wrap("https://cors.eu.org/", target)
	want := "https://cors.eu.org/https%3A%2F%2Fwww.reddit.com%2Fr%2Ftestsub%2Ftop.json%3Flimit%3D100"
	if got != want {
		t.Fatalf("Wrap = %s, want %s", got, want)
	}
}
