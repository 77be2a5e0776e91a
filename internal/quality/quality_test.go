package quality

import (
	"sync"
	"testing"
)

func TestNormalizeKnownTokens(t *testing.T) {
	cases := []struct {
		token string
		want  int
	}{
		{"", 0},
		{"720p", 720},
		{"1080p", 1080},
		{"  1080P ", 1080},
		{"2160p", 2160},
		{"1k", 1080},
		{"2k", 1440},
		{"4k", 2160},
		{"8k", 4320},
		{"4K", 2160},
		{"480", 480},
		{"1440", 1440},
		{"hd", 720},
		{"high", 720},
		{"fhd", 1080},
		{"full hd", 1080},
		{"fullhd", 1080},
		{"qhd", 1440},
		{"quad hd", 1440},
		{"quadhd", 1440},
		{"uhd", 2160},
		{"ultra hd", 2160},
		{"ultrahd", 2160},
		{"Ultra HD", 2160},
		{"potato", 0},
		{"p", 0},
		{"xp", 0},
		{"10eighty", 0},
	}
	n := NewNormalizer(nil)
	for _, tc := range cases {
		if got := n.Normalize(tc.token); got != tc.want {
			t.Errorf("Normalize(%q) = %d, want %d", tc.token, got, tc.want)
		}
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	n := NewNormalizer(nil)
	for i := 0; i < 3; i++ {
		if got := n.Normalize("720p"); got != 720 {
			t.Fatalf("call %d: Normalize(720p) = %d, want 720", i, got)
		}
		if got := n.Normalize("nonsense"); got != 0 {
			t.Fatalf("call %d: Normalize(nonsense) = %d, want 0", i, got)
		}
	}
}

func TestNormalizeMemoizes(t *testing.T) {
	n := NewNormalizer(nil)
	if n.Normalize("1080p") != 1080 {
		t.Fatal("warm-up parse failed")
	}
	if _, ok := n.cache.Load("1080p"); !ok {
		t.Fatal("expected token to be cached after first parse")
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	n := NewNormalizer(nil)
	tokens := []string{"720p", "4k", "fhd", "unknown", "360"}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, token := range tokens {
				n.Normalize(token)
			}
		}()
	}
	wg.Wait()
	for token, want := range map[string]int{"720p": 720, "4k": 2160, "fhd": 1080, "unknown": 0, "360": 360} {
		if got := n.Normalize(token); got != want {
			t.Fatalf("after concurrent access Normalize(%q) = %d, want %d", token, got, want)
		}
	}
}
