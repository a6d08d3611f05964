package rejit

import "testing"

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"simple literal", "hello", false},
		{"alternation", "foo|bar", false},
		{"repetition", "a+", false},
		{"bounded repetition", "a{2,4}", false},
		{"bracket class", "[a-z0-9]+", false},
		{"posix class", "[[:digit:]]+", false},
		{"anchors", "^abc$", false},
		{"unmatched paren", "(abc", true},
		{"dangling alternation", "abc|", true},
		{"bad repetition bounds", "a{4,2}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compile(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
			}
			if !tt.wantErr && re == nil {
				t.Fatal("Compile() returned nil Regex with nil error")
			}
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile did not panic on invalid pattern")
		}
	}()
	MustCompile("(")
}

func TestMatchAnywhere(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"literal present", "hello", "say hello world", true},
		{"literal absent", "hello", "goodbye world", false},
		{"digit class", "[0-9]+", "room 42", true},
		{"digit class absent", "[0-9]+", "no digits here", false},
		{"anchored start mismatch", "^abc", "xabc", false},
		{"anchored start match", "^abc", "abcx", true},
		{"anchored end match", "abc$", "xabc", true},
		{"period", "a.c", "abc", true},
		{"alternation second branch", "cat|dog", "I have a dog", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchFull(t *testing.T) {
	re := MustCompile(`[a-z]+[0-9]+`)
	if !re.MatchFull([]byte("abc123")) {
		t.Error("expected full match of \"abc123\"")
	}
	if re.MatchFull([]byte("abc123x")) {
		t.Error("expected no full match of \"abc123x\" (trailing garbage)")
	}
	if re.MatchFull([]byte("#abc123")) {
		t.Error("expected no full match of \"#abc123\" (leading garbage)")
	}
}

func TestFindString(t *testing.T) {
	re := MustCompile(`[0-9]+`)
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{"age 42 and 7", "42", true},
		{"no digits", "", false},
		{"007 leads", "007", true},
	}
	for _, tt := range tests {
		got, ok := re.FindString(tt.input)
		if ok != tt.wantOk || got != tt.want {
			t.Errorf("FindString(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestFindAllString(t *testing.T) {
	re := MustCompile(`[0-9]+`)
	got := re.FindAllString("1 22 333")
	want := []string{"1", "22", "333"}
	if len(got) != len(want) {
		t.Fatalf("FindAllString = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindAllString[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindAllStringNonOverlapping(t *testing.T) {
	re := MustCompile(`a+`)
	got := re.FindAllString("aaa bb aa")
	want := []string{"aaa", "aa"}
	if len(got) != len(want) {
		t.Fatalf("FindAllString = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindAllString[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStringReturnsPattern(t *testing.T) {
	re := MustCompile(`a+b`)
	if re.String() != "a+b" {
		t.Errorf("String() = %q, want %q", re.String(), "a+b")
	}
}
