package suffixtree

import "testing"

func TestLongestCommonSubstring(t *testing.T) {
	tests := []struct {
		name string
		strs [][]byte
		want string
		ok   bool
	}{
		{"shared middle", [][]byte{[]byte("abcdef"), []byte("xxcdeyy")}, "cde", true},
		{"no overlap", [][]byte{[]byte("abc"), []byte("xyz")}, "", false},
		{"identical", [][]byte{[]byte("same"), []byte("same")}, "same", true},
		{"single string", [][]byte{[]byte("anything")}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LongestCommonSubstring(tt.strs)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && string(got) != tt.want {
				t.Errorf("LongestCommonSubstring = %q, want %q", got, tt.want)
			}
		})
	}
}
