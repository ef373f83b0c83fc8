// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{
			name: "short string unchanged",
			in:   "Smith-2021-JX",
			max:  45,
			want: "Smith-2021-JX",
		},
		{
			name: "exact length unchanged",
			in:   "abcdefghij",
			max:  10,
			want: "abcdefghij",
		},
		{
			name: "long string gets ellipsis",
			in:   "abcdefghijklmnop",
			max:  10,
			want: "abcdefg...",
		},
		{
			name: "multibyte author names cut on rune boundary",
			in:   "Müller_Gärtner_Çelik-2021-JX",
			max:  10,
			want: "Müller_...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.in, tt.max, got)
			}
		})
	}
}
