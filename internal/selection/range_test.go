// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"errors"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Range
		wantErr bool
	}{
		{"empty is whole file", "", Whole, false},
		{"simple span", "1-2", Span(1, 2), false},
		{"single line", "4-4", Span(4, 4), false},
		{"large span", "10-250", Span(10, 250), false},
		{"zero start", "0-3", Range{}, true},
		{"inverted span", "5-2", Range{}, true},
		{"negative", "-1-2", Range{}, true},
		{"missing end", "3-", Range{}, true},
		{"words", "abc", Range{}, true},
		{"trailing garbage", "1-2x", Range{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRange(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrBadRange) {
					t.Fatalf("ParseRange(%q) error = %v, want ErrBadRange", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) unexpected error: %v", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRange_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"whole vs whole", Whole, Whole, true},
		{"whole vs span", Whole, Span(1, 2), false},
		{"same span", Span(1, 2), Span(1, 2), true},
		{"different span", Span(1, 2), Span(1, 3), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRange_String(t *testing.T) {
	if got := Whole.String(); got != "" {
		t.Errorf("Whole.String() = %q, want empty", got)
	}
	if got := Span(3, 7).String(); got != "3-7" {
		t.Errorf("Span(3,7).String() = %q, want %q", got, "3-7")
	}
}
