package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectParseArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "plain value",
			in:   []string{"almanac", "2024-06-01"},
			want: []string{"almanac", "parse", "2024-06-01"},
		},
		{
			name: "value after persistent flag",
			in:   []string{"almanac", "--locale", "de-DE", "2024-06-01"},
			want: []string{"almanac", "--locale", "de-DE", "parse", "2024-06-01"},
		},
		{
			name: "value after flag=value form",
			in:   []string{"almanac", "--zone=Europe/Oslo", "2024-06-01T09:30:00"},
			want: []string{"almanac", "--zone=Europe/Oslo", "parse", "2024-06-01T09:30:00"},
		},
		{
			name: "value after double dash",
			in:   []string{"almanac", "--", "2024-06-01"},
			want: []string{"almanac", "--", "parse", "2024-06-01"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"almanac", "grid", "2024-06"},
			want: []string{"almanac", "grid", "2024-06"},
		},
		{
			name: "short token untouched",
			in:   []string{"almanac", "2024-06"},
			want: []string{"almanac", "2024-06"},
		},
		{
			name: "no args",
			in:   []string{"almanac"},
			want: []string{"almanac"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rewriteDirectParseArgs(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
