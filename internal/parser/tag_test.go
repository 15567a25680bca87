package parser

import (
	"errors"
	"testing"
)

func TestParseDerefTag(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    derefTag
		wantErr bool
	}{
		{
			name: "marker only",
			raw:  `deref:""`,
			want: derefTag{Marked: true},
		},
		{
			name: "mutable modifier",
			raw:  `deref:"mutable"`,
			want: derefTag{Marked: true, Mutable: true},
		},
		{
			name: "mutable with trailing comma",
			raw:  `deref:"mutable,"`,
			want: derefTag{Marked: true, Mutable: true},
		},
		{
			name: "other keys ignored",
			raw:  `json:"inner" yaml:"inner"`,
			want: derefTag{},
		},
		{
			name: "deref substring inside another value",
			raw:  `json:"deref:zone"`,
			want: derefTag{},
		},
		{
			name: "marker after other keys",
			raw:  `json:"deref:zone" deref:"mutable"`,
			want: derefTag{Marked: true, Mutable: true},
		},
		{
			name: "no tag",
			raw:  "",
			want: derefTag{},
		},
		{
			name:    "unknown option",
			raw:     `deref:"mut"`,
			wantErr: true,
		},
		{
			name:    "unquoted value",
			raw:     `deref:mutable`,
			wantErr: true,
		},
		{
			name:    "bare key without value",
			raw:     `deref`,
			wantErr: true,
		},
		{
			name:    "unterminated value",
			raw:     `deref:"mutable`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDerefTag(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrBadTag) {
					t.Fatalf("expected ErrBadTag, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDerefTag() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseDerefTag() = %#v, want %#v", got, tc.want)
			}
		})
	}
}
