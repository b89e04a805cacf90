// SPDX-License-Identifier: MPL-2.0

package materialize

import (
	"errors"
	"testing"
)

func TestUsesMounts(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{version: "16.1.8", want: false},
		{version: "v16.1.8", want: false},
		{version: "17.0.0", want: true},
		{version: "17.0.2", want: true},
		{version: "18.2.1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := UsesMounts(tt.version)
			if err != nil {
				t.Fatalf("UsesMounts(%q) failed: %v", tt.version, err)
			}
			if got != tt.want {
				t.Errorf("UsesMounts(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestUsesMountsInvalidVersion(t *testing.T) {
	for _, v := range []string{"", "quince", "17.x"} {
		if _, err := UsesMounts(v); !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("UsesMounts(%q): expected ErrInvalidVersion, got %v", v, err)
		}
	}
}
