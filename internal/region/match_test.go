package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	provinces := []string{"Aceh", "Jawa Barat", "Jawa Tengah", "DKI Jakarta", "Kalimantan Barat"}
	cities := []string{"Kab. Bandung", "Kab. Bandung Barat", "Kota Bandung", "Kota Cimahi"}

	tests := []struct {
		name      string
		list      []string
		query     string
		want      string
		wantFound bool
	}{
		{"exact", provinces, "Jawa Barat", "Jawa Barat", true},
		{"case insensitive", provinces, "JAWA TENGAH", "Jawa Tengah", true},
		{"contains", provinces, "jakarta", "DKI Jakarta", true},
		{"extra whitespace", provinces, "  jawa   barat ", "Jawa Barat", true},
		{"first containing wins", cities, "bandung", "Kab. Bandung", true},
		{"exact beats contains", cities, "kota bandung", "Kota Bandung", true},
		{"no match", provinces, "Selangor", "", false},
		{"empty query", provinces, "", "", false},
		{"empty list", nil, "Aceh", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.list, tt.query)
			assert.Equal(t, tt.wantFound, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
