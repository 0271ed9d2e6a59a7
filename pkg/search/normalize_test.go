package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Teléfono", "telefono"},
		{"  CARGADOR   Rápido ", "cargador rapido"},
		{"Kılıf", "kılıf"}, // la ı turca no lleva marca combinante, se conserva
		{"iPhone 15 Pro", "iphone 15 pro"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "entrada: %q", c.in)
	}
}
