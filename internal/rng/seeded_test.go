package rng

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSeeded(t *testing.T) {
	a := assert.New(t)

	g1 := Seeded(42)
	g2 := Seeded(42)
	for i := 0; i < 100; i++ {
		a.Equal(g1.Intn(52), g2.Intn(52))
	}

	g3 := Seeded(43)
	same := true
	g4 := Seeded(42)
	for i := 0; i < 100; i++ {
		if g3.Intn(52) != g4.Intn(52) {
			same = false
		}
	}
	a.False(same)
}
