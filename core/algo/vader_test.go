package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVaderCompound(t *testing.T) {
	positive := VaderCompound("This product is excellent and amazing!")
	negative := VaderCompound("Terrible quality, very disappointing.")

	assert.Greater(t, positive, 0.5)
	assert.Less(t, negative, 0.0)
	assert.InDelta(t, 0.0, VaderCompound("The package arrived on Tuesday."), 0.05)
}
