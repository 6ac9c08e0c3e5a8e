package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoLoadsEmbeddedIcons(t *testing.T) {
	for _, name := range []string{AppIcon, FocusIcon, RestIcon, RestDimIcon, PausedIcon} {
		resource, err := Logo(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, resource.Content())

		again := MustLogo(name)
		assert.Same(t, resource, again)
	}
}

func TestLogoMissing(t *testing.T) {
	_, err := Logo("missing.png")
	require.Error(t, err)
	assert.Panics(t, func() { MustLogo("missing.png") })
}
