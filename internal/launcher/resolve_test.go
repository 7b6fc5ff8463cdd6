package launcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestController_Resolve(t *testing.T) {
	c := NewController(nil, nil, nil, Options{Favorites: []string{"firefox", "org.gnome.Nautilus", "foot"}})

	tests := []struct {
		query string
		want  string
	}{
		{"firefox", "firefox"},
		{"FireFox", "firefox"},
		{"nautilus", "org.gnome.Nautilus"},
		{"firefx", "firefox"},
	}
	for _, tt := range tests {
		got, err := c.Resolve(tt.query)
		require.NoError(t, err, tt.query)
		require.Equal(t, tt.want, got, tt.query)
	}

	_, err := c.Resolve("f")
	require.ErrorIs(t, err, ErrAmbiguousApp)
	_, err = c.Resolve("thunderbird")
	require.ErrorIs(t, err, ErrUnknownApp)
	_, err = c.Resolve("")
	require.Error(t, err)
}
