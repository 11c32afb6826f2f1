package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(Parse, "bad token %q", "1K")

	assert.Equal(t, `bad token "1K"`, err.Error())
	assert.Equal(t, Parse, KindOf(err))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(OS, nil))

	base := errors.New("boom")
	err := Wrap(Network, base)

	assert.Equal(t, Network, KindOf(err))
	assert.ErrorIs(t, err, base)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"plain", errors.New("x"), ""},
		{"direct", New(Scheduler, "x"), Scheduler},
		{"wrapped by fmt", fmt.Errorf("failed to install: %w", New(Scheduler, "x")), Scheduler},
		{"outermost wins", Wrap(ImageSave, New(OS, "x")), ImageSave},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.True(t, Is(New(ConfigParse, "x"), ConfigParse))
	assert.False(t, Is(New(ConfigParse, "x"), Parse))
	assert.False(t, Is(nil, ""))
}
