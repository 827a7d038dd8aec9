package raftlogerr

import (
	"testing"

	jujuerr "github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOfClassifiesConstructedErrors(t *testing.T) {
	assert.Equal(t, KindBusy, KindOf(New(KindBusy, "install already running")))
	assert.Equal(t, KindInconsistentState, KindOf(Newf(KindInconsistentState, "bad index %d", 3)))
}

func TestWrapIOPreservesNilAndTagsIO(t *testing.T) {
	assert.Nil(t, WrapIO(nil))

	wrapped := WrapIO(jujuerr.New("disk full"))
	assert.True(t, Is(wrapped, KindIO))
}

func TestKindOfDefaultsToIOForForeignErrors(t *testing.T) {
	assert.Equal(t, KindIO, KindOf(jujuerr.New("some other failure")))
}

func TestUnwrapKeepsRootCauseMessage(t *testing.T) {
	root := jujuerr.New("root cause")
	wrapped := WrapIO(root)
	assert.EqualError(t, Unwrap(wrapped), "root cause")
}
