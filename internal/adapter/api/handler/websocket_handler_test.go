package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubStream struct {
	stops int
}

func (s *stubStream) Stop() { s.stops++ }

func TestSessionRemoveStopsStream(t *testing.T) {
	sess := &session{streams: make(map[string]stopper)}
	stream := &stubStream{}

	sess.add("messages:alice_bob", stream)
	sess.remove("messages:alice_bob")

	assert.Equal(t, 1, stream.stops)
	assert.Empty(t, sess.streams)

	// Removing an unknown key is a no-op.
	sess.remove("messages:alice_bob")
	assert.Equal(t, 1, stream.stops)
}

func TestSessionResubscribeReplacesAndStopsOldStream(t *testing.T) {
	sess := &session{streams: make(map[string]stopper)}
	first := &stubStream{}
	second := &stubStream{}

	sess.add("feed", first)
	sess.add("feed", second)

	assert.Equal(t, 1, first.stops, "replaced stream must be stopped")
	assert.Zero(t, second.stops)
	assert.Same(t, second, sess.streams["feed"].(*stubStream))
}

func TestSessionStopAllOnDisconnect(t *testing.T) {
	sess := &session{streams: make(map[string]stopper)}
	streams := []*stubStream{{}, {}, {}}

	sess.add("feed", streams[0])
	sess.add("conversations", streams[1])
	sess.add("messages:alice_bob", streams[2])

	sess.stopAll()

	for _, stream := range streams {
		assert.Equal(t, 1, stream.stops)
	}
	assert.Empty(t, sess.streams)
}
