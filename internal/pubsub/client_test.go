package pubsub_test

import (
	"testing"

	"github.com/iMopo7u7/Valorant-Web-Page-sub000/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type job struct {
	MatchID string `msgpack:"match_id"`
	Map     string `msgpack:"map"`
}

func TestMockProcessMessage_DecodesPayload(t *testing.T) {
	data, err := msgpack.Marshal(job{MatchID: "m-1", Map: "Icebox"})
	require.NoError(t, err)

	client := pubsub.NewMock()
	var got job
	require.NoError(t, client.ProcessMessage(data, &got))
	assert.Equal(t, job{MatchID: "m-1", Map: "Icebox"}, got)
	assert.Len(t, client.ProcessMessageCalls, 1)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	var got job
	assert.Error(t, pubsub.Decode([]byte{0xc1}, &got))
}
