package channels

// Operation labels for the channel_operations metric.
const (
	OpProvision = "provision"
	OpTeardown  = "teardown"

	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Request describes the match a set of channels is created for.
type Request struct {
	MatchID  string `msgpack:"match_id"`
	Map      string `msgpack:"map"`
	RoomCode string `msgpack:"room_code"`
}

// ChannelSet identifies the channels created for one match.
type ChannelSet struct {
	TextChannelID  string `msgpack:"text_channel_id"`
	VoiceChannelID string `msgpack:"voice_channel_id"`
}

// Empty reports whether no channel exists.
func (c ChannelSet) Empty() bool {
	return c.TextChannelID == "" && c.VoiceChannelID == ""
}
