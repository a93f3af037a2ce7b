package bot

import (
	"bytes"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	responded *discordgo.InteractionResponse
	edited    *discordgo.WebhookEdit
	sentTo    string
	sent      *discordgo.MessageSend
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responded = resp
	return nil
}

func (f *fakeSession) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edited = edit
	return &discordgo.Message{}, nil
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sentTo = channelID
	f.sent = data
	return &discordgo.Message{}, nil
}

func TestSessionResponder(t *testing.T) {
	s := &fakeSession{}
	r := NewSessionResponder(s, &discordgo.Interaction{ID: "i", ChannelID: "chan-9"})

	require.NoError(t, r.Acknowledge(MsgGenerating))
	require.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, s.responded.Type)
	require.Equal(t, MsgGenerating, s.responded.Data.Content)

	file := &discordgo.File{Name: "result.png", Reader: bytes.NewReader([]byte("x"))}
	require.NoError(t, r.EditOriginal(OutgoingMessage{Content: "done", Files: []*discordgo.File{file}}))
	require.Equal(t, "done", *s.edited.Content)
	require.Len(t, s.edited.Files, 1)
	require.NotNil(t, s.edited.Attachments)
	require.Empty(t, *s.edited.Attachments)

	require.NoError(t, r.Send(OutgoingMessage{Content: "result"}))
	require.Equal(t, "chan-9", s.sentTo)
	require.Equal(t, "result", s.sent.Content)
}
