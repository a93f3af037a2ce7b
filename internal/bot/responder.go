package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Responder is the chat surface used while handling one interaction.
type Responder interface {
	// Acknowledge sends the immediate response to the interaction.
	Acknowledge(content string) error
	// EditOriginal replaces the content and attachments of that response.
	EditOriginal(msg OutgoingMessage) error
	// Send posts a new message to the interaction's channel.
	Send(msg OutgoingMessage) error
}

// interactionSession is the subset of *discordgo.Session the responder needs.
type interactionSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type sessionResponder struct {
	session     interactionSession
	interaction *discordgo.Interaction
}

// NewSessionResponder binds a responder to one interaction.
func NewSessionResponder(s interactionSession, i *discordgo.Interaction) Responder {
	return &sessionResponder{session: s, interaction: i}
}

func (r *sessionResponder) Acknowledge(content string) error {
	return r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func (r *sessionResponder) EditOriginal(msg OutgoingMessage) error {
	content := msg.Content
	// An empty attachment list drops anything attached earlier.
	attachments := []*discordgo.MessageAttachment{}
	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content:     &content,
		Files:       msg.Files,
		Attachments: &attachments,
	})
	return err
}

func (r *sessionResponder) Send(msg OutgoingMessage) error {
	// Channel messages do not depend on the interaction token, which expires.
	_, err := r.session.ChannelMessageSendComplex(r.interaction.ChannelID, &discordgo.MessageSend{
		Content: msg.Content,
		Files:   msg.Files,
	})
	return err
}
