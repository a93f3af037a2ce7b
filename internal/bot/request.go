package bot

import (
	"strings"

	"nanobanana-go/internal/constants"

	"github.com/bwmarrin/discordgo"
)

// Attachment is a user supplied file referenced by the command.
type Attachment struct {
	Filename    string
	ContentType string
	URL         string
	Size        int
}

// Request is a parsed slash command invocation.
type Request struct {
	InteractionID string
	ChannelID     string
	GuildID       string
	UserID        string
	Prompt        string
	AspectRatio   string
	Attachments   []Attachment
}

// parseRequest extracts the command options. It returns false when the
// interaction is not an invocation of the named command.
func parseRequest(i *discordgo.InteractionCreate, command string) (Request, bool) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return Request{}, false
	}
	data := i.ApplicationCommandData()
	if data.Name != command {
		return Request{}, false
	}

	req := Request{
		InteractionID: i.ID,
		ChannelID:     i.ChannelID,
		GuildID:       i.GuildID,
		AspectRatio:   constants.AspectRatioAuto,
	}
	if i.Member != nil && i.Member.User != nil {
		req.UserID = i.Member.User.ID
	} else if i.User != nil {
		req.UserID = i.User.ID
	}

	var slots [2]*Attachment
	for _, opt := range data.Options {
		switch opt.Name {
		case OptionPrompt:
			req.Prompt = strings.TrimSpace(opt.StringValue())
		case OptionAspectRatio:
			if v := opt.StringValue(); validAspectRatio(v) {
				req.AspectRatio = v
			}
		case OptionImage1:
			slots[0] = resolveAttachment(data.Resolved, opt)
		case OptionImage2:
			slots[1] = resolveAttachment(data.Resolved, opt)
		}
	}
	for _, a := range slots {
		if a != nil {
			req.Attachments = append(req.Attachments, *a)
		}
	}
	return req, true
}

func resolveAttachment(resolved *discordgo.ApplicationCommandInteractionDataResolved, opt *discordgo.ApplicationCommandInteractionDataOption) *Attachment {
	if resolved == nil {
		return nil
	}
	id, _ := opt.Value.(string)
	att, ok := resolved.Attachments[id]
	if !ok || att == nil {
		return nil
	}
	return &Attachment{
		Filename:    att.Filename,
		ContentType: att.ContentType,
		URL:         att.URL,
		Size:        att.Size,
	}
}
