package bot

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"nanobanana-go/internal/constants"
	"nanobanana-go/internal/upstream/gemini"

	"github.com/bwmarrin/discordgo"
)

// User-visible texts.
const (
	MsgGenerating = "🎨 이미지 생성 중..."
	MsgDone       = "✅ 완성!"
	MsgNoResponse = "⚠️ AI로부터 응답을 받지 못했습니다."
	msgNotImage   = "❌ %s 은(는) 이미지 파일이 아닙니다."

	// maxContentRunes is the chat platform's message length limit.
	maxContentRunes = 2000
)

// OutgoingMessage is content plus optional files.
type OutgoingMessage struct {
	Content string
	Files   []*discordgo.File
}

// ReplyPlan describes how to present a result: the original response is
// always edited; FollowUp, when set, is posted to the channel afterwards.
type ReplyPlan struct {
	Edit     OutgoingMessage
	FollowUp *OutgoingMessage
}

func promptHeader(prompt string) string {
	return fmt.Sprintf("```\n유저 프롬프트: %s\n```", prompt)
}

func notImageMessage(filename string) string {
	return fmt.Sprintf(msgNotImage, filename)
}

// PlanReply maps a model response to chat messages. With user images the
// original message shows the prompt and the inputs and the result goes to a
// new channel message; without, the result replaces the original message.
func PlanReply(prompt string, userImages []Image, resp *gemini.Response) ReplyPlan {
	text := resp.Text()
	var result *discordgo.File
	if data, _, ok := resp.Image(); ok {
		result = &discordgo.File{
			Name:        constants.ResultImageFilename,
			ContentType: "image/png",
			Reader:      bytes.NewReader(data),
		}
	}

	if len(userImages) > 0 {
		plan := ReplyPlan{Edit: OutgoingMessage{
			Content: truncate(promptHeader(prompt)),
			Files:   imageFiles(userImages),
		}}
		switch {
		case result != nil:
			plan.FollowUp = &OutgoingMessage{Content: truncate(orDefault(text, MsgDone)), Files: []*discordgo.File{result}}
		case text != "":
			plan.FollowUp = &OutgoingMessage{Content: truncate(text)}
		default:
			plan.FollowUp = &OutgoingMessage{Content: MsgNoResponse}
		}
		return plan
	}

	content := promptHeader(prompt) + "\n" + orDefault(text, MsgDone)
	if strings.TrimSpace(content) == "" {
		return ReplyPlan{Edit: OutgoingMessage{Content: MsgNoResponse}}
	}
	plan := ReplyPlan{Edit: OutgoingMessage{Content: truncate(content)}}
	if result != nil {
		plan.Edit.Files = []*discordgo.File{result}
	}
	return plan
}

func imageFiles(images []Image) []*discordgo.File {
	files := make([]*discordgo.File, 0, len(images))
	for _, img := range images {
		files = append(files, &discordgo.File{
			Name:        img.Filename,
			ContentType: img.MimeType,
			Reader:      bytes.NewReader(img.Data),
		})
	}
	return files
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// truncate shortens s to the message length limit, ending with "…".
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxContentRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxContentRunes-1]) + "…"
}
