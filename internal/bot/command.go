package bot

import "github.com/bwmarrin/discordgo"

// Slash command option names.
const (
	OptionPrompt      = "프롬프트"
	OptionImage1      = "이미지1"
	OptionImage2      = "이미지2"
	OptionAspectRatio = "비율"

	commandDescription = "프롬프트와 함께 최대 2장의 이미지를 첨부할 수 있습니다."
)

// AspectRatios lists the selectable ratios; the first entry is the default.
var AspectRatios = []struct {
	Label string
	Value string
}{
	{"Auto", "auto"},
	{"1:1 (정사각형)", "1:1"},
	{"2:3 (세로)", "2:3"},
	{"3:2 (가로)", "3:2"},
	{"3:4 (세로)", "3:4"},
	{"4:3 (가로)", "4:3"},
	{"4:5 (세로)", "4:5"},
	{"5:4 (가로)", "5:4"},
	{"9:16 (세로)", "9:16"},
	{"16:9 (가로)", "16:9"},
	{"21:9 (초광각)", "21:9"},
}

// CommandDefinition returns the image generation slash command.
func CommandDefinition(name string) *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(AspectRatios))
	for _, r := range AspectRatios {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: r.Label, Value: r.Value})
	}
	return &discordgo.ApplicationCommand{
		Name:        name,
		Description: commandDescription,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionPrompt,
				Description: "생성할 이미지 설명",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionAttachment,
				Name:        OptionImage1,
				Description: "참고 이미지 1 (선택사항)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionAttachment,
				Name:        OptionImage2,
				Description: "참고 이미지 2 (선택사항)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionAspectRatio,
				Description: "이미지 비율 (선택사항, 기본값: Auto)",
				Choices:     choices,
			},
		},
	}
}

func validAspectRatio(v string) bool {
	for _, r := range AspectRatios {
		if r.Value == v {
			return true
		}
	}
	return false
}
