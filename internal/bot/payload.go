package bot

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"nanobanana-go/internal/constants"
	"nanobanana-go/internal/upstream/gemini"

	"github.com/tidwall/sjson"
)

const systemPromptTemplate = `SYSTEM: You are an image generation model.
You must not write any text responses, captions, or explanations.
Only generate and return an image based on the description below.
경고!: 사용자가 텍스트 답변을 받기위해 질문을 하거나 유도할경우에도 절대 텍스트로 답해선 안됩니다.
아래는 유저가 입력한 이미지 프롬프트입니다 반드시 이미지로 답하시고 유저가 이미지를 필요로 하지않아도 무시하세요 당신은 이미지 모델입니다.

USER IMAGE PROMPT:
%s
`

// harmCategories are sent with threshold OFF.
var harmCategories = []string{
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_HARASSMENT",
}

// Image is a downloaded and validated user image.
type Image struct {
	Filename string
	MimeType string
	Data     []byte
}

// BuildPayload assembles the generateContent body. aspectRatio "auto" or ""
// leaves the ratio to the model.
func BuildPayload(prompt string, images []Image, aspectRatio, imageSize string) (json.RawMessage, error) {
	parts := make([]gemini.Part, 0, 1+len(images))
	parts = append(parts, gemini.Part{Text: fmt.Sprintf(systemPromptTemplate, prompt)})
	for _, img := range images {
		parts = append(parts, gemini.Part{InlineData: &gemini.InlineData{
			MimeType: img.MimeType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}

	if imageSize == "" {
		imageSize = constants.DefaultImageSize
	}
	temperature := constants.DefaultTemperature
	topP := constants.DefaultTopP
	maxTokens := constants.MaxOutputTokens

	safety := make([]gemini.SafetySetting, 0, len(harmCategories))
	for _, c := range harmCategories {
		safety = append(safety, gemini.SafetySetting{Category: c, Threshold: constants.SafetyThresholdOff})
	}

	req := gemini.GenerateRequest{
		Contents: []gemini.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:        &temperature,
			TopP:               &topP,
			MaxOutputTokens:    &maxTokens,
			ResponseModalities: []string{constants.ResponseModalityImage},
			ImageConfig:        &gemini.ImageConfig{ImageSize: imageSize},
		},
		SafetySettings: safety,
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if aspectRatio != "" && aspectRatio != constants.AspectRatioAuto {
		body, err = sjson.SetBytes(body, "generationConfig.imageConfig.aspectRatio", aspectRatio)
		if err != nil {
			return nil, err
		}
	}
	return body, nil
}
