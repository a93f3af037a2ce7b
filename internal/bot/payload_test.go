package bot

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestBuildPayloadWithoutImages(t *testing.T) {
	body, err := BuildPayload("a red banana", nil, "auto", "")
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(body))

	doc := gjson.ParseBytes(body)
	require.Equal(t, "user", doc.Get("contents.0.role").String())
	require.Contains(t, doc.Get("contents.0.parts.0.text").String(), "USER IMAGE PROMPT:\na red banana")
	require.Contains(t, doc.Get("contents.0.parts.0.text").String(), "SYSTEM: You are an image generation model.")
	require.EqualValues(t, 1, doc.Get("contents.0.parts.#").Int())

	require.Equal(t, float64(1), doc.Get("generationConfig.temperature").Float())
	require.Equal(t, 0.95, doc.Get("generationConfig.topP").Float())
	require.EqualValues(t, 32768, doc.Get("generationConfig.maxOutputTokens").Int())
	require.Equal(t, "IMAGE", doc.Get("generationConfig.responseModalities.0").String())
	require.Equal(t, "1K", doc.Get("generationConfig.imageConfig.imageSize").String())
	require.False(t, doc.Get("generationConfig.imageConfig.aspectRatio").Exists())

	require.EqualValues(t, 4, doc.Get("safetySettings.#").Int())
	for _, s := range doc.Get("safetySettings").Array() {
		require.Equal(t, "OFF", s.Get("threshold").String())
	}
	require.Equal(t, "HARM_CATEGORY_HATE_SPEECH", doc.Get("safetySettings.0.category").String())
}

func TestBuildPayloadWithImagesAndRatio(t *testing.T) {
	images := []Image{
		{Filename: "a.png", MimeType: "image/png", Data: []byte("png-bytes")},
		{Filename: "b.jpg", MimeType: "image/jpeg", Data: []byte("jpg-bytes")},
	}
	body, err := BuildPayload("edit this", images, "16:9", "2K")
	require.NoError(t, err)

	doc := gjson.ParseBytes(body)
	require.EqualValues(t, 3, doc.Get("contents.0.parts.#").Int())
	require.Equal(t, "image/png", doc.Get("contents.0.parts.1.inlineData.mimeType").String())
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), doc.Get("contents.0.parts.1.inlineData.data").String())
	require.Equal(t, "image/jpeg", doc.Get("contents.0.parts.2.inlineData.mimeType").String())
	require.Equal(t, "16:9", doc.Get("generationConfig.imageConfig.aspectRatio").String())
	require.Equal(t, "2K", doc.Get("generationConfig.imageConfig.imageSize").String())
}
