package gemini

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseTextAndImage(t *testing.T) {
	first := base64.StdEncoding.EncodeToString([]byte("first"))
	last := base64.StdEncoding.EncodeToString([]byte("last"))
	body := `{"candidates":[{"content":{"parts":[
		{"text":"line one"},
		{"inlineData":{"mimeType":"image/png","data":"` + first + `"}},
		{"text":"line two"},
		{"inlineData":{"mimeType":"image/jpeg","data":"` + last + `"}}
	]}},{"content":{"parts":[{"text":"ignored"}]}}]}`

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	require.Equal(t, "line one\nline two\n", resp.Text())
	data, mime, ok := resp.Image()
	require.True(t, ok)
	require.Equal(t, "last", string(data))
	require.Equal(t, "image/jpeg", mime)
}

func TestResponseEmpty(t *testing.T) {
	var resp Response
	require.Empty(t, resp.Text())
	_, _, ok := resp.Image()
	require.False(t, ok)
	require.Empty(t, resp.BlockReason())

	var nilResp *Response
	require.Empty(t, nilResp.Text())
	require.Empty(t, nilResp.BlockReason())
}

func TestResponseBadImageData(t *testing.T) {
	resp := Response{Candidates: []Candidate{{Content: &Content{Parts: []Part{
		{InlineData: &InlineData{MimeType: "image/png", Data: "!!not-base64!!"}},
	}}}}}
	_, _, ok := resp.Image()
	require.False(t, ok)
}

func TestResponseBlockReason(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`), &resp))
	require.Equal(t, "SAFETY", resp.BlockReason())
	require.Empty(t, resp.Text())
}
