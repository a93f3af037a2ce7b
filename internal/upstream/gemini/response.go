package gemini

import (
	"encoding/base64"
	"strings"
)

// Text concatenates the text parts of the first candidate, each followed by
// a newline. It returns "" when there is no text.
func (r *Response) Text() string {
	var sb strings.Builder
	for _, part := range r.firstParts() {
		if part.InlineData == nil && part.Text != "" {
			sb.WriteString(part.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Image decodes the last inline data part of the first candidate.
func (r *Response) Image() ([]byte, string, bool) {
	parts := r.firstParts()
	for i := len(parts) - 1; i >= 0; i-- {
		inline := parts[i].InlineData
		if inline == nil || inline.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(inline.Data)
		if err != nil {
			return nil, "", false
		}
		return data, inline.MimeType, true
	}
	return nil, "", false
}

// BlockReason returns the prompt block reason, if any.
func (r *Response) BlockReason() string {
	if r == nil || r.PromptFeedback == nil {
		return ""
	}
	return r.PromptFeedback.BlockReason
}

func (r *Response) firstParts() []Part {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return nil
	}
	return r.Candidates[0].Content.Parts
}
