package bot

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	apperrors "nanobanana-go/internal/errors"
	"nanobanana-go/internal/upstream/gemini"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeDispatcher struct {
	resp     *gemini.Response
	err      error
	payloads []json.RawMessage
}

func (f *fakeDispatcher) Dispatch(_ context.Context, payload any) (*gemini.Response, error) {
	f.payloads = append(f.payloads, payload.(json.RawMessage))
	return f.resp, f.err
}

type fakeFetcher struct {
	images map[string]Image
	errs   map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, att Attachment) (Image, error) {
	if err := f.errs[att.Filename]; err != nil {
		return Image{}, err
	}
	return f.images[att.Filename], nil
}

type recordingResponder struct {
	mu      sync.Mutex
	acks    []string
	edits   []OutgoingMessage
	sends   []OutgoingMessage
	ackErr  error
	editErr error
}

func (r *recordingResponder) Acknowledge(content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acks = append(r.acks, content)
	return r.ackErr
}

func (r *recordingResponder) EditOriginal(msg OutgoingMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edits = append(r.edits, msg)
	return r.editErr
}

func (r *recordingResponder) Send(msg OutgoingMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends = append(r.sends, msg)
	return nil
}

func TestHandleTextOnlyPrompt(t *testing.T) {
	d := &fakeDispatcher{resp: responseWith(imagePart("png"))}
	r := &recordingResponder{}
	h := NewHandler(d, &fakeFetcher{}, "1K")

	result := h.Handle(context.Background(), Request{Prompt: "sunset", AspectRatio: "3:2"}, r)
	require.Equal(t, resultSuccess, result)
	require.Equal(t, []string{MsgGenerating}, r.acks)
	require.Len(t, r.edits, 1)
	require.Contains(t, r.edits[0].Content, "유저 프롬프트: sunset")
	require.Len(t, r.edits[0].Files, 1)
	require.Empty(t, r.sends)

	require.Len(t, d.payloads, 1)
	require.Equal(t, "3:2", gjson.GetBytes(d.payloads[0], "generationConfig.imageConfig.aspectRatio").String())
}

func TestHandleWithUserImages(t *testing.T) {
	d := &fakeDispatcher{resp: responseWith(imagePart("png"))}
	f := &fakeFetcher{images: map[string]Image{
		"a.png": {Filename: "a.png", MimeType: "image/png", Data: []byte("a")},
	}}
	r := &recordingResponder{}

	result := NewHandler(d, f, "1K").Handle(context.Background(), Request{
		Prompt:      "make it blue",
		AspectRatio: "auto",
		Attachments: []Attachment{{Filename: "a.png"}},
	}, r)
	require.Equal(t, resultSuccess, result)
	require.Len(t, r.edits, 1)
	require.Equal(t, "a.png", r.edits[0].Files[0].Name)
	require.Len(t, r.sends, 1)
	require.Equal(t, MsgDone, r.sends[0].Content)
	require.EqualValues(t, 2, gjson.GetBytes(d.payloads[0], "contents.0.parts.#").Int())
}

func TestHandleRejectsNonImage(t *testing.T) {
	d := &fakeDispatcher{}
	f := &fakeFetcher{errs: map[string]error{"doc.pdf": &NotImageError{Filename: "doc.pdf"}}}
	r := &recordingResponder{}

	result := NewHandler(d, f, "1K").Handle(context.Background(), Request{
		Prompt:      "x",
		Attachments: []Attachment{{Filename: "doc.pdf"}},
	}, r)
	require.Equal(t, resultNotImage, result)
	require.Empty(t, d.payloads)
	require.Equal(t, "❌ doc.pdf 은(는) 이미지 파일이 아닙니다.", r.edits[0].Content)
}

func TestHandleAttachmentFailure(t *testing.T) {
	d := &fakeDispatcher{}
	f := &fakeFetcher{errs: map[string]error{"a.png": errors.New("download attachment: status 500")}}
	r := &recordingResponder{}

	result := NewHandler(d, f, "1K").Handle(context.Background(), Request{
		Prompt:      "x",
		Attachments: []Attachment{{Filename: "a.png"}},
	}, r)
	require.Equal(t, resultAttachmentErr, result)
	require.Empty(t, d.payloads)
	require.Equal(t, apperrors.MsgUnexpected, r.edits[0].Content)
}

func TestHandleDispatchErrors(t *testing.T) {
	cases := []struct {
		err    error
		result string
		msg    string
	}{
		{apperrors.NewRequestFailed(apperrors.ReasonAllCredentialsInvalid, 2, 2), "REQUEST_FAILED", apperrors.MsgRequestFailed},
		{apperrors.NewConfiguration(apperrors.ReasonNoUpstream), "CONFIGURATION_ERROR", apperrors.MsgConfiguration},
		{errors.New("boom"), "error", apperrors.MsgUnexpected},
	}
	for _, tc := range cases {
		r := &recordingResponder{}
		result := NewHandler(&fakeDispatcher{err: tc.err}, &fakeFetcher{}, "1K").Handle(context.Background(), Request{Prompt: "x"}, r)
		require.Equal(t, tc.result, result)
		require.Len(t, r.edits, 1)
		require.Equal(t, tc.msg, r.edits[0].Content)
	}
}

func TestHandleAcknowledgeFailure(t *testing.T) {
	d := &fakeDispatcher{}
	r := &recordingResponder{ackErr: errors.New("unknown interaction")}

	result := NewHandler(d, &fakeFetcher{}, "1K").Handle(context.Background(), Request{Prompt: "x"}, r)
	require.Equal(t, resultDeliveryFailed, result)
	require.Empty(t, d.payloads)
	require.Empty(t, r.edits)
}
