package bot

import (
	"context"
	"errors"

	apperrors "nanobanana-go/internal/errors"
	"nanobanana-go/internal/logging"
	"nanobanana-go/internal/monitoring"
	"nanobanana-go/internal/upstream/gemini"

	log "github.com/sirupsen/logrus"
)

// Dispatcher sends a generateContent payload upstream.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload any) (*gemini.Response, error)
}

// ImageFetcher downloads a user attachment.
type ImageFetcher interface {
	Fetch(ctx context.Context, att Attachment) (Image, error)
}

// Command results recorded in metrics.
const (
	resultSuccess        = "success"
	resultNotImage       = "not_image"
	resultAttachmentErr  = "attachment_error"
	resultPayloadErr     = "payload_error"
	resultDeliveryFailed = "delivery_failed"
)

// Handler runs the image generation command.
type Handler struct {
	dispatcher Dispatcher
	fetcher    ImageFetcher
	imageSize  string
}

// NewHandler wires a command handler.
func NewHandler(dispatcher Dispatcher, fetcher ImageFetcher, imageSize string) *Handler {
	return &Handler{dispatcher: dispatcher, fetcher: fetcher, imageSize: imageSize}
}

// Handle processes one request end to end. Every failure is reported to the
// user by editing the acknowledgement; the returned value is the metrics
// result label.
func (h *Handler) Handle(ctx context.Context, req Request, r Responder) string {
	entry := logging.WithInteraction(req.InteractionID, req.GuildID, req.UserID)
	result := h.handle(ctx, entry, req, r)
	monitoring.CommandsTotal.WithLabelValues(result).Inc()
	entry.WithField("result", result).Info("command handled")
	return result
}

func (h *Handler) handle(ctx context.Context, entry *log.Entry, req Request, r Responder) string {
	if err := r.Acknowledge(MsgGenerating); err != nil {
		entry.WithError(err).Warn("failed to acknowledge interaction")
		return resultDeliveryFailed
	}

	images := make([]Image, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		img, err := h.fetcher.Fetch(ctx, att)
		if err != nil {
			var notImage *NotImageError
			if errors.As(err, &notImage) {
				h.edit(entry, r, OutgoingMessage{Content: notImageMessage(notImage.Filename)})
				return resultNotImage
			}
			entry.WithField("error_class", apperrors.ClassifyNetworkError(err)).Warn("attachment download failed")
			h.edit(entry, r, OutgoingMessage{Content: apperrors.MsgUnexpected})
			return resultAttachmentErr
		}
		images = append(images, img)
	}

	payload, err := BuildPayload(req.Prompt, images, req.AspectRatio, h.imageSize)
	if err != nil {
		entry.WithError(err).Error("failed to build payload")
		h.edit(entry, r, OutgoingMessage{Content: apperrors.MsgUnexpected})
		return resultPayloadErr
	}

	resp, err := h.dispatcher.Dispatch(ctx, payload)
	if err != nil {
		entry.WithField("error", err.Error()).Warn("image generation failed")
		h.edit(entry, r, OutgoingMessage{Content: apperrors.UserMessage(err)})
		if kind := apperrors.KindOf(err); kind != "" {
			return string(kind)
		}
		return "error"
	}
	if reason := resp.BlockReason(); reason != "" {
		entry.WithField("block_reason", reason).Info("prompt blocked by upstream")
	}

	plan := PlanReply(req.Prompt, images, resp)
	if err := r.EditOriginal(plan.Edit); err != nil {
		entry.WithError(err).Warn("failed to edit response")
		return resultDeliveryFailed
	}
	if plan.FollowUp != nil {
		if err := r.Send(*plan.FollowUp); err != nil {
			entry.WithError(err).Warn("failed to send result message")
			return resultDeliveryFailed
		}
	}
	return resultSuccess
}

func (h *Handler) edit(entry *log.Entry, r Responder, msg OutgoingMessage) {
	if err := r.EditOriginal(msg); err != nil {
		entry.WithError(err).Warn("failed to edit response")
	}
}
