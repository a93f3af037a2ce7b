package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"nanobanana-go/internal/credential"
	apperrors "nanobanana-go/internal/errors"
	"nanobanana-go/internal/events"
	"nanobanana-go/internal/logging"
	"nanobanana-go/internal/monitoring"
	"nanobanana-go/internal/monitoring/tracing"
	"nanobanana-go/internal/redact"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the public Gemini API host.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is the image model used when none is configured.
	DefaultModel = "gemini-3-pro-image-preview"

	tracerComponent = "upstream/gemini"
	outcomeSuccess  = "success"
)

// Options configures a Dispatcher.
type Options struct {
	BaseURL string
	Model   string
	// RequestTimeout bounds each attempt; zero means no deadline.
	RequestTimeout time.Duration
}

// Dispatcher delivers generateContent requests through the credential pool
// or the fixed endpoint. It is safe for concurrent use; the pool is the only
// shared mutable state.
type Dispatcher struct {
	pool      *credential.Pool
	client    *http.Client
	opts      Options
	publisher events.Publisher
}

// NewDispatcher wires a dispatcher. A nil client uses http.DefaultClient.
func NewDispatcher(pool *credential.Pool, client *http.Client, opts Options) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	return &Dispatcher{pool: pool, client: client, opts: opts}
}

// SetEventPublisher wires a publisher for dispatch failures.
func (d *Dispatcher) SetEventPublisher(pub events.Publisher) { d.publisher = pub }

// Dispatch sends payload upstream and returns the parsed reply. Every error
// returned is an *apperrors.DispatchError of kind REQUEST_FAILED or
// CONFIGURATION_ERROR.
func (d *Dispatcher) Dispatch(ctx context.Context, payload any) (*Response, error) {
	dispatchID := uuid.NewString()
	mode := d.pool.Mode()
	entry := logging.WithDispatch(dispatchID, mode.String())

	ctx, span := tracing.StartSpan(ctx, tracerComponent, "Gemini.Dispatch",
		trace.WithAttributes(
			attribute.String("dispatch.id", dispatchID),
			attribute.String("upstream.mode", mode.String()),
			attribute.String("upstream.model", d.opts.Model),
		))
	defer span.End()

	var (
		resp     *Response
		err      error
		attempts int
	)
	switch mode {
	case credential.ModePooled, credential.ModeFixedEndpoint:
		body, merr := json.Marshal(payload)
		if merr != nil {
			entry.WithField("error_kind", apperrors.ReasonInvalidPayload).Error("request payload could not be serialized")
			err = apperrors.NewRequestFailed(apperrors.ReasonInvalidPayload, 0, 0)
			break
		}
		if mode == credential.ModePooled {
			resp, attempts, err = d.dispatchPooled(ctx, entry, span, body)
		} else {
			resp, attempts, err = d.dispatchFixed(ctx, entry, span, body)
		}
	default:
		entry.Error("no API keys and no fixed endpoint configured")
		err = apperrors.NewConfiguration(apperrors.ReasonNoUpstream)
	}

	d.finish(ctx, entry, span, mode, dispatchID, attempts, err)
	return resp, err
}

// dispatchPooled makes at most one attempt per key present at call start.
// The bound is re-read every iteration so that keys removed by concurrent
// dispatches shrink it and a transiently failing key is not retried twice.
func (d *Dispatcher) dispatchPooled(ctx context.Context, entry *log.Entry, span trace.Span, body []byte) (*Response, int, error) {
	budget := d.pool.Size()
	mode := credential.ModePooled.String()
	var attempts, removed, invalid, failed int

	for attempts < budget {
		if limit := d.pool.Size() + removed; attempts >= limit {
			break
		}
		key, ok := d.pool.Next()
		if !ok {
			break
		}
		attempts++
		target := BuildGenerateURL(d.opts.BaseURL, d.opts.Model, key)
		res := d.post(ctx, mode, target, "", body)
		recordAttempt(span, attempts, res, redact.Key(key))
		if res.ok() {
			return res.response, attempts, nil
		}

		monitoring.RecordUpstreamError(mode, string(res.kind), res.class)
		fields := log.Fields{
			"attempt":     attempts,
			"url":         redact.KeyedURL(target),
			"status":      res.status,
			"error_class": res.class,
			"error_kind":  logging.ErrorKind(res.status, true, res.kind == apperrors.KindInvalidCredential),
		}
		if res.upstreamStatus != "" {
			fields["upstream_status"] = res.upstreamStatus
		}
		if res.kind == apperrors.KindInvalidCredential {
			invalid++
			if d.pool.Remove(key) {
				removed++
			}
			fields["key"] = redact.Key(key)
			entry.WithFields(fields).Warn("invalid API key excluded")
			if d.pool.Size() == 0 {
				break
			}
			continue
		}
		failed++
		entry.WithFields(fields).Warn("upstream attempt failed")
	}

	reason := exhaustionReason(invalid, failed)
	entry.WithFields(log.Fields{
		"attempts": attempts,
		"removed":  removed,
		"reason":   reason,
	}).Error("all API keys failed")
	return nil, attempts, apperrors.NewRequestFailed(reason, attempts, removed)
}

func (d *Dispatcher) dispatchFixed(ctx context.Context, entry *log.Entry, span trace.Span, body []byte) (*Response, int, error) {
	mode := credential.ModeFixedEndpoint.String()
	fixed, ok := d.pool.Fixed()
	if !ok {
		return nil, 0, apperrors.NewConfiguration(apperrors.ReasonNoUpstream)
	}
	res := d.post(ctx, mode, fixed.URL, fixed.BearerToken, body)
	recordAttempt(span, 1, res, "")
	if res.ok() {
		return res.response, 1, nil
	}

	kind := string(apperrors.KindTransientFailure)
	monitoring.RecordUpstreamError(mode, kind, res.class)
	fields := log.Fields{
		"url":         redact.ToDomain(fixed.URL),
		"status":      res.status,
		"error_class": res.class,
		"error_kind":  logging.ErrorKind(res.status, true, false),
	}
	if res.upstreamStatus != "" {
		fields["upstream_status"] = res.upstreamStatus
	}
	if fixed.BearerToken != "" {
		fields["bearer"] = redact.Bearer(fixed.BearerToken)
	}
	entry.WithFields(fields).Error("fixed endpoint request failed")
	return nil, 1, apperrors.NewRequestFailed(apperrors.ReasonFixedEndpointFailed, 1, 0)
}

// post performs one attempt under the per-attempt deadline and classifies it.
// The caller's cancellation does not reach the attempt; only RequestTimeout
// bounds it. Transport errors are reduced to a class; their text may contain
// the URL.
func (d *Dispatcher) post(ctx context.Context, mode, target, bearer string, body []byte) attemptResult {
	attemptCtx, cancel := d.attemptContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return transient(0, classRequestBuild)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		monitoring.RecordUpstream(mode, time.Since(start), 0, true)
		return transient(0, apperrors.ClassifyNetworkError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	monitoring.RecordUpstream(mode, time.Since(start), resp.StatusCode, err != nil)
	if err != nil {
		return transient(resp.StatusCode, classReadBody)
	}
	return classifyResponse(resp.StatusCode, data)
}

func (d *Dispatcher) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if d.opts.RequestTimeout > 0 {
		return context.WithTimeout(base, d.opts.RequestTimeout)
	}
	return context.WithCancel(base)
}

func (d *Dispatcher) finish(ctx context.Context, entry *log.Entry, span trace.Span, mode credential.Mode, dispatchID string, attempts int, err error) {
	span.SetAttributes(attribute.Int("dispatch.attempts", attempts))
	if err == nil {
		monitoring.RecordDispatch(mode.String(), outcomeSuccess, attempts)
		span.SetStatus(codes.Ok, "")
		entry.WithField("attempts", attempts).Debug("dispatch succeeded")
		return
	}

	de, _ := err.(*apperrors.DispatchError)
	monitoring.RecordDispatch(mode.String(), string(de.Kind), attempts)
	span.SetStatus(codes.Error, de.Error())
	if d.publisher != nil {
		d.publisher.Publish(ctx, events.TopicDispatchFailed, FailureEvent{
			DispatchID: dispatchID,
			Mode:       mode.String(),
			Kind:       string(de.Kind),
			Reason:     de.Reason,
			Attempts:   de.Attempts,
			Removed:    de.Removed,
		}, map[string]string{"dispatch_id": dispatchID})
	}
}

func recordAttempt(span trace.Span, n int, res attemptResult, maskedKey string) {
	attrs := []attribute.KeyValue{
		attribute.Int("attempt", n),
		attribute.Int("http.status_code", res.status),
		attribute.String("attempt.class", res.class),
		attribute.String("attempt.kind", string(res.kind)),
	}
	if maskedKey != "" {
		attrs = append(attrs, attribute.String("credential", maskedKey))
	}
	span.AddEvent("attempt", trace.WithAttributes(attrs...))
}

func exhaustionReason(invalid, failed int) string {
	switch {
	case invalid > 0 && failed > 0:
		return apperrors.ReasonMixed
	case invalid > 0:
		return apperrors.ReasonAllCredentialsInvalid
	default:
		return apperrors.ReasonAllCredentialsFailed
	}
}
