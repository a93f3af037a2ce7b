package errors

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// ClassifyNetworkError maps transport errors to a short label for logs and
// metrics. The label never contains the error text, which may embed the
// request URL and therefore a credential.
func ClassifyNetworkError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case stderrors.Is(err, context.Canceled):
		return "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case stderrors.Is(err, syscall.ECONNREFUSED):
		return "conn_refused"
	case stderrors.Is(err, syscall.ECONNRESET):
		return "conn_reset"
	case stderrors.Is(err, syscall.EPIPE):
		return "conn_broken_pipe"
	}

	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return "dns"
	}
	var certErr *tls.CertificateVerificationError
	if stderrors.As(err, &certErr) {
		return "tls"
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	var ue *url.Error
	if stderrors.As(err, &ue) && ue.Err != nil {
		err = ue.Err
	}
	s := err.Error()
	switch {
	case strings.Contains(s, "no such host"):
		return "dns"
	case strings.Contains(s, "connection reset"):
		return "conn_reset"
	case strings.Contains(s, "connection refused"):
		return "conn_refused"
	case strings.Contains(s, "tls") || strings.Contains(s, "certificate"):
		return "tls"
	case strings.Contains(s, "EOF"):
		return "eof"
	}
	return "other"
}
