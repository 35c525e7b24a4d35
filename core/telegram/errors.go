package telegram

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Error kinds reported by ClassifyError. They end up as metric labels, so the
// set is closed.
const (
	KindTimeout     = "timeout"
	KindDNS         = "dns"
	KindDial        = "dial"
	KindTLS         = "tls"
	KindNotModified = "not_modified"
	KindFlood       = "flood"
	KindServer      = "http_5xx"
	KindClient      = "http_4xx"
	KindUnknown     = "unknown"
)

var (
	botToken   = regexp.MustCompile(`bot\d+:[\w-]+`)
	statusTail = regexp.MustCompile(`\((\d{3})\)\s*$`)
)

// ClassifyError buckets a failed Bot API call by what went wrong: the
// network, TLS, or the status Telegram answered with.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	var (
		netErr net.Error
		dnsErr *net.DNSError
		opErr  *net.OpError
		tlsErr tls.AlertError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return KindTimeout
	case errors.As(err, &dnsErr):
		return KindDNS
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return KindDial
	case errors.As(err, &tlsErr):
		return KindTLS
	case IsNotModified(err):
		return KindNotModified
	}
	switch code := apiStatus(err); {
	case code == http.StatusTooManyRequests:
		return KindFlood
	case code >= 500:
		return KindServer
	case code >= 400:
		return KindClient
	}
	return KindUnknown
}

// IsNotModified reports whether Telegram refused an edit because nothing
// changed. Menu re-renders treat that as success.
func IsNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// RedactError returns err's text with any bot token masked. telebot includes
// the request URL, and with it the token, in transport errors.
func RedactError(err error) string {
	if err == nil {
		return ""
	}
	return botToken.ReplaceAllString(err.Error(), "bot<redacted>")
}

// apiStatus digs the HTTP status out of a telebot error, falling back to the
// "(400)" suffix telebot prints for plain API errors.
func apiStatus(err error) int {
	var (
		apiErr   *tele.Error
		floodErr tele.FloodError
		groupErr tele.GroupError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code
	case errors.As(err, &floodErr):
		return http.StatusTooManyRequests
	case errors.As(err, &groupErr):
		return http.StatusBadRequest
	}
	if m := statusTail.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code
	}
	return 0
}
