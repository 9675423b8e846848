// Package schedule builds links to the external consultation scheduler.
package schedule

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultMessageTemplate is used when a Link has no template.
const DefaultMessageTemplate = "Gostaria de agendar uma conversa sobre %s"

// Link builds prefilled scheduling URLs.
type Link struct {
	BaseURL         string
	MessageTemplate string
}

// New validates baseURL and returns a Link.
func New(baseURL, messageTemplate string) (Link, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return Link{}, fmt.Errorf("schedule.New: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return Link{}, fmt.Errorf("schedule.New: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return Link{}, fmt.Errorf("schedule.New: missing host in %q", baseURL)
	}
	return Link{BaseURL: baseURL, MessageTemplate: messageTemplate}, nil
}

// Message returns the prefill text for an area.
func (l Link) Message(areaName string) string {
	tmpl := l.MessageTemplate
	if tmpl == "" {
		tmpl = DefaultMessageTemplate
	}
	return fmt.Sprintf(tmpl, areaName)
}

// For returns the scheduling URL prefilled with a message about areaName.
func (l Link) For(areaName string) string {
	sep := "?"
	if strings.Contains(l.BaseURL, "?") {
		sep = "&"
	}
	return l.BaseURL + sep + "prefill_message=" + EncodeComponent(l.Message(areaName))
}

// EncodeComponent percent-encodes s for use as a query value, with spaces
// as %20 rather than '+'.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
