// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/poiesic/paperflow/core"
	"github.com/poiesic/paperflow/notify"
)

const (
	defaultDelay       = 2 * time.Second
	defaultSeparator   = "--- {current}/{total} {label} ---"
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
)

func init() {
	notify.Register("feishu", func(options map[string]string) (notify.Notifier, error) {
		webhookURL, ok := options["webhook_url"]
		if !ok || webhookURL == "" {
			return nil, fmt.Errorf("feishu: webhook_url is required")
		}

		n := NewNotifier(webhookURL)
		if raw, ok := options["delay_ms"]; ok {
			ms, err := strconv.Atoi(raw)
			if err != nil || ms < 0 {
				return nil, fmt.Errorf("feishu: invalid delay_ms %q", raw)
			}
			n.delay = time.Duration(ms) * time.Millisecond
		}
		if separator, ok := options["separator"]; ok {
			n.separator = separator
		}
		if linkStyle, ok := options["link_style"]; ok {
			n.linkStyle = linkStyle
		}
		return n, nil
	})
}

// Notifier delivers digests to a Feishu group through an incoming
// webhook. One post message is sent per digest group, separated by a
// templated divider and an inter-message delay; each message is retried
// with exponential backoff.
type Notifier struct {
	webhookURL  string
	delay       time.Duration
	separator   string
	linkStyle   string
	maxAttempts int
	retryDelay  time.Duration
	httpClient  *http.Client
	logger      *slog.Logger

	// sleep is swapped in tests to avoid real delays
	sleep func(ctx context.Context, d time.Duration) error
}

var _ notify.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier for the given webhook URL.
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL:  webhookURL,
		delay:       defaultDelay,
		separator:   defaultSeparator,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		logger:      slog.Default().With("component", "feishu-notifier"),
		sleep:       sleepContext,
	}
}

// Name returns "feishu".
func (n *Notifier) Name() string {
	return "feishu"
}

// Deliver sends the digest as a sequence of post messages: the interest
// group first when present, then one message per primary area.
func (n *Notifier) Deliver(ctx context.Context, digest core.Digest) (core.DeliveryReceipt, error) {
	type section struct {
		label   string
		entries []core.DigestEntry
	}

	sections := make([]section, 0, len(digest.Groups)+1)
	if len(digest.Interest) > 0 {
		sections = append(sections, section{label: "interest picks", entries: digest.Interest})
	}
	for _, group := range digest.Groups {
		sections = append(sections, section{label: group.PrimaryArea, entries: group.Entries})
	}

	receipt := core.DeliveryReceipt{Channel: n.Name()}
	total := len(sections)

	for i, sec := range sections {
		if i > 0 {
			if err := n.sleep(ctx, n.delay); err != nil {
				return receipt, &notify.Error{Channel: n.Name(), Err: err}
			}
			if n.separator != "" {
				divider := renderSeparator(n.separator, i+1, total, sec.label)
				if err := n.send(ctx, textPayload(divider)); err != nil {
					return receipt, &notify.Error{Channel: n.Name(), Err: err}
				}
				receipt.Messages++
			}
		}

		title := fmt.Sprintf("%s %s (%d)", digest.Date, sec.label, len(sec.entries))
		if err := n.send(ctx, postPayload(title, sec.entries, n.linkStyle)); err != nil {
			return receipt, &notify.Error{Channel: n.Name(), Err: err}
		}
		receipt.Messages++
	}

	receipt.SentAt = time.Now().UTC()
	n.logger.Info("digest delivered",
		"date", digest.Date,
		"messages", receipt.Messages,
		"papers", digest.Total)
	return receipt, nil
}

// Notice sends a single plain-text message.
func (n *Notifier) Notice(ctx context.Context, text string) error {
	if err := n.send(ctx, textPayload(text)); err != nil {
		return &notify.Error{Channel: n.Name(), Err: err}
	}
	return nil
}

// webhookResponse is the Feishu acknowledgment envelope. A non-zero code
// means the message was rejected even though HTTP says 200.
type webhookResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (n *Notifier) send(ctx context.Context, p *payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return retryWithBackoff(ctx, func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		request.Header.Set("Content-Type", "application/json")

		response, err := n.httpClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("webhook returned status %d", response.StatusCode)
		}

		ack, err := io.ReadAll(response.Body)
		if err != nil {
			return err
		}
		var parsed webhookResponse
		if err := json.Unmarshal(ack, &parsed); err == nil && parsed.Code != 0 {
			return fmt.Errorf("webhook rejected message: code %d: %s", parsed.Code, parsed.Msg)
		}
		return nil
	}, n.maxAttempts, n.retryDelay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
