package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

// ChunkSize bounds how many messages go into one push request.
const ChunkSize = 100

// Message is one push payload in the transport's wire format.
type Message struct {
	To        string         `json:"to"`
	Sound     string         `json:"sound"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	ChannelID string         `json:"channelId"`
	Data      map[string]any `json:"data,omitempty"`
}

// PushClient delivers messages to the push endpoint in bounded batches.
// A failing batch is reported but does not stop the remaining batches, and
// fan-out failure never fails the business event that triggered it; the
// caller decides whether to drop the error.
type PushClient struct {
	endpoint string
	client   *http.Client
}

// NewPushClient constructs a PushClient. An empty endpoint disables
// sending.
func NewPushClient(endpoint string) *PushClient {
	return &PushClient{
		endpoint: endpoint,
		client:   http.DefaultClient,
	}
}

// Send posts the messages in chunks of ChunkSize. Errors from individual
// batches are collected and joined; other batches still attempt to send.
func (p *PushClient) Send(ctx context.Context, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}
	if p.endpoint == "" {
		log.Println("[Push] endpoint not configured, dropping messages")
		return nil
	}

	var errs []error
	for start := 0; start < len(messages); start += ChunkSize {
		end := start + ChunkSize
		if end > len(messages) {
			end = len(messages)
		}
		if err := p.sendBatch(ctx, messages[start:end]); err != nil {
			log.Printf("[Push] batch %d-%d failed: %v", start, end, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *PushClient) sendBatch(ctx context.Context, batch []Message) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("push send failed (%d): %s", resp.StatusCode, text)
	}

	return nil
}
