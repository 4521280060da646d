package slack

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPostParent(t *testing.T) {
	f := &fakeAPI{nextTS: "1700000000.000200"}
	c := newTestClient(f)

	ts, err := c.PostParent(context.Background(), "2024-08-20")
	if err != nil {
		t.Fatalf("PostParent: %v", err)
	}
	if ts != "1700000000.000200" {
		t.Errorf("ts = %q", ts)
	}
	if len(f.posted) != 1 {
		t.Fatalf("expected 1 post, got %d", len(f.posted))
	}
	text := f.posted[0].values.Get("text")
	want := parentMarker + " - 2024-08-20*"
	if text != want {
		t.Errorf("parent text = %q, want %q", text, want)
	}
	if f.posted[0].channel != "C123" {
		t.Errorf("channel = %q", f.posted[0].channel)
	}
}

func TestPostParentError(t *testing.T) {
	f := &fakeAPI{postErr: errors.New("not_in_channel")}
	c := newTestClient(f)

	if _, err := c.PostParent(context.Background(), "2024-08-20"); err == nil {
		t.Fatal("expected error")
	}
}

func TestPostReply(t *testing.T) {
	f := &fakeAPI{}
	c := newTestClient(f)

	err := c.PostReply(context.Background(), "100.0",
		"タイトル - URL: https://arxiv.org/abs/1234.5678",
		"*【タイトル】*\nタイトル")
	if err != nil {
		t.Fatalf("PostReply: %v", err)
	}
	if len(f.posted) != 1 {
		t.Fatalf("expected 1 post, got %d", len(f.posted))
	}
	v := f.posted[0].values
	if got := v.Get("thread_ts"); got != "100.0" {
		t.Errorf("thread_ts = %q", got)
	}
	// text fallback 一定要带 "URL: " 标记，否则去重扫描读不回来
	if got := v.Get("text"); !strings.Contains(got, "URL: https://arxiv.org/abs/1234.5678") {
		t.Errorf("fallback text missing URL label: %q", got)
	}
	if blocks := v.Get("blocks"); !strings.Contains(blocks, "mrkdwn") {
		t.Errorf("blocks payload missing mrkdwn section: %q", blocks)
	}
}

func TestPostReplyError(t *testing.T) {
	f := &fakeAPI{postErr: errors.New("msg_too_long")}
	c := newTestClient(f)

	err := c.PostReply(context.Background(), "100.0", "fallback", "block")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(nil); err == nil {
		t.Error("nil config must be rejected")
	}
	if _, err := NewClient(&Config{Token: "xoxb-1"}); err == nil {
		t.Error("missing channel must be rejected")
	}
	if _, err := NewClient(&Config{Channel: "C123"}); err == nil {
		t.Error("missing token must be rejected")
	}
	if _, err := NewClient(&Config{Token: "xoxb-1", Channel: "C123"}); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
