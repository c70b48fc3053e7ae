package imap

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/emersion/go-imap"

	"github.com/amritadottown/timetable-registry/internal/config"
)

func TestFormatAddresses(t *testing.T) {
	got := formatAddresses([]*imap.Address{
		{PersonalName: "Academic Office", MailboxName: "office", HostName: "example.edu"},
		nil,
		{MailboxName: "hod", HostName: "example.edu"},
	})
	if got != "Academic Office <office@example.edu>, hod@example.edu" {
		t.Fatalf("got %q", got)
	}
}

func TestToFetched(t *testing.T) {
	section := &imap.BodySectionName{Peek: true}
	received := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	msg := &imap.Message{
		SeqNum:       3,
		Uid:          42,
		InternalDate: received,
		Envelope:     &imap.Envelope{Subject: "Class TT"},
		Body: map[*imap.BodySectionName]imap.Literal{
			{}: bytes.NewBufferString("Subject: Class TT\r\n\r\nbody"),
		},
	}

	got, ok, err := toFetched(msg, section)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got.MessageID != "imap-42" || got.Subject != "Class TT" || got.ReceivedAt != "2026-01-05T09:30:00Z" {
		t.Fatalf("got %+v", got)
	}
	if string(got.Raw) != "Subject: Class TT\r\n\r\nbody" {
		t.Fatalf("raw=%q", got.Raw)
	}

	if _, ok, _ := toFetched(&imap.Message{}, section); ok {
		t.Fatal("message without body accepted")
	}
}

func TestNewConnectorRequiresCredentials(t *testing.T) {
	if _, err := NewConnector(config.Config{IMAPHost: "mail.example.edu", IMAPUser: "u"}); err == nil {
		t.Fatal("expected missing password error")
	}
}

func TestFetchInboxCancelled(t *testing.T) {
	c, err := NewConnector(config.Config{IMAPHost: "127.0.0.1", IMAPPort: 1, IMAPUser: "u", IMAPPassword: "p"})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchInbox(ctx, "INBOX", 5); err != context.Canceled {
		t.Fatalf("err=%v", err)
	}
}
