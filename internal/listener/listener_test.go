package listener

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhillyerd/enmime"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amritadottown/timetable-registry/internal"
	"github.com/amritadottown/timetable-registry/internal/config"
	"github.com/amritadottown/timetable-registry/internal/connectors"
	"github.com/amritadottown/timetable-registry/internal/pipeline"
)

type stubConnector struct {
	messages []internal.FetchedMailMessage
}

func (s stubConnector) FetchInbox(context.Context, string, int) ([]internal.FetchedMailMessage, error) {
	return s.messages, nil
}

func htmlTimetable() string {
	rows := [][]string{
		{"Time-Table for Sixth Semester B.Tech"},
		{"Section- B: ECE", "", "Class Room: S 204"},
		{"Day", "8:10-9:00", "9:00-9:50"},
		{"Monday", "A", "B"},
		{"Slot", "Subject Code", "L T P C", "Subject Title", "Faculty", "Department"},
		{"A", "23ECE301", "3 0 0 3", "Digital Signal Processing", "Dr. Kiran", "ECE"},
		{"B", "23ECE302", "3 0 2 4", "VLSI Design", "Dr. Asha", "ECE"},
	}
	var b strings.Builder
	b.WriteString("<table>")
	for _, r := range rows {
		b.WriteString("<tr>")
		for _, c := range r {
			b.WriteString("<td>" + c + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

func mkMessage(t *testing.T, id, subject, html string) internal.FetchedMailMessage {
	t.Helper()
	part, err := enmime.Builder().
		From("Academic Office", "office@example.edu").
		To("Students", "students@example.edu").
		Subject(subject).
		Text([]byte("see below")).
		HTML([]byte(html)).
		Build()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, part.Encode(&buf))
	return internal.FetchedMailMessage{Provider: "imap", MessageID: id, Subject: subject, Raw: buf.Bytes()}
}

func TestRunCycle(t *testing.T) {
	root := t.TempDir()
	cfg := config.Config{
		OutputDir:            filepath.Join(root, "out"),
		RawMailDir:           filepath.Join(root, "raw"),
		ParseWorkers:         1,
		MailListenerProvider: "imap",
		MailListenerLabel:    "INBOX",
		MailListenerFetchMax: 10,
	}
	conn := stubConnector{messages: []internal.FetchedMailMessage{
		mkMessage(t, "<tt@x>", "Timetable for semester 6", htmlTimetable()),
		mkMessage(t, "<fees@x>", "Hostel fees", "<p>Pay by Friday</p>"),
		{Provider: "imap", MessageID: "<junk@x>", Raw: []byte("\x00\x01")},
	}}
	log := zap.NewNop()
	svc := NewService(cfg, conn, pipeline.NewProcessingService(cfg, nil, log), log)

	res, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, res.Fetched)
	require.Equal(t, 3, res.New)
	require.Equal(t, 1, res.Matched)
	require.Equal(t, 1, res.Written)
	require.FileExists(t, filepath.Join(cfg.OutputDir, "2023", "ece-b", "6.json"))

	again, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	require.Zero(t, again.New)
	require.Zero(t, again.Pending)
	require.Zero(t, again.Matched)
}

func TestRunCycleRetriesFailedWrites(t *testing.T) {
	root := t.TempDir()
	blocked := filepath.Join(root, "blocked")
	require.NoError(t, os.WriteFile(blocked, nil, 0o644))

	cfg := config.Config{
		OutputDir:            filepath.Join(blocked, "out"),
		RawMailDir:           filepath.Join(root, "raw"),
		ParseWorkers:         1,
		MailListenerLabel:    "INBOX",
		MailListenerFetchMax: 10,
	}
	conn := stubConnector{messages: []internal.FetchedMailMessage{
		mkMessage(t, "<tt@x>", "Timetable for semester 6", htmlTimetable()),
	}}
	log := zap.NewNop()

	first, err := NewService(cfg, conn, pipeline.NewProcessingService(cfg, nil, log), log).RunCycle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.New)
	require.Equal(t, 1, first.Matched)
	require.Zero(t, first.Written)
	require.Equal(t, 1, first.Failed)

	cfg.OutputDir = filepath.Join(root, "out")
	svc := NewService(cfg, conn, pipeline.NewProcessingService(cfg, nil, log), log)
	second, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	require.Zero(t, second.New)
	require.Equal(t, 1, second.Pending)
	require.Equal(t, 1, second.Written)
	require.FileExists(t, filepath.Join(cfg.OutputDir, "2023", "ece-b", "6.json"))

	third, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	require.Zero(t, third.Pending)
	require.Zero(t, third.Matched)
}

func TestRunCyclePicksUpStoredButUnprocessedMail(t *testing.T) {
	root := t.TempDir()
	cfg := config.Config{
		OutputDir:    filepath.Join(root, "out"),
		RawMailDir:   filepath.Join(root, "raw"),
		ParseWorkers: 1,
	}
	// Stored by an earlier fetch that never processed it and no longer listed
	// by the mailbox.
	msg := mkMessage(t, "<tt@x>", "Timetable for semester 6", htmlTimetable())
	_, err := connectors.NewMailStoreService(cfg.RawMailDir).Store(msg)
	require.NoError(t, err)

	log := zap.NewNop()
	res, err := NewService(cfg, stubConnector{}, pipeline.NewProcessingService(cfg, nil, log), log).RunCycle(context.Background())
	require.NoError(t, err)
	require.Zero(t, res.Fetched)
	require.Equal(t, 1, res.Pending)
	require.Equal(t, 1, res.Written)
}

func TestRunCycleStopsWhenCancelled(t *testing.T) {
	root := t.TempDir()
	cfg := config.Config{OutputDir: filepath.Join(root, "out"), RawMailDir: filepath.Join(root, "raw"), ParseWorkers: 1}
	conn := stubConnector{messages: []internal.FetchedMailMessage{
		mkMessage(t, "<tt@x>", "Timetable for semester 6", htmlTimetable()),
	}}
	_, err := connectors.NewFetchService(cfg.RawMailDir, conn).FetchAndStore(context.Background(), "INBOX", 10)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(cfg, stubConnector{}, pipeline.NewProcessingService(cfg, nil, nil), zap.NewNop())
	_, err = svc.RunCycle(ctx)
	require.ErrorIs(t, err, context.Canceled)

	pending, err := connectors.NewMailStoreService(cfg.RawMailDir).Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestRunStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	cfg := config.Config{RawMailDir: root, OutputDir: root, MailListenerIntervalSec: 3600}
	svc := NewService(cfg, stubConnector{}, pipeline.NewProcessingService(cfg, nil, nil), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, svc.Run(ctx))
}
