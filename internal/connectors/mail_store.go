package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/amritadottown/timetable-registry/internal"
)

const (
	rawExt  = ".eml"
	doneExt = ".done"
)

// MailStoreService keeps raw messages on disk keyed by content hash. A
// message stays pending until MarkProcessed writes its <hash>.done marker,
// so a message whose processing failed is picked up again.
type MailStoreService struct {
	rawMailDir string
}

func NewMailStoreService(rawMailDir string) *MailStoreService {
	return &MailStoreService{rawMailDir: rawMailDir}
}

func (s *MailStoreService) Store(msg internal.FetchedMailMessage) (internal.StoredMailMessage, error) {
	sum := sha256.Sum256(msg.Raw)
	hash := hex.EncodeToString(sum[:])

	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}
	stored := internal.StoredMailMessage{
		FetchedMailMessage: msg,
		Hash:               hash,
		RawRef:             s.rawPath(hash),
	}

	if err := os.MkdirAll(s.rawMailDir, 0o755); err != nil {
		return internal.StoredMailMessage{}, err
	}

	done, err := exists(s.donePath(hash))
	if err != nil {
		return internal.StoredMailMessage{}, err
	}
	stored.Pending = !done

	ok, err := exists(stored.RawRef)
	if err != nil {
		return internal.StoredMailMessage{}, err
	}
	if ok {
		return stored, nil
	}

	if err := os.WriteFile(stored.RawRef, msg.Raw, 0o644); err != nil {
		return internal.StoredMailMessage{}, err
	}
	stored.IsNew = true
	return stored, nil
}

// Pending returns every stored message without a done marker, in file name
// order. Only Hash, RawRef and Raw are known for messages read back from disk.
func (s *MailStoreService) Pending() ([]internal.StoredMailMessage, error) {
	entries, err := os.ReadDir(s.rawMailDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []internal.StoredMailMessage
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, rawExt) {
			continue
		}
		hash := strings.TrimSuffix(name, rawExt)
		done, err := exists(s.donePath(hash))
		if err != nil {
			return nil, err
		}
		if done {
			continue
		}
		raw, err := os.ReadFile(s.rawPath(hash))
		if err != nil {
			return nil, err
		}
		out = append(out, internal.StoredMailMessage{
			FetchedMailMessage: internal.FetchedMailMessage{Raw: raw},
			Hash:               hash,
			RawRef:             s.rawPath(hash),
			Pending:            true,
		})
	}
	return out, nil
}

func (s *MailStoreService) MarkProcessed(hash string) error {
	return os.WriteFile(s.donePath(hash), nil, 0o644)
}

func (s *MailStoreService) rawPath(hash string) string {
	return filepath.Join(s.rawMailDir, hash+rawExt)
}

func (s *MailStoreService) donePath(hash string) string {
	return filepath.Join(s.rawMailDir, hash+doneExt)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
