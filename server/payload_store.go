package server

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/framegrace/inkwire/protocol"
)

var ErrPayloadHashMismatch = errors.New("server: stored payload hash mismatch")

// PayloadStore writes the latest payload of each device to disk, with a
// JSON sidecar describing it. The simulator replays these dumps.
type PayloadStore struct {
	dir string
	mu  sync.Mutex
}

// StoredPayload is the sidecar written next to each dump.
type StoredPayload struct {
	Timestamp  time.Time         `json:"timestamp"`
	Device     string            `json:"device"`
	Sequence   uint64            `json:"sequence"`
	Hash       string            `json:"hash"`
	Size       int               `json:"size"`
	Drawables  int               `json:"drawables"`
	Fallback   bool              `json:"fallback,omitempty"`
	TouchAreas []StoredTouchArea `json:"touch_areas,omitempty"`
}

// StoredTouchArea records a touch area for inspection; tokens are kept as
// their kind and printed form only.
type StoredTouchArea struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	Kind  string `json:"kind"`
	Token string `json:"token"`
}

func NewPayloadStore(dir string) *PayloadStore {
	return &PayloadStore{dir: dir}
}

// Save writes the payload and its sidecar for device.
func (s *PayloadStore) Save(device string, result PublishResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := sha1.Sum(result.Payload)
	stored := StoredPayload{
		Timestamp: time.Now().UTC(),
		Device:    device,
		Sequence:  result.Sequence,
		Hash:      hex.EncodeToString(sum[:]),
		Size:      len(result.Payload),
		Drawables: result.Drawables,
		Fallback:  result.Fallback,
	}
	for _, area := range protocol.TouchAreas(result.Envelope.Widgets) {
		entry := StoredTouchArea{X: area.X, Y: area.Y, W: area.W, H: area.H}
		if area.Token != nil {
			entry.Kind = area.Token.TouchKind()
			entry.Token = fmt.Sprintf("%+v", area.Token)
		}
		stored.TouchAreas = append(stored.TouchAreas, entry)
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	base := s.base(device)
	if err := os.WriteFile(base+".bin", result.Payload, 0o644); err != nil {
		return err
	}
	return os.WriteFile(base+".json", data, 0o644)
}

// Load reads back the last dump for device and checks its hash.
func (s *PayloadStore) Load(device string) (StoredPayload, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored StoredPayload
	base := s.base(device)
	meta, err := os.ReadFile(base + ".json")
	if err != nil {
		return stored, nil, err
	}
	if err := json.Unmarshal(meta, &stored); err != nil {
		return stored, nil, err
	}
	payload, err := os.ReadFile(base + ".bin")
	if err != nil {
		return stored, nil, err
	}
	sum := sha1.Sum(payload)
	if hex.EncodeToString(sum[:]) != stored.Hash {
		return stored, nil, ErrPayloadHashMismatch
	}
	return stored, payload, nil
}

func (s *PayloadStore) base(device string) string {
	if device == "" {
		device = DefaultDevice
	}
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, device)
	return filepath.Join(s.dir, safe)
}
