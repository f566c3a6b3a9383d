package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"

	"file-indexer/internal/catalog"
	"file-indexer/internal/metrics"
)

// ErrCorruptData is returned when an index stream fails validation.
var ErrCorruptData = errors.New("corrupt index data")

// Version is the stream format version written by Save.
const Version uint16 = 2

var magic = [4]byte{'F', 'I', 'D', 'X'}

const (
	headerLen   = len(magic) + 2
	checksumLen = 8
)

// payload is the CBOR body: [count, records, extensions, savedAt].
type payload struct {
	_          struct{} `cbor:",toarray"`
	Count      uint64
	Records    []wireRecord
	Extensions []string
	SavedAt    *wireTime
}

// wireRecord is [path, name, size, modified|null, created|null, extension].
type wireRecord struct {
	_         struct{} `cbor:",toarray"`
	Path      string
	Name      string
	Size      int64
	Modified  *wireTime
	Created   *wireTime
	Extension string
}

// wireTime is [unix seconds, nanoseconds]. It covers the whole time.Time
// range, not just the years an int64 of nanoseconds can hold.
type wireTime struct {
	_    struct{} `cbor:",toarray"`
	Sec  int64
	Nsec int64
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: invalid CBOR encode options: %v", err))
	}
	decMode, err = cbor.DecOptions{MaxArrayElements: 2147483647}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: invalid CBOR decode options: %v", err))
	}
}

// Save serializes snap and ts. The zero time is stored as absent.
func Save(snap *catalog.Snapshot, ts time.Time) ([]byte, error) {
	data, err := save(snap, ts)
	if err != nil {
		metrics.CodecOperationsTotal.WithLabelValues("save", "error").Inc()
		return nil, err
	}
	metrics.CodecOperationsTotal.WithLabelValues("save", "success").Inc()
	metrics.CodecBytes.WithLabelValues("save").Add(float64(len(data)))
	return data, nil
}

func save(snap *catalog.Snapshot, ts time.Time) ([]byte, error) {
	records := snap.Records()
	p := payload{
		Count:      uint64(len(records)),
		Records:    make([]wireRecord, len(records)),
		Extensions: snap.Extensions(),
		SavedAt:    toWire(ts),
	}
	for i, r := range records {
		p.Records[i] = wireRecord{
			Path:      r.Path,
			Name:      r.Name,
			Size:      r.SizeBytes,
			Modified:  toWire(r.ModifiedAt),
			Created:   toWire(r.CreatedAt),
			Extension: r.Extension,
		}
	}

	body, err := encMode.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(headerLen + len(body) + checksumLen)
	buf.Write(magic[:])
	_ = binary.Write(&buf, binary.BigEndian, Version)
	buf.Write(body)
	_ = binary.Write(&buf, binary.BigEndian, xxhash.Sum64(body))
	return buf.Bytes(), nil
}

// Load decodes a stream produced by Save. Any validation failure wraps
// ErrCorruptData and returns no catalog.
func Load(data []byte) (*catalog.Catalog, time.Time, error) {
	c, ts, err := load(data)
	if err != nil {
		metrics.CodecOperationsTotal.WithLabelValues("load", "error").Inc()
		return nil, time.Time{}, err
	}
	metrics.CodecOperationsTotal.WithLabelValues("load", "success").Inc()
	metrics.CodecBytes.WithLabelValues("load").Add(float64(len(data)))
	return c, ts, nil
}

func load(data []byte) (*catalog.Catalog, time.Time, error) {
	if len(data) < headerLen+checksumLen {
		return nil, time.Time{}, corrupt("stream too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, time.Time{}, corrupt("bad magic %q", data[:len(magic)])
	}
	if v := binary.BigEndian.Uint16(data[len(magic):headerLen]); v != Version {
		return nil, time.Time{}, corrupt("unsupported version %d", v)
	}

	body := data[headerLen : len(data)-checksumLen]
	want := binary.BigEndian.Uint64(data[len(data)-checksumLen:])
	if got := xxhash.Sum64(body); got != want {
		return nil, time.Time{}, corrupt("checksum mismatch: got %016x, want %016x", got, want)
	}

	var p payload
	if err := decMode.Unmarshal(body, &p); err != nil {
		return nil, time.Time{}, corrupt("decode payload: %v", err)
	}

	records, err := validate(&p)
	if err != nil {
		return nil, time.Time{}, err
	}
	savedAt, err := fromWire(p.SavedAt)
	if err != nil {
		return nil, time.Time{}, corrupt("save time: %v", err)
	}

	return catalog.FromRecords(records), savedAt, nil
}

func validate(p *payload) ([]catalog.FileRecord, error) {
	if p.Count != uint64(len(p.Records)) {
		return nil, corrupt("record count %d does not match %d records", p.Count, len(p.Records))
	}

	records := make([]catalog.FileRecord, len(p.Records))
	seen := make(map[string]struct{}, len(p.Records))
	exts := make(map[string]struct{})
	for i, w := range p.Records {
		if w.Path == "" || w.Name == "" {
			return nil, corrupt("record %d has empty path or name", i)
		}
		if w.Size < 0 {
			return nil, corrupt("record %d has negative size %d", i, w.Size)
		}
		if _, dup := seen[w.Path]; dup {
			return nil, corrupt("duplicate path %q", w.Path)
		}
		seen[w.Path] = struct{}{}
		exts[w.Extension] = struct{}{}

		modified, err := fromWire(w.Modified)
		if err != nil {
			return nil, corrupt("record %d modified time: %v", i, err)
		}
		created, err := fromWire(w.Created)
		if err != nil {
			return nil, corrupt("record %d created time: %v", i, err)
		}

		records[i] = catalog.FileRecord{
			Path:       w.Path,
			Name:       w.Name,
			SizeBytes:  w.Size,
			ModifiedAt: modified,
			CreatedAt:  created,
			Extension:  w.Extension,
		}
	}

	if len(p.Extensions) != len(exts) {
		return nil, corrupt("extension set has %d entries, records use %d", len(p.Extensions), len(exts))
	}
	listed := make(map[string]struct{}, len(p.Extensions))
	for _, ext := range p.Extensions {
		if _, ok := exts[ext]; !ok {
			return nil, corrupt("extension %q not used by any record", ext)
		}
		if _, dup := listed[ext]; dup {
			return nil, corrupt("duplicate extension %q", ext)
		}
		listed[ext] = struct{}{}
	}

	return records, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}

func toWire(t time.Time) *wireTime {
	if t.IsZero() {
		return nil
	}
	return &wireTime{Sec: t.Unix(), Nsec: int64(t.Nanosecond())}
}

func fromWire(w *wireTime) (time.Time, error) {
	if w == nil {
		return time.Time{}, nil
	}
	if w.Nsec < 0 || w.Nsec >= int64(time.Second) {
		return time.Time{}, fmt.Errorf("nanoseconds %d out of range", w.Nsec)
	}
	return time.Unix(w.Sec, w.Nsec), nil
}
