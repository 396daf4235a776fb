package store

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
)

// JSONLStore appends records to a JSONL file. Lookups scan the file, so it
// suits single-node deployments with modest history.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

func (s *JSONLStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(rec)
}

func (s *JSONLStore) Get(_ context.Context, id string) (Record, error) {
	return s.scan(func(r Record) bool { return r.ID == id })
}

func (s *JSONLStore) Latest(_ context.Context, teamID string, year, week int) (Record, error) {
	key := teamKey(teamID, year, week)
	return s.scan(func(r Record) bool { return r.Result != nil && recordTeamKey(r) == key })
}

// scan returns the last record accepted by match.
func (s *JSONLStore) scan(match func(Record) bool) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = f.Close() }()

	var (
		found Record
		ok    bool
	)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var r Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		if match(r) {
			found, ok = r, true
		}
	}
	if err := scanner.Err(); err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, ErrNotFound
	}
	return found, nil
}

func (s *JSONLStore) Close() error { return nil }
