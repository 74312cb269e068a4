package zone

import (
	"encoding/json"
	"os"
	"sort"

	scribble "github.com/nanobox-io/golang-scribble"
)

// One JSON document per record, keyed by name.
const collection = "a_records"

// Store persists zone records as JSON documents on disk.
type Store struct {
	db *scribble.Driver
}

// OpenStore opens (or creates) the record database under dir.
func OpenStore(dir string) (*Store, error) {
	db, err := scribble.New(dir, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Put writes or replaces the record for r.Name.
func (s *Store) Put(r Record) error {
	return s.db.Write(collection, r.Name, r)
}

// Delete removes the record for name.
func (s *Store) Delete(name string) error {
	return s.db.Delete(collection, name)
}

// List returns all records sorted by name. A store with no records yet
// returns an empty slice.
func (s *Store) List() ([]Record, error) {
	docs, err := s.db.ReadAll(collection)
	if err != nil {
		// The collection directory does not exist until the first write.
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		var r Record
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Table loads all records and builds a fresh snapshot.
func (s *Store) Table() (*Table, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	return NewTable(records)
}
