package load

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/modelgen"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// Snapshot is a point-in-time copy of table metadata. It lets the generator
// run without a live database connection.
type Snapshot struct {
	Version int       `msgpack:"version"`
	Dialect string    `msgpack:"dialect"`
	Created time.Time `msgpack:"created"`
	Tables  []*Table  `msgpack:"tables"`
}

// Table returns the table with the given name. Exact matches win over
// case-insensitive ones.
func (s *Snapshot) Table(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	for _, t := range s.Tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

// Add adds or replaces the columns of a table, keeping tables sorted by name.
func (s *Snapshot) Add(name string, columns []*Column) {
	t := &Table{Name: name, Columns: columns}
	i, found := slices.BinarySearchFunc(s.Tables, name, func(t *Table, name string) int {
		return strings.Compare(t.Name, name)
	})
	if found {
		s.Tables[i] = t
		return
	}
	s.Tables = slices.Insert(s.Tables, i, t)
}

// Introspect returns a copy of the columns stored for the table. It makes a
// Snapshot usable wherever a live schema introspector is.
func (s *Snapshot) Introspect(_ context.Context, table string) ([]*Column, error) {
	t, ok := s.Table(table)
	if !ok {
		return nil, modelgen.NewSchemaError(table, "table not found in snapshot", nil)
	}
	columns := make([]*Column, len(t.Columns))
	for i, c := range t.Columns {
		cp := *c
		columns[i] = &cp
	}
	return columns, nil
}

// MarshalSnapshot encodes the snapshot to msgpack.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	if s.Version == 0 {
		s.Version = SnapshotVersion
	}
	return msgpack.Marshal(s)
}

// UnmarshalSnapshot decodes a msgpack encoded snapshot.
func UnmarshalSnapshot(buf []byte) (*Snapshot, error) {
	s := &Snapshot{}
	if err := msgpack.Unmarshal(buf, s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return s, nil
}

// ReadSnapshot reads a snapshot file.
func ReadSnapshot(path string) (*Snapshot, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, modelgen.NewConfigError("snapshot", "cannot read snapshot file", err)
	}
	s, err := UnmarshalSnapshot(buf)
	if err != nil {
		return nil, modelgen.NewConfigError("snapshot", path, err)
	}
	return s, nil
}

// WriteSnapshot writes the snapshot to path.
func WriteSnapshot(path string, s *Snapshot) error {
	buf, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}
