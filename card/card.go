package card

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// IDLen is the UID length read by the anticollision step
const IDLen = 4

// ErrInvalidID is returned for malformed card ids
var ErrInvalidID = errors.New("invalid card id")

// ID is an opaque card UID, compared byte for byte
type ID [IDLen]byte

// ParseID parses 8 hex digits, spaces and colons are ignored
func ParseID(s string) (ID, error) {
	var id ID
	clean := strings.NewReplacer(" ", "", ":", "").Replace(strings.TrimSpace(s))
	b, err := hex.DecodeString(clean)
	if err != nil {
		return id, fmt.Errorf("%w %q: %v", ErrInvalidID, s, err)
	}
	if len(b) != IDLen {
		return id, fmt.Errorf("%w %q: want %d bytes, got %d", ErrInvalidID, s, IDLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id ID) String() string {
	return strings.ToUpper(hex.EncodeToString(id[:]))
}

// Half returns the first (0) or second (1) pair of bytes as hex, for the 4-cell display
func (id ID) Half(n int) string {
	if n != 0 {
		return hex.EncodeToString(id[2:4])
	}
	return hex.EncodeToString(id[0:2])
}

// Table maps known card ids to logical indices
// A Table is immutable after construction
type Table struct {
	ids []ID
}

// NewTable assigns index i to ids[i], duplicates are rejected
func NewTable(ids ...ID) (*Table, error) {
	seen := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidID, id)
		}
		seen[id] = struct{}{}
	}
	t := &Table{ids: make([]ID, len(ids))}
	copy(t.ids, ids)
	return t, nil
}

// Default card ids shipped with the board kit
var (
	Card0 = ID{0x93, 0x71, 0xAF, 0x95}
	Card1 = ID{0x63, 0x93, 0xBE, 0x95}
)

// DefaultTable returns the two-card table for the kit
func DefaultTable() *Table {
	return &Table{ids: []ID{Card0, Card1}}
}

// Lookup returns the logical index of id
func (t *Table) Lookup(id ID) (int, bool) {
	for i, known := range t.ids {
		if known == id {
			return i, true
		}
	}
	return -1, false
}

// ID returns the card id at index i
func (t *Table) ID(i int) (ID, bool) {
	if i < 0 || i >= len(t.ids) {
		return ID{}, false
	}
	return t.ids[i], true
}

// Len returns the number of known cards
func (t *Table) Len() int {
	return len(t.ids)
}

// Verdict is the identification channel result for one tick
type Verdict uint8

const (
	// None means no card is present
	None Verdict = iota
	// Matched means the expected card is present
	Matched
	// Mismatched means a different or unknown card is present
	Mismatched
)

func (v Verdict) String() string {
	switch v {
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return "none"
	}
}

// Reader reads the card currently on the reader
type Reader interface {
	ReadCard() (ID, bool)
}

// Matcher compares the reader against a table
type Matcher struct {
	reader Reader
	table  *Table
}

// NewMatcher binds a reader to a table, nil table means DefaultTable
func NewMatcher(r Reader, t *Table) *Matcher {
	if t == nil {
		t = DefaultTable()
	}
	return &Matcher{reader: r, table: t}
}

// Identify reads the card and resolves its logical index, -1 for unknown cards
func (m *Matcher) Identify() (id ID, index int, present bool) {
	id, present = m.reader.ReadCard()
	if !present {
		return id, -1, false
	}
	index, _ = m.table.Lookup(id)
	return id, index, true
}

// Match reports whether the card for the expected index is on the reader
func (m *Matcher) Match(expected int) Verdict {
	_, index, present := m.Identify()
	if !present {
		return None
	}
	if index >= 0 && index == expected {
		return Matched
	}
	return Mismatched
}

// Table returns the comparator's table
func (m *Matcher) Table() *Table {
	return m.table
}
