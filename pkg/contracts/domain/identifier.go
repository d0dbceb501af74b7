package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type identifierKind uint8

const (
	identifierNull identifierKind = iota
	identifierNumber
	identifierText
)

// Identifier is a source-defined identifier (track number, company
// registration number). Depending on the source column it is either an
// integer or free text; an empty cell yields the null Identifier.
//
// The zero value is null.
type Identifier struct {
	kind   identifierKind
	number int64
	text   string
}

// NumberIdentifier returns an integer identifier.
func NumberIdentifier(n int64) Identifier {
	return Identifier{kind: identifierNumber, number: n}
}

// TextIdentifier returns a textual identifier.
func TextIdentifier(s string) Identifier {
	return Identifier{kind: identifierText, text: s}
}

// IsNull reports whether the identifier is empty.
func (id Identifier) IsNull() bool { return id.kind == identifierNull }

// Int64 returns the integer value and true for numeric identifiers.
func (id Identifier) Int64() (int64, bool) {
	return id.number, id.kind == identifierNumber
}

// String renders the identifier the way it appeared in the source.
func (id Identifier) String() string {
	switch id.kind {
	case identifierNumber:
		return strconv.FormatInt(id.number, 10)
	case identifierText:
		return id.text
	default:
		return ""
	}
}

// MarshalJSON encodes numeric identifiers as JSON numbers, textual ones as
// JSON strings and the null identifier as null.
func (id Identifier) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case identifierNumber:
		return []byte(strconv.FormatInt(id.number, 10)), nil
	case identifierText:
		return json.Marshal(id.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = Identifier{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TextIdentifier(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("identifier: %w", err)
	}
	*id = NumberIdentifier(n)
	return nil
}
