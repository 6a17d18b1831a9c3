package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// Cycle is one release line of a product as served by the endoflife.date API.
type Cycle struct {
	Cycle Label    `json:"cycle"`
	EOL   EOLField `json:"eol"`
}

// Label handles cycle names, which the API serves as either strings or
// bare numbers.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	var v interface{}
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return xerrors.Errorf("unable to parse cycle label: %w", err)
	}

	switch vv := v.(type) {
	case string:
		*l = Label(vv)
	case json.Number:
		*l = Label(vv.String())
	case nil:
		*l = ""
	default:
		return xerrors.Errorf("unexpected cycle label type: %T", v)
	}
	return nil
}

// EOLField holds the "eol" value of a cycle, which the API serves as a
// date string, a boolean, or null. Absent/false means still supported.
type EOLField struct {
	EOLed bool
	Date  string
}

func (e *EOLField) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return xerrors.Errorf("unable to parse eol field: %w", err)
	}

	switch vv := v.(type) {
	case bool:
		e.EOLed = vv
	case string:
		e.EOLed = vv != ""
		e.Date = vv
	case nil:
	default:
		return xerrors.Errorf("unexpected eol field type: %T", v)
	}
	return nil
}

func (e EOLField) MarshalJSON() ([]byte, error) {
	if e.Date != "" {
		return json.Marshal(e.Date)
	}
	return json.Marshal(e.EOLed)
}

// Snapshot is the set of product keys known to the catalog, fixed once at
// fetch time. Keys iterate in sorted order so substring matching resolves
// ties the same way on every run.
type Snapshot struct {
	keys []string
	set  map[string]struct{}
}

func NewSnapshot(keys []string) *Snapshot {
	keys = lo.Map(keys, func(key string, _ int) string {
		return strings.ToLower(key)
	})
	slices.Sort(keys)
	keys = slices.Compact(keys)

	return &Snapshot{
		keys: keys,
		set:  lo.SliceToMap(keys, func(key string) (string, struct{}) { return key, struct{}{} }),
	}
}

// Keys returns the product keys in iteration order.
func (s *Snapshot) Keys() []string {
	return s.keys
}

func (s *Snapshot) Has(key string) bool {
	_, ok := s.set[key]
	return ok
}

func (s *Snapshot) Len() int {
	return len(s.keys)
}
