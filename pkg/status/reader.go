package status

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/arthur-debert/tuckfix/pkg/errors"
	"github.com/arthur-debert/tuckfix/pkg/types"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type conflictMap = orderedmap.OrderedMap[string, []types.ConflictEntry]

type document struct {
	Linked       []string     `json:"linked"`
	Symlinked    []string     `json:"symlinked"`
	NotLinked    []string     `json:"not_linked"`
	NotSymlinked []string     `json:"not_symlinked"`
	Unsupported  []string     `json:"unsupported"`
	Nonexistent  []string     `json:"nonexistent"`
	NonExistent  []string     `json:"non_existent"`
	Conflicts    *conflictMap `json:"conflicts"`
}

// Parse decodes raw into a snapshot. It fails with ErrMalformedInput when
// raw is not a JSON object of the expected shape.
func Parse(raw []byte) (*types.StatusSnapshot, error) {
	doc := document{Conflicts: orderedmap.New[string, []types.ConflictEntry]()}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedInput, "cannot parse status document")
	}

	data := types.SnapshotData{
		Linked:      mergeUnique(doc.Linked, doc.Symlinked),
		Unlinked:    mergeUnique(doc.NotLinked, doc.NotSymlinked),
		Unsupported: mergeUnique(doc.Unsupported),
		Nonexistent: mergeUnique(doc.Nonexistent, doc.NonExistent),
	}

	if doc.Conflicts != nil {
		for pair := doc.Conflicts.Oldest(); pair != nil; pair = pair.Next() {
			data.Conflicts = append(data.Conflicts, types.GroupConflicts{
				Group:   pair.Key,
				Entries: pair.Value,
			})
		}
	}

	return types.NewStatusSnapshot(data), nil
}

// Read consumes r fully and parses it. Input that is empty or only
// whitespace fails with ErrInvalidInput.
func Read(r io.Reader) (*types.StatusSnapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot read status document")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "status document is empty")
	}
	return Parse(raw)
}

func mergeUnique(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, item := range list {
			if seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
