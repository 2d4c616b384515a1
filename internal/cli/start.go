package cli

import (
	"context"
	"sort"

	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// startCandidates are probed in order when no start hex is given.
var startCandidates = []string{"start", "home", "index"}

// DetermineStart picks the hex a walk begins at when the caller names none:
// conventional ids first, then the lexically first hex in the comb. An empty
// comb yields "".
func DetermineStart(ctx context.Context, store ports.HexStore) (string, error) {
	ids, err := store.ListIDs(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}

	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	for _, candidate := range startCandidates {
		if present[candidate] {
			return candidate, nil
		}
	}

	sort.Strings(ids)
	return ids[0], nil
}
