package feed

import (
	"strings"
)

// payloadKeys are the case variants the feed has been observed to use for the
// positions sequence. The first key present wins.
var payloadKeys = []string{"posiciones", "Posiciones", "POSICIONES"}

// Decode extracts the flat item sequence from a decoded feed payload. A
// payload without a positions key decodes to an empty feed. Emission order
// follows the payload: the normalizer relies on it for last-record-wins
// deduplication.
func Decode(payload map[string]any) []Item {
	seq := rawSequence(payload)
	items := make([]Item, 0, len(seq))
	for _, v := range seq {
		items = append(items, decodeEntry(v, true)...)
	}
	return items
}

func rawSequence(payload map[string]any) []any {
	for _, k := range payloadKeys {
		if v, ok := payload[k]; ok {
			seq, _ := v.([]any)
			return seq
		}
	}
	// unseen casings of the same key
	for k, v := range payload {
		if strings.EqualFold(k, payloadKeys[0]) {
			seq, _ := v.([]any)
			return seq
		}
	}
	return nil
}

// decodeEntry resolves one payload entry into zero or more items. Sequences
// recurse a single level; deeper nesting is not supported by the feed.
func decodeEntry(v any, recurse bool) []Item {
	switch t := v.(type) {
	case string:
		return splitEncoded(t)
	case map[string]any:
		return []Item{{Fields: t}}
	case []any:
		if !recurse {
			return nil
		}
		var items []Item
		for _, e := range t {
			items = append(items, decodeEntry(e, false)...)
		}
		return items
	}
	return nil
}

// splitEncoded partitions a delimiter-encoded string into complete 12-field
// tuples. A trailing chunk with fewer than 12 fields signals a truncated
// tail and is dropped.
func splitEncoded(s string) []Item {
	parts := strings.Split(s, ";")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	var items []Item
	for i := 0; i+recordFieldCount <= len(tokens); i += recordFieldCount {
		items = append(items, Item{Tuple: tokens[i : i+recordFieldCount]})
	}
	return items
}
