package cachetag

import "github.com/vmihailenco/msgpack/v5"

// Pack encodes a tag set as a sorted slice and msgpack-serializes it, for
// shipping alongside a response body to a downstream cache that wants to
// index by tag without re-parsing the JSON payload itself.
func Pack(tags map[string]struct{}) ([]byte, error) {
	sorted := Sorted(tags)
	return msgpack.Marshal(sorted)
}

// Unpack decodes a tag slice previously produced by Pack back into a set.
func Unpack(data []byte) (map[string]struct{}, error) {
	var list []string
	if err := msgpack.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(list))
	for _, t := range list {
		set[t] = struct{}{}
	}
	return set, nil
}
