package utils

import "hash/fnv"

// HashStringToUint64 gives the mock gateway a stable source of variation:
// the same prompt always hashes to the same synthetic extraction.
func HashStringToUint64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
