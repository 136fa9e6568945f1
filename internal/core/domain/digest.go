package domain

import (
	"encoding/json"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/opencontainers/go-digest"
	"go.trai.ch/zerr"
)

// CacheDigest is a hex-encoded SHA-256 content hash used as one level of a cache key.
type CacheDigest string

// String returns the hex digest.
func (d CacheDigest) String() string {
	return string(d)
}

// Digest hashes a JSON-serializable object or array.
// The value is serialized and canonicalized per RFC 8785 first, so map ordering and
// whitespace never influence the result. Scalars are rejected by the canonicalizer.
func Digest(v any) (CacheDigest, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal digest input")
	}
	canonical, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return "", zerr.Wrap(err, "failed to canonicalize digest input")
	}
	return CacheDigest(digest.Canonical.FromBytes(canonical).Encoded()), nil
}

// InterpreterDigest derives the interpreter component of a cache key from a canonicalized executable path.
//
// TODO: include the interpreter version so an in-place upgrade at the same path yields a new key.
func InterpreterDigest(canonicalExecutable string) (CacheDigest, error) {
	return Digest(interpreterKey{Executable: canonicalExecutable})
}

type interpreterKey struct {
	Executable string `json:"executable"`
}

// ResolutionDigest derives the resolution component of a cache key.
// Distributions are sorted first, so internal ordering never perturbs the key.
//
// Distributions from mutable sources (local paths, git) are hashed by reference only:
// a change to the referenced content without a change to the reference yields the same
// digest and the cache will serve the previously built environment.
func ResolutionDigest(r *Resolution) (CacheDigest, error) {
	return Digest(r.Sorted())
}
