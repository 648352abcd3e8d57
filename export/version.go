package export

import (
	"hash/fnv"
	"math/rand"
)

// DefaultZipVersions are generated when an archive export omits versions.
var DefaultZipVersions = []string{"A", "B", "C"}

// DefaultVersion labels a single-format export.
const DefaultVersion = "A"

// VersionSeed derives a deterministic seed from a version label. Labels of
// any length hash the same way, so version sets beyond single letters keep
// stable orderings across runs and hosts.
func VersionSeed(label string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	return h.Sum64()
}

// ShuffleContent returns a structural copy of c with questions permuted by
// the seed derived from the version label. Flat question lists shuffle as a
// whole; section layouts shuffle each section independently using the same
// seed. The input content is never mutated.
func ShuffleContent(c *Content, label string) *Content {
	if c == nil {
		return nil
	}
	out := c.Clone()
	seed := VersionSeed(label)
	if len(out.Sections) > 0 {
		for i := range out.Sections {
			shuffleQuestions(out.Sections[i].Questions, seed)
		}
		return out
	}
	shuffleQuestions(out.Questions, seed)
	return out
}

// NewVersion produces a named content variant.
func NewVersion(c *Content, label string) Version {
	return Version{
		Label:   label,
		Seed:    VersionSeed(label),
		Content: ShuffleContent(c, label),
	}
}

// GenerateVersions produces one variant per label.
func GenerateVersions(c *Content, labels []string) []Version {
	out := make([]Version, 0, len(labels))
	for _, label := range labels {
		out = append(out, NewVersion(c, label))
	}
	return out
}

// shuffleQuestions applies a Fisher-Yates shuffle with a fixed source so the
// permutation is reproducible across process runs.
func shuffleQuestions(qs []Question, seed uint64) {
	if len(qs) < 2 {
		return
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	for i := len(qs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}
