package export

import "os"

// BaseFontFamily is the built-in core font every PDF backend can rely on.
const BaseFontFamily = "Helvetica"

// FontCandidate is one prioritized Unicode font option: TTF file paths keyed
// by style ("" regular, "B" bold, "I" italic).
type FontCandidate struct {
	Family string
	Files  map[string]string
}

// DefaultFontCandidates lists Unicode fonts commonly present on Linux hosts,
// highest priority first.
func DefaultFontCandidates() []FontCandidate {
	return []FontCandidate{
		{
			Family: "DejaVuSans",
			Files: map[string]string{
				"":  "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
				"B": "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
				"I": "/usr/share/fonts/truetype/dejavu/DejaVuSans-Oblique.ttf",
			},
		},
		{
			Family: "NotoSans",
			Files: map[string]string{
				"":  "/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
				"B": "/usr/share/fonts/truetype/noto/NotoSans-Bold.ttf",
				"I": "/usr/share/fonts/truetype/noto/NotoSans-Italic.ttf",
			},
		},
		{
			Family: "LiberationSans",
			Files: map[string]string{
				"":  "/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
				"B": "/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
				"I": "/usr/share/fonts/truetype/liberation/LiberationSans-Italic.ttf",
			},
		},
	}
}

// FilesystemFontResolver probes candidate TTF files on disk and answers with
// the first candidate whose requested styles all exist. When nothing is
// available it falls back to the guaranteed base font, so resolution never
// fails.
type FilesystemFontResolver struct {
	Candidates []FontCandidate
	Stat       func(path string) error
}

// NewFilesystemFontResolver creates a resolver over the default candidates.
func NewFilesystemFontResolver() *FilesystemFontResolver {
	return &FilesystemFontResolver{Candidates: DefaultFontCandidates()}
}

// Resolve returns the best available font descriptor for the requirement.
func (r *FilesystemFontResolver) Resolve(req FontRequirement) FontDescriptor {
	if r == nil || !req.Unicode {
		return baseFontDescriptor()
	}

	stat := r.Stat
	if stat == nil {
		stat = func(path string) error {
			_, err := os.Stat(path)
			return err
		}
	}

	styles := req.Styles
	if len(styles) == 0 {
		styles = []string{""}
	}

	for _, cand := range r.Candidates {
		files := make(map[string]string, len(styles))
		ok := true
		for _, style := range styles {
			path := cand.Files[style]
			if path == "" || stat(path) != nil {
				ok = false
				break
			}
			files[style] = path
		}
		if ok {
			return FontDescriptor{Family: cand.Family, Files: files}
		}
	}

	return baseFontDescriptor()
}

// BaseFontResolver always answers with the built-in core font.
type BaseFontResolver struct{}

// Resolve returns the base font descriptor regardless of the requirement.
func (BaseFontResolver) Resolve(FontRequirement) FontDescriptor {
	return baseFontDescriptor()
}

func baseFontDescriptor() FontDescriptor {
	return FontDescriptor{Family: BaseFontFamily, Core: true}
}
