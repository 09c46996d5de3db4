package mapping

import (
	"regexp"
)

var dashRuns = regexp.MustCompile(`-+`)

// FileNameSanitizer rewrites document labels into backend-safe file names.
// The pattern describing forbidden characters comes from configuration; runs
// of forbidden characters collapse into a single dash.
type FileNameSanitizer struct {
	forbidden *regexp.Regexp
}

func NewFileNameSanitizer(pattern string) (*FileNameSanitizer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &FileNameSanitizer{forbidden: re}, nil
}

func (s *FileNameSanitizer) Sanitize(name string) string {
	return dashRuns.ReplaceAllString(s.forbidden.ReplaceAllString(name, "-"), "-")
}
