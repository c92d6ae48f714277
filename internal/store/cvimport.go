package store

import (
	"context"
	"io"

	"github.com/alegonzalezz/ATS/internal/cvparse"
	"github.com/alegonzalezz/ATS/internal/model"
)

// ProgressFunc receives coarse completion percentages during an import.
type ProgressFunc func(percent int)

// ImportFromCV extracts text and heuristic fields from a CV file and
// creates a candidate from whatever was found. An empty extraction still
// produces a candidate; only text extraction itself can fail.
func (s *Store) ImportFromCV(ctx context.Context, filename string, r io.Reader, onProgress ProgressFunc) (model.Candidate, error) {
	report := func(p int) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	report(10)

	content, err := cvparse.ExtractText(filename, r)
	if err != nil {
		return model.Candidate{}, err
	}
	report(50)

	parsed := s.parser.Parse(content)
	report(80)

	params := AddParams{
		Skills:     parsed.Skills,
		Phone:      parsed.Phone,
		Status:     model.StatusNuevo,
		Source:     model.SourceCV,
		CVFileName: &filename,
		CVContent:  &content,
	}
	if parsed.Email != nil {
		params.Email = *parsed.Email
	}

	cand := s.Add(ctx, params)
	report(100)

	return cand, nil
}
