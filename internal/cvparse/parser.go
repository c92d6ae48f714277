// Package cvparse extracts candidate fields from raw CV files using
// document text extraction plus keyword and regex heuristics.
package cvparse

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
)

var (
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe = regexp.MustCompile(`[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}`)
)

// ParsedCV holds whatever the heuristics managed to extract. Fields the
// scan finds nothing for stay nil/empty; that is not an error.
type ParsedCV struct {
	Email  *string
	Phone  *string
	Skills []string
}

// Parser scans CV text against a skill vocabulary.
type Parser struct {
	vocab    []string
	patterns []*regexp.Regexp
}

// NewParser builds a parser from the built-in vocabulary plus an optional
// YAML vocabulary file (empty path skips it).
func NewParser(vocabPath string) (*Parser, error) {
	vocab := append([]string(nil), defaultSkillVocab...)

	if vocabPath != "" {
		extra, err := loadVocabFile(vocabPath)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(vocab))
		for _, s := range vocab {
			seen[strings.ToLower(s)] = true
		}
		for _, s := range extra {
			if s != "" && !seen[strings.ToLower(s)] {
				vocab = append(vocab, s)
				seen[strings.ToLower(s)] = true
			}
		}
	}

	patterns := make([]*regexp.Regexp, len(vocab))
	for i, term := range vocab {
		patterns[i] = termPattern(term)
	}

	return &Parser{vocab: vocab, patterns: patterns}, nil
}

// termPattern compiles a case-insensitive word-boundary pattern for a
// vocabulary term. Boundaries are dropped next to non-word runes so terms
// like "C++" and "C#" still match.
func termPattern(term string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(term)
	pattern := "(?i)"
	if isWordRune(rune(term[0])) {
		pattern += `\b`
	}
	pattern += quoted
	if isWordRune(rune(term[len(term)-1])) {
		pattern += `\b`
	}
	return regexp.MustCompile(pattern)
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// ExtractText pulls plain text out of a CV file. PDF and office formats go
// through docconv; .txt is read as-is; anything else yields a placeholder
// string naming the file so the import still produces a candidate.
func ExtractText(filename string, r io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.Convert(r, docconv.MimeTypeByExtension(filename), true)
		if err != nil {
			return "", fmt.Errorf("extract text from %s: %w", filename, err)
		}
		return res.Body, nil
	case ".txt":
		content, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", filename, err)
		}
		return string(content), nil
	default:
		return fmt.Sprintf("Contenido de %s", filename), nil
	}
}

// Parse runs the email, phone and skill heuristics over extracted text.
func (p *Parser) Parse(content string) ParsedCV {
	var parsed ParsedCV

	if m := emailRe.FindString(content); m != "" {
		parsed.Email = &m
	}
	if m := phoneRe.FindString(content); m != "" {
		parsed.Phone = &m
	}

	for i, re := range p.patterns {
		if re.MatchString(content) {
			parsed.Skills = append(parsed.Skills, p.vocab[i])
		}
	}

	return parsed
}
