package cvparse

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultSkillVocab is the built-in technology/process vocabulary scanned
// for in CV text. Matches are case-insensitive on word boundaries.
var defaultSkillVocab = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Go", "Rust",
	"React", "Vue", "Angular", "Node.js", "Express", "Django", "Flask",
	"SQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
	"Git", "CI/CD", "Jenkins", "GitHub Actions",
	"Machine Learning", "AI", "Data Science", "TensorFlow", "PyTorch",
	"Agile", "Scrum", "Kanban", "Jira",
}

// vocabFile is the YAML shape of an external vocabulary file.
type vocabFile struct {
	Skills []string `yaml:"skills"`
}

// loadVocabFile reads additional skill terms from a YAML file.
func loadVocabFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocab file: %w", err)
	}

	var vf vocabFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("parse vocab file: %w", err)
	}

	return vf.Skills, nil
}
