package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"space-stem-quiz/internal/domain"
)

// Parse decodes a quiz bank document. YAML is accepted for .yaml/.yml names, JSON otherwise.
// The document is checked against the bank schema and the question invariants.
func Parse(name string, data []byte) (domain.Quiz, error) {
	raw := data
	if isYAML(name) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return domain.Quiz{}, fmt.Errorf("parse %s: %w", name, err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return domain.Quiz{}, fmt.Errorf("convert %s: %w", name, err)
		}
		raw = converted
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Quiz{}, fmt.Errorf("parse %s: %w", name, err)
	}
	if err := ValidateDocument(doc); err != nil {
		return domain.Quiz{}, fmt.Errorf("%s: %w", name, err)
	}

	var quiz domain.Quiz
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := domain.ValidateQuiz(quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("%s: %w", name, err)
	}
	return quiz, nil
}

// LoadFile reads and parses one bank file.
func LoadFile(path string) (domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("read bank file: %w", err)
	}
	return Parse(filepath.Base(path), data)
}

// LoadDir parses every .json, .yaml and .yml file in dir, sorted by file name.
func LoadDir(dir string) ([]domain.Quiz, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read bank dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	quizzes := make([]domain.Quiz, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		quiz, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[quiz.ID]; dup {
			return nil, fmt.Errorf("%w: quiz %s defined in both %s and %s", domain.ErrInvalidQuestion, quiz.ID, prev, name)
		}
		seen[quiz.ID] = name
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
