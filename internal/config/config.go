// Package config holds the data registries that make the tutor extensible
// without code changes: age-group presentation, semantic keyword patterns
// for conceptual sub-answers, per-subject feature-extraction vocabulary,
// and host-defined answer-quality categories. Defaults are embedded; an
// override file layers on top of them.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultAgeGroup is the presentation fallback for unknown age groups.
const DefaultAgeGroup = "grades_3-5"

// AgeGroup describes how responses should read for one student age band.
type AgeGroup struct {
	Label            string `yaml:"label"`
	Vocabulary       string `yaml:"vocabulary"`
	SentenceLength   string `yaml:"sentence_length"`
	ScaffoldingDepth string `yaml:"scaffolding_depth"`
	Examples         string `yaml:"examples"`
}

// SemanticPattern matches conceptual sub-questions to keyword sets.
// Keywords are bucketed by variant (e.g. "+"/"-", "positive"/"negative");
// patterns with a single bucket use the "any" variant.
type SemanticPattern struct {
	QuestionPatterns []string            `yaml:"question_patterns"`
	ExpectedKeywords map[string][]string `yaml:"expected_keywords"`
	WrongKeywords    map[string][]string `yaml:"wrong_keywords"`
}

// FeatureExtraction is the keyword vocabulary handed to the response
// generator for one subject.
type FeatureExtraction struct {
	Keywords   []string `yaml:"keywords"`
	Directions []string `yaml:"directions"`
	Concepts   []string `yaml:"concepts"`
}

// CategoryDef defines a host-added answer-quality category.
type CategoryDef struct {
	Confidence     float64 `yaml:"confidence"`
	NextAction     string  `yaml:"next_action"`
	Tone           string  `yaml:"tone"`
	ErrorMagnitude string  `yaml:"error_magnitude"`
}

// Registries is the full registry set.
type Registries struct {
	AgeGroups         map[string]AgeGroup          `yaml:"age_groups"`
	SemanticPatterns  map[string][]SemanticPattern `yaml:"semantic_patterns"`
	FeatureExtraction map[string]FeatureExtraction `yaml:"feature_extraction"`
	Categories        map[string]CategoryDef       `yaml:"categories"`
}

// Default returns the embedded registries.
func Default() (*Registries, error) {
	var r Registries
	if err := yaml.Unmarshal(defaultsYAML, &r); err != nil {
		return nil, fmt.Errorf("parse embedded registries: %w", err)
	}
	return &r, nil
}

// Load returns the embedded registries with the override file, if any,
// layered on top. Override entries replace same-keyed defaults; untouched
// defaults stay. An empty path means defaults only.
func Load(path string) (*Registries, error) {
	r, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry overrides: %w", err)
	}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse registry overrides %s: %w", path, err)
	}
	return r, nil
}

// AgeGroupFor returns the presentation config for name, falling back to
// DefaultAgeGroup when name is unknown.
func (r *Registries) AgeGroupFor(name string) AgeGroup {
	if g, ok := r.AgeGroups[name]; ok {
		return g
	}
	return r.AgeGroups[DefaultAgeGroup]
}

// FeatureExtractionFor returns the keyword vocabulary for a subject.
// ok is false for subjects without one.
func (r *Registries) FeatureExtractionFor(subject string) (FeatureExtraction, bool) {
	fe, ok := r.FeatureExtraction[subject]
	return fe, ok
}
