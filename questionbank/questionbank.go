// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package questionbank

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/mock-me/models"
)

//go:embed questions.yaml
var defaultBank []byte

// CodingQuestion pads short question lists up to MinQuestions
var CodingQuestion = models.Question{
	Type: models.TypeTechnical,
	Text: "Two Sum: Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target. Assume exactly one solution and you may not use the same element twice.",
}

// MinQuestions is the length of a bootstrapped interview
const MinQuestions = 6

var ErrInvalidBank = errors.New("invalid question bank")

type demoEntry struct {
	models.Demo `yaml:",inline"`
	Questions   []models.Question `yaml:"questions"`
}

type bankFile struct {
	DefaultDemo int         `yaml:"default_demo"`
	Demos       []demoEntry `yaml:"demos"`
}

// Bank holds the demo catalogue and one question set per demo
type Bank struct {
	defaultID int
	demos     []models.Demo
	sets      map[int][]models.Question
}

// Default returns the bank compiled into the binary
func Default() *Bank {
	b, err := Parse(defaultBank)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank: %v", err))
	}
	return b
}

// Load reads a bank from a YAML file
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML bank
func Parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}

	b := &Bank{
		defaultID: f.DefaultDemo,
		sets:      make(map[int][]models.Question, len(f.Demos)),
	}
	for _, d := range f.Demos {
		b.demos = append(b.demos, d.Demo)
		b.sets[d.ID] = d.Questions
	}
	return b, nil
}

func validate(f *bankFile) error {
	if len(f.Demos) == 0 {
		return fmt.Errorf("%w: no demos", ErrInvalidBank)
	}
	if f.DefaultDemo == 0 {
		f.DefaultDemo = 1
	}

	seen := make(map[int]bool)
	for _, d := range f.Demos {
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate demo id %d", ErrInvalidBank, d.ID)
		}
		seen[d.ID] = true

		if d.Title == "" {
			return fmt.Errorf("%w: demo %d has no title", ErrInvalidBank, d.ID)
		}
		if len(d.Questions) == 0 {
			return fmt.Errorf("%w: demo %d has no questions", ErrInvalidBank, d.ID)
		}
		for i, q := range d.Questions {
			if !q.Type.Valid() {
				return fmt.Errorf("%w: demo %d question %d has unknown type %q", ErrInvalidBank, d.ID, i, q.Type)
			}
			if strings.TrimSpace(q.Text) == "" {
				return fmt.Errorf("%w: demo %d question %d has no text", ErrInvalidBank, d.ID, i)
			}
		}
	}

	if !seen[f.DefaultDemo] {
		return fmt.Errorf("%w: default demo %d not defined", ErrInvalidBank, f.DefaultDemo)
	}
	return nil
}

// Demos returns the catalogue in file order
func (b *Bank) Demos() []models.Demo {
	out := make([]models.Demo, len(b.demos))
	copy(out, b.demos)
	return out
}

// Questions returns the set for demoID, or the default set when the ID is
// empty, malformed or unknown. The returned slice is a copy.
func (b *Bank) Questions(demoID string) []models.Question {
	set, ok := b.sets[b.resolve(demoID)]
	if !ok {
		set = b.sets[b.defaultID]
	}
	out := make([]models.Question, len(set))
	copy(out, set)
	return out
}

// DefaultID is the demo served for unknown IDs
func (b *Bank) DefaultID() int {
	return b.defaultID
}

func (b *Bank) resolve(demoID string) int {
	id, err := strconv.Atoi(strings.TrimSpace(demoID))
	if err != nil {
		return b.defaultID
	}
	return id
}
