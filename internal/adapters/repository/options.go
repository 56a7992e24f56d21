// Package repository defines the roster store interface and errors.
package repository

import "github.com/teampulse/teampulse/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithLevels replaces the default maturity ladder.
func WithLevels(levels []model.Level) Option {
	return func(s *MemStore) {
		if len(levels) > 0 {
			s.levels = append([]model.Level(nil), levels...)
		}
	}
}

// WithSkills seeds reference skills at construction.
func WithSkills(skills []model.Skill) Option {
	return func(s *MemStore) {
		for _, sk := range skills {
			if sk.ID != "" {
				s.skills[sk.ID] = sk
			}
		}
	}
}

// WithCategories seeds reference categories at construction.
func WithCategories(categories []model.Category) Option {
	return func(s *MemStore) {
		for _, c := range categories {
			if c.ID != "" {
				s.categories[c.ID] = c
			}
		}
	}
}
