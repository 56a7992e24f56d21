// Package repository defines the roster store interface and errors.
//
// The store holds the records the calculators read: members, 1:1
// meetings, performance reviews, skill assessments, growth areas and
// the skill/category/level reference data. Durable persistence is a
// collaborator concern; this package ships an in-memory implementation
// seeded with the default level ladder.
package repository

import (
	"context"

	"github.com/teampulse/teampulse/internal/domain/model"
)

// Store provides read/write access to the roster state.
type Store interface {
	// Members.
	CreateMember(ctx context.Context, m model.TeamMember) error
	GetMember(ctx context.Context, id string) (model.TeamMember, error)
	ListMembers(ctx context.Context) ([]model.TeamMember, error)
	UpdateMember(ctx context.Context, m model.TeamMember) error
	// DeleteMember removes the member and every record attached to it.
	DeleteMember(ctx context.Context, id string) error
	// Count returns the number of members tracked.
	Count(ctx context.Context) int

	// 1:1 meetings.
	AddOneOnOne(ctx context.Context, rec model.OneOnOne) error
	ListOneOnOnes(ctx context.Context, memberID string) ([]model.OneOnOne, error)
	// LatestOneOnOne returns ErrNotFound when the member has none.
	LatestOneOnOne(ctx context.Context, memberID string) (model.OneOnOne, error)

	// Performance reviews.
	AddReview(ctx context.Context, r model.PerformanceReview) error
	ListReviews(ctx context.Context, memberID string) ([]model.PerformanceReview, error)
	// LatestReview returns the most recent review of one type;
	// ErrNotFound when the member has none of that type.
	LatestReview(ctx context.Context, memberID string, t model.ReviewType) (model.PerformanceReview, error)

	// Skill assessments, unique per (member, skill); Put upserts.
	PutAssessment(ctx context.Context, a model.SkillAssessment) error
	ListAssessments(ctx context.Context, memberID string) ([]model.SkillAssessment, error)

	// Growth areas.
	AddGrowthArea(ctx context.Context, g model.GrowthArea) error
	ListGrowthAreas(ctx context.Context, memberID string) ([]model.GrowthArea, error)
	UpdateGrowthArea(ctx context.Context, g model.GrowthArea) error

	// Reference data.
	Levels(ctx context.Context) []model.Level
	LevelByID(ctx context.Context, id string) (model.Level, error)
	PutSkill(ctx context.Context, s model.Skill) error
	Skills(ctx context.Context) []model.Skill
	PutCategory(ctx context.Context, c model.Category) error
	Categories(ctx context.Context) []model.Category
}
