package milestone

import "context"

type Repository interface {
	ListMilestones(context context.Context, filter Filter, limit, offset int) ([]*Milestone, int, error)
	GetMilestone(context context.Context, id string) (*Milestone, error)
	GetMilestoneBySlug(context context.Context, slug string) (*Milestone, error)
	CreateMilestone(context context.Context, milestone *Milestone) error
	UpdateMilestone(context context.Context, milestone *Milestone) error
	DeleteMilestone(context context.Context, id string) error

	ListQuestions(context context.Context, milestoneID string) ([]Question, error)
	ReplaceQuestions(context context.Context, milestoneID string, questions []Question) error
}
