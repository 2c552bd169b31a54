package services

import (
	"context"

	"github.com/GatherMatch/models"
)

// CandidateRanker is the external candidate-ranking collaborator. It is a
// pure lookup: it never touches the match records itself.
type CandidateRanker interface {
	Rank(ctx context.Context, activityID string, criteria models.MatchCriteria) ([]models.MatchedCandidate, error)
}

// StubRanker returns a fixed ranked pair. Minimal deployments run with
// this until a real ranking engine is wired in.
type StubRanker struct{}

func NewStubRanker() *StubRanker {
	return &StubRanker{}
}

func (r *StubRanker) Rank(ctx context.Context, activityID string, criteria models.MatchCriteria) ([]models.MatchedCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []models.MatchedCandidate{
		{User_ID: "u67890", Similarity_Score: 0.92},
		{User_ID: "u54321", Similarity_Score: 0.87},
	}, nil
}
