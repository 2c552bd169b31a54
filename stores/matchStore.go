package stores

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GatherMatch/models"
	"github.com/GatherMatch/services"
)

// rankTimeout bounds the external ranking call so a stuck engine cannot
// hold a request open indefinitely.
const rankTimeout = 10 * time.Second

const (
	matchActionInitiated = "initiated"
)

// MatchStore owns the activity_match, match_history and match_feedback
// tables. Every state change appends its history entry in the same
// transaction; match rows are locked during read-modify-write so candidate
// set updates cannot be lost under concurrent responses.
type MatchStore struct {
	db     *goqu.Database
	ranker services.CandidateRanker
}

func NewMatchStore(db *goqu.Database, ranker services.CandidateRanker) *MatchStore {
	return &MatchStore{db: db, ranker: ranker}
}

// Initiate asks the ranking engine for candidates and records a brand new
// match with everyone pending. Earlier matches for the activity are kept;
// the newest updated_at defines the current one. A ranking failure leaves
// no partial match behind.
func (s *MatchStore) Initiate(ctx context.Context, activityID string, criteria models.MatchCriteria) (*models.Match, []models.MatchedCandidate, error) {
	rankCtx, cancel := context.WithTimeout(ctx, rankTimeout)
	defer cancel()

	candidates, err := s.ranker.Rank(rankCtx, activityID, criteria)
	if err != nil {
		log.Println(err)
		return nil, nil, models.NewUpstreamError("candidate ranking failed", err)
	}

	pending := make(pq.StringArray, 0, len(candidates))
	for _, c := range candidates {
		pending = append(pending, c.User_ID)
	}

	match := models.Match{
		Match_ID:           uuid.NewString(),
		Activity_ID:        activityID,
		Status:             models.MatchStatusMatchingCompleted,
		Matched_Candidates: pending,
		Pending:            pending,
		Accepted:           pq.StringArray{},
		Rejected:           pq.StringArray{},
		Updated_At:         time.Now(),
	}

	err = s.db.WithTx(func(tx *goqu.TxDatabase) error {
		if _, err := tx.Insert("activity_match").Rows(match).Executor().ExecContext(ctx); err != nil {
			return err
		}
		return appendHistory(ctx, tx, match.Match_ID, matchActionInitiated, match.Updated_At)
	})
	if err != nil {
		log.Println(err)
		return nil, nil, models.NewStorageError("failed to record match", err)
	}

	return &match, candidates, nil
}

// Respond moves a pending candidate into accepted or rejected. A user who
// is not pending keeps their current set, so repeating a response is
// idempotent; updated_at refreshes either way.
func (s *MatchStore) Respond(ctx context.Context, matchID string, userID string, response string) (*models.Match, error) {
	if response != models.MatchResponseAccept && response != models.MatchResponseReject {
		return nil, models.NewValidationError("invalid response type: " + response)
	}

	var match models.Match
	err := s.db.WithTx(func(tx *goqu.TxDatabase) error {
		found, err := tx.From("activity_match").
			Where(goqu.C("match_id").Eq(matchID)).
			ForUpdate(exp.Wait).
			ScanStructContext(ctx, &match)
		if err != nil {
			return err
		}
		if !found {
			return models.NewNotFoundError("match record not found")
		}

		match.ApplyResponse(userID, response)
		match.Updated_At = time.Now()

		if _, err := tx.Update("activity_match").
			Set(goqu.Record{
				"pending":    match.Pending,
				"accepted":   match.Accepted,
				"rejected":   match.Rejected,
				"updated_at": match.Updated_At,
			}).
			Where(goqu.C("match_id").Eq(matchID)).
			Executor().ExecContext(ctx); err != nil {
			return err
		}

		return appendHistory(ctx, tx, matchID, response, match.Updated_At)
	})
	if err != nil {
		var se *models.StoreError
		if errors.As(err, &se) {
			return nil, err
		}
		log.Println(err)
		return nil, models.NewStorageError("failed to record match response", err)
	}

	return &match, nil
}

// UpdateStatus cancels or pauses the current match of an activity.
func (s *MatchStore) UpdateStatus(ctx context.Context, activityID string, action string) (*models.Match, error) {
	if !models.ValidMatchAction(action) {
		return nil, models.NewValidationError("invalid action type: " + action)
	}

	var match models.Match
	err := s.db.WithTx(func(tx *goqu.TxDatabase) error {
		found, err := tx.From("activity_match").
			Where(goqu.C("activity_id").Eq(activityID)).
			Order(goqu.C("updated_at").Desc()).
			Limit(1).
			ForUpdate(exp.Wait).
			ScanStructContext(ctx, &match)
		if err != nil {
			return err
		}
		if !found {
			return models.NewNotFoundError("no match record for activity")
		}

		match.Status = action
		match.Updated_At = time.Now()

		if _, err := tx.Update("activity_match").
			Set(goqu.Record{
				"status":     match.Status,
				"updated_at": match.Updated_At,
			}).
			Where(goqu.C("match_id").Eq(match.Match_ID)).
			Executor().ExecContext(ctx); err != nil {
			return err
		}

		return appendHistory(ctx, tx, match.Match_ID, action, match.Updated_At)
	})
	if err != nil {
		var se *models.StoreError
		if errors.As(err, &se) {
			return nil, err
		}
		log.Println(err)
		return nil, models.NewStorageError("failed to update match status", err)
	}

	return &match, nil
}

// RecordFeedback stores a partner rating for a match. No status effect and
// no history entry, since the match row itself does not change.
func (s *MatchStore) RecordFeedback(ctx context.Context, matchID string, raterID string, rating float64) error {
	var count int
	if _, err := s.db.From("activity_match").
		Select(goqu.COUNT("*")).
		Where(goqu.C("match_id").Eq(matchID)).
		ScanValContext(ctx, &count); err != nil {
		log.Println(err)
		return models.NewStorageError("failed to check match record", err)
	}
	if count == 0 {
		return models.NewNotFoundError("match record not found")
	}

	feedback := models.MatchFeedback{
		Rater_ID:     raterID,
		Match_ID:     matchID,
		Rating:       rating,
		Submitted_At: time.Now(),
	}
	if _, err := s.db.Insert("match_feedback").Rows(feedback).Executor().ExecContext(ctx); err != nil {
		log.Println(err)
		return models.NewStorageError("failed to record match feedback", err)
	}
	return nil
}

// CurrentFor returns the most recently updated match for an activity.
func (s *MatchStore) CurrentFor(ctx context.Context, activityID string) (*models.Match, error) {
	var match models.Match
	found, err := s.db.From("activity_match").
		Where(goqu.C("activity_id").Eq(activityID)).
		Order(goqu.C("updated_at").Desc()).
		Limit(1).
		ScanStructContext(ctx, &match)
	if err != nil {
		log.Println(err)
		return nil, models.NewStorageError("failed to fetch match record", err)
	}
	if !found {
		return nil, models.NewNotFoundError("no match record for activity")
	}
	return &match, nil
}

func appendHistory(ctx context.Context, tx *goqu.TxDatabase, matchID string, action string, at time.Time) error {
	entry := models.MatchHistoryEntry{
		Match_ID:    matchID,
		Action:      action,
		Recorded_At: at,
	}
	_, err := tx.Insert("match_history").Rows(entry).Executor().ExecContext(ctx)
	return err
}
