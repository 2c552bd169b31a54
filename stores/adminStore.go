package stores

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/GatherMatch/models"
)

// AdminStore owns the moderation queue. A decision flips the activity
// status and appends its audit entry in one transaction. Re-deciding an
// already-decided activity is allowed on purpose: the status is
// overwritten and a fresh audit row is appended.
type AdminStore struct {
	db *goqu.Database
}

func NewAdminStore(db *goqu.Database) *AdminStore {
	return &AdminStore{db: db}
}

// ListPending returns activities waiting for review, oldest submission
// first.
func (s *AdminStore) ListPending(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.From("activity").
		Where(goqu.C("status").Eq(models.ActivityStatusPendingReview)).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(ctx, &activities)
	if err != nil {
		log.Println(err)
		return nil, models.NewStorageError("failed to fetch pending activities", err)
	}
	return activities, nil
}

// Decide applies an approve/reject decision and appends the audit entry.
func (s *AdminStore) Decide(ctx context.Context, activityID string, reviewerID string, decision string, comment string) (*models.Activity, error) {
	var newStatus string
	switch decision {
	case models.AdminDecisionApprove:
		newStatus = models.ActivityStatusApproved
	case models.AdminDecisionReject:
		newStatus = models.ActivityStatusRejected
	default:
		return nil, models.NewValidationError("invalid decision: " + decision)
	}

	var activity models.Activity
	err := s.db.WithTx(func(tx *goqu.TxDatabase) error {
		found, err := tx.From("activity").
			Where(goqu.C("activity_id").Eq(activityID)).
			ForUpdate(exp.Wait).
			ScanStructContext(ctx, &activity)
		if err != nil {
			return err
		}
		if !found {
			return models.NewNotFoundError("activity not found")
		}

		activity.Status = newStatus
		activity.Updated_At = time.Now()

		if _, err := tx.Update("activity").
			Set(goqu.Record{
				"status":     activity.Status,
				"updated_at": activity.Updated_At,
			}).
			Where(goqu.C("activity_id").Eq(activityID)).
			Executor().ExecContext(ctx); err != nil {
			return err
		}

		action := models.AdminActivityAction{
			Activity_ID: activityID,
			Reviewer_ID: reviewerID,
			Decision:    decision,
			Comment:     comment,
			Operated_At: activity.Updated_At,
		}
		if _, err := tx.Insert("admin_activity_action").Rows(action).Executor().ExecContext(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		var se *models.StoreError
		if errors.As(err, &se) {
			return nil, err
		}
		log.Println(err)
		return nil, models.NewStorageError("failed to apply review decision", err)
	}

	return &activity, nil
}
