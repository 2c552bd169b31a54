package stores

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GatherMatch/models"
)

// ActivityStore owns the activity, activity_content and activity_rating
// tables. Every mutation runs in one transaction so a partial write can
// never leave an activity without its content or a rating without its
// aggregate refresh.
type ActivityStore struct {
	db *goqu.Database
}

func NewActivityStore(db *goqu.Database) *ActivityStore {
	return &ActivityStore{db: db}
}

func newActivityID() string {
	return "a" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

// Create writes a new activity and its content atomically. The owner is
// always a participant. Status defaults to deciding when none is given.
func (s *ActivityStore) Create(ctx context.Context, ownerID string, status string, content models.ActivityContent) (*models.Activity, error) {
	if status == "" {
		status = models.ActivityStatusDeciding
	}
	if !models.ValidActivityStatus(status) {
		return nil, models.NewValidationError("invalid activity status: " + status)
	}
	if content.Budget < 0 {
		return nil, models.NewValidationError("budget must be a non-negative amount")
	}
	if content.Group_Size <= 0 {
		content.Group_Size = 1
	}

	now := time.Now()
	activity := models.Activity{
		Activity_ID:  newActivityID(),
		Owner_ID:     ownerID,
		Participants: pq.StringArray{ownerID},
		Status:       status,
		Created_At:   now,
		Updated_At:   now,
		Rating_IDs:   pq.StringArray{},
	}
	content.Activity_ID = activity.Activity_ID
	if content.Recommended_Equipment == nil {
		content.Recommended_Equipment = pq.StringArray{}
	}
	if content.Activity_Tags == nil {
		content.Activity_Tags = pq.StringArray{}
	}

	err := s.db.WithTx(func(tx *goqu.TxDatabase) error {
		if _, err := tx.Insert("activity").Rows(activity).Executor().ExecContext(ctx); err != nil {
			return err
		}
		if _, err := tx.Insert("activity_content").Rows(content).Executor().ExecContext(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Println(err)
		return nil, models.NewStorageError("failed to create activity", err)
	}

	return &activity, nil
}

// Update applies only the fields present in the request. The whole update
// commits or rolls back as one unit and always refreshes updated_at.
func (s *ActivityStore) Update(ctx context.Context, req models.ActivityUpdateRequest) (*models.Activity, error) {
	contentChanges := goqu.Record{}

	if req.Activity_Title != nil {
		contentChanges["title"] = *req.Activity_Title
	}
	if req.Description != nil {
		contentChanges["description"] = *req.Description
	}
	if req.Theme != nil {
		contentChanges["theme"] = *req.Theme
	}
	if req.Location != nil {
		contentChanges["location"] = *req.Location
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			return nil, models.NewValidationError("budget must be a non-negative amount")
		}
		contentChanges["budget"] = *req.Budget
	}
	if req.Start_Time != nil {
		start, err := time.Parse(time.RFC3339, *req.Start_Time)
		if err != nil {
			return nil, models.NewValidationError("start_time is not a valid RFC 3339 timestamp")
		}
		contentChanges["start_time"] = start
	}
	if req.Duration != nil {
		contentChanges["duration"] = *req.Duration
	}
	if req.Requirements != nil {
		contentChanges["group_size"] = req.Requirements.Group_Size
		contentChanges["activity_tags"] = pq.StringArray(req.Requirements.Activity_Tags)
	}
	if req.Status != nil && !models.ValidActivityStatus(*req.Status) {
		return nil, models.NewValidationError("invalid activity status: " + *req.Status)
	}

	var activity models.Activity
	err := s.db.WithTx(func(tx *goqu.TxDatabase) error {
		found, err := tx.From("activity").
			Where(goqu.C("activity_id").Eq(req.Activity_ID)).
			ForUpdate(exp.Wait).
			ScanStructContext(ctx, &activity)
		if err != nil {
			return err
		}
		if !found {
			return models.NewNotFoundError("activity not found")
		}

		if len(contentChanges) > 0 {
			if _, err := tx.Update("activity_content").
				Set(contentChanges).
				Where(goqu.C("activity_id").Eq(req.Activity_ID)).
				Executor().ExecContext(ctx); err != nil {
				return err
			}
		}

		activity.Updated_At = time.Now()
		activityChanges := goqu.Record{"updated_at": activity.Updated_At}
		if req.Status != nil {
			activity.Status = *req.Status
			activityChanges["status"] = *req.Status
		}
		if _, err := tx.Update("activity").
			Set(activityChanges).
			Where(goqu.C("activity_id").Eq(req.Activity_ID)).
			Executor().ExecContext(ctx); err != nil {
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
		return nil, models.NewStorageError("failed to update activity", err)
	}

	return &activity, nil
}

// SubmitRating inserts a rating and recomputes the activity's aggregate in
// the same transaction. A second rating from the same rater is rejected.
func (s *ActivityStore) SubmitRating(ctx context.Context, activityID string, raterID string, value float64, comment string) (*models.Rating, error) {
	rating := models.Rating{
		Rating_ID:    uuid.NewString(),
		Activity_ID:  activityID,
		Rater_ID:     raterID,
		Rating:       value,
		Comment:      comment,
		Submitted_At: time.Now(),
	}

	err := s.db.WithTx(func(tx *goqu.TxDatabase) error {
		var activity models.Activity
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

		var existing int
		if _, err := tx.From("activity_rating").
			Select(goqu.COUNT("*")).
			Where(goqu.Ex{"activity_id": activityID, "rater_id": raterID}).
			ScanValContext(ctx, &existing); err != nil {
			return err
		}
		if existing > 0 {
			return models.NewDuplicateError("rating already submitted for this activity")
		}

		if _, err := tx.Insert("activity_rating").Rows(rating).Executor().ExecContext(ctx); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return models.NewDuplicateError("rating already submitted for this activity")
			}
			return err
		}

		var mean float64
		if _, err := tx.From("activity_rating").
			Select(goqu.AVG("rating")).
			Where(goqu.C("activity_id").Eq(activityID)).
			ScanValContext(ctx, &mean); err != nil {
			return err
		}

		if _, err := tx.Update("activity").
			Set(goqu.Record{
				"aggregate_rating": mean,
				"rating_ids":       append(activity.Rating_IDs, rating.Rating_ID),
				"updated_at":       time.Now(),
			}).
			Where(goqu.C("activity_id").Eq(activityID)).
			Executor().ExecContext(ctx); err != nil {
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
		return nil, models.NewStorageError("failed to submit rating", err)
	}

	return &rating, nil
}

// ListFeedback returns all ratings for an activity, oldest first.
func (s *ActivityStore) ListFeedback(ctx context.Context, activityID string) ([]models.Rating, error) {
	exists, err := s.activityExists(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("activity not found")
	}

	var ratings []models.Rating
	err = s.db.From("activity_rating").
		Where(goqu.C("activity_id").Eq(activityID)).
		Order(goqu.C("submitted_at").Asc()).
		ScanStructsContext(ctx, &ratings)
	if err != nil {
		log.Println(err)
		return nil, models.NewStorageError("failed to fetch activity feedback", err)
	}
	return ratings, nil
}

// GetDetail fetches an activity and its content.
func (s *ActivityStore) GetDetail(ctx context.Context, activityID string) (*models.Activity, *models.ActivityContent, error) {
	var activity models.Activity
	found, err := s.db.From("activity").
		Where(goqu.C("activity_id").Eq(activityID)).
		ScanStructContext(ctx, &activity)
	if err != nil {
		log.Println(err)
		return nil, nil, models.NewStorageError("failed to fetch activity", err)
	}
	if !found {
		return nil, nil, models.NewNotFoundError("activity not found")
	}

	var content models.ActivityContent
	found, err = s.db.From("activity_content").
		Where(goqu.C("activity_id").Eq(activityID)).
		ScanStructContext(ctx, &content)
	if err != nil {
		log.Println(err)
		return nil, nil, models.NewStorageError("failed to fetch activity content", err)
	}
	if !found {
		return nil, nil, models.NewNotFoundError("activity content not found")
	}

	return &activity, &content, nil
}

// HistoryFor lists a user's activities. Owning an activity yields exactly
// one "created" entry; joining someone else's yields "joined". An owner is
// never also reported as joined for the same activity.
func (s *ActivityStore) HistoryFor(ctx context.Context, userID string) ([]models.ActivityHistoryItem, error) {
	type historyRow struct {
		Activity_ID string    `json:"activity_id"`
		Owner_ID    string    `json:"owner_id"`
		Created_At  time.Time `json:"created_at"`
	}

	var rows []historyRow
	err := s.db.From("activity").
		Select("activity_id", "owner_id", "created_at").
		Where(goqu.Or(
			goqu.C("owner_id").Eq(userID),
			goqu.L("participants @> ARRAY[?]::text[]", userID),
		)).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		log.Println(err)
		return nil, models.NewStorageError("failed to fetch activity history", err)
	}

	items := make([]models.ActivityHistoryItem, 0, len(rows))
	for _, row := range rows {
		role := models.HistoryRoleJoined
		if row.Owner_ID == userID {
			role = models.HistoryRoleCreated
		}
		items = append(items, models.ActivityHistoryItem{
			Activity_ID: row.Activity_ID,
			Role:        role,
			Timestamp:   row.Created_At.Format(time.RFC3339),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})

	return items, nil
}

func (s *ActivityStore) activityExists(ctx context.Context, activityID string) (bool, error) {
	var count int
	if _, err := s.db.From("activity").
		Select(goqu.COUNT("*")).
		Where(goqu.C("activity_id").Eq(activityID)).
		ScanValContext(ctx, &count); err != nil {
		log.Println(err)
		return false, models.NewStorageError("failed to check activity", err)
	}
	return count > 0, nil
}
