package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/GatherMatch/models"
)

func TestActivityStoreCreate(t *testing.T) {
	tests := []struct {
		name           string
		status         string
		budget         int
		contentFails   bool
		expectedKind   models.ErrorKind
		expectedStatus string
	}{
		{
			name:           "default status is deciding",
			status:         "",
			expectedStatus: models.ActivityStatusDeciding,
		},
		{
			name:           "explicit initial status is kept",
			status:         models.ActivityStatusPendingReview,
			expectedStatus: models.ActivityStatusPendingReview,
		},
		{
			name:         "unknown status is rejected",
			status:       "unreviewed",
			expectedKind: models.ErrorValidation,
		},
		{
			name:         "negative budget is rejected",
			budget:       -50,
			expectedKind: models.ErrorValidation,
		},
		{
			name:         "content insert failure rolls everything back",
			contentFails: true,
			expectedKind: models.ErrorStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newTestDB(t)
			defer cleanup()

			if tt.expectedKind != models.ErrorValidation {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO "activity"`).WillReturnResult(sqlmock.NewResult(0, 1))
				if tt.contentFails {
					mock.ExpectExec(`INSERT INTO "activity_content"`).WillReturnError(errors.New("disk full"))
					mock.ExpectRollback()
				} else {
					mock.ExpectExec(`INSERT INTO "activity_content"`).WillReturnResult(sqlmock.NewResult(1, 1))
					mock.ExpectCommit()
				}
			}

			store := NewActivityStore(db)
			content := models.ActivityContent{
				Title:      "Lakeside hike",
				Start_Time: time.Now().Add(48 * time.Hour),
				Budget:     tt.budget,
			}

			activity, err := store.Create(context.Background(), "u1", tt.status, content)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.True(t, models.IsKind(err, tt.expectedKind))
				assert.Nil(t, activity)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "u1", activity.Owner_ID)
			assert.Equal(t, tt.expectedStatus, activity.Status)
			assert.Equal(t, pq.StringArray{"u1"}, activity.Participants)
			assert.NotEmpty(t, activity.Activity_ID)
			assert.False(t, activity.Updated_At.Before(activity.Created_At))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestActivityStoreUpdate(t *testing.T) {
	now := time.Now()
	title := "Sunrise photo walk"
	badStart := "yesterday morning"
	goodStart := now.Add(72 * time.Hour).Format(time.RFC3339)
	status := models.ActivityStatusPendingReview

	tests := []struct {
		name         string
		req          models.ActivityUpdateRequest
		exists       bool
		noSQL        bool
		expectedKind models.ErrorKind
	}{
		{
			name:   "partial update touches only supplied fields",
			req:    models.ActivityUpdateRequest{Activity_ID: "a1", Activity_Title: &title, Start_Time: &goodStart},
			exists: true,
		},
		{
			name:   "status-only update still refreshes updated_at",
			req:    models.ActivityUpdateRequest{Activity_ID: "a1", Status: &status},
			exists: true,
		},
		{
			name:         "unknown activity",
			req:          models.ActivityUpdateRequest{Activity_ID: "missing", Activity_Title: &title},
			exists:       false,
			expectedKind: models.ErrorNotFound,
		},
		{
			name:         "unparsable start time",
			req:          models.ActivityUpdateRequest{Activity_ID: "a1", Start_Time: &badStart},
			noSQL:        true,
			expectedKind: models.ErrorValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newTestDB(t)
			defer cleanup()

			if !tt.noSQL {
				mock.ExpectBegin()
				if tt.exists {
					rows := sqlmock.NewRows(activityColumns).
						AddRow("a1", "u1", "{u1}", models.ActivityStatusDeciding, now, now, nil, "{}")
					mock.ExpectQuery("SELECT").WillReturnRows(rows)
					if tt.req.Activity_Title != nil || tt.req.Start_Time != nil {
						mock.ExpectExec(`UPDATE "activity_content"`).WillReturnResult(sqlmock.NewResult(0, 1))
					}
					mock.ExpectExec(`UPDATE "activity"`).WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectCommit()
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(activityColumns))
					mock.ExpectRollback()
				}
			}

			store := NewActivityStore(db)
			activity, err := store.Update(context.Background(), tt.req)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.True(t, models.IsKind(err, tt.expectedKind))
				return
			}

			assert.NoError(t, err)
			assert.True(t, activity.Updated_At.After(now))
			if tt.req.Status != nil {
				assert.Equal(t, *tt.req.Status, activity.Status)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestActivityStoreSubmitRating(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		activityFound bool
		alreadyRated  bool
		expectedKind  models.ErrorKind
	}{
		{
			name:          "first rating succeeds and refreshes aggregate",
			activityFound: true,
		},
		{
			name:          "second rating from same rater is rejected",
			activityFound: true,
			alreadyRated:  true,
			expectedKind:  models.ErrorDuplicate,
		},
		{
			name:         "unknown activity",
			expectedKind: models.ErrorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newTestDB(t)
			defer cleanup()

			mock.ExpectBegin()
			if tt.activityFound {
				rows := sqlmock.NewRows(activityColumns).
					AddRow("a1", "u1", "{u1}", models.ActivityStatusCompleted, now, now, nil, "{}")
				mock.ExpectQuery("SELECT").WillReturnRows(rows)

				existing := 0
				if tt.alreadyRated {
					existing = 1
				}
				mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(existing))

				if !tt.alreadyRated {
					mock.ExpectExec(`INSERT INTO "activity_rating"`).WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.25))
					mock.ExpectExec(`UPDATE "activity"`).WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectCommit()
				} else {
					mock.ExpectRollback()
				}
			} else {
				mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(activityColumns))
				mock.ExpectRollback()
			}

			store := NewActivityStore(db)
			rating, err := store.SubmitRating(context.Background(), "a1", "u2", 4.5, "great trip")

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.True(t, models.IsKind(err, tt.expectedKind))
				assert.Nil(t, rating)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "a1", rating.Activity_ID)
			assert.Equal(t, "u2", rating.Rater_ID)
			assert.Equal(t, 4.5, rating.Rating)
			assert.NotEmpty(t, rating.Rating_ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestActivityStoreListFeedback(t *testing.T) {
	now := time.Now()

	t.Run("ratings come back oldest first", func(t *testing.T) {
		db, mock, cleanup := newTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		ratingRows := sqlmock.NewRows([]string{"rating_id", "activity_id", "rater_id", "rating", "comment", "submitted_at"}).
			AddRow("r1", "a1", "u2", 4.0, "good", now.Add(-time.Hour)).
			AddRow("r2", "a1", "u3", 5.0, "great", now)
		mock.ExpectQuery("SELECT").WillReturnRows(ratingRows)

		store := NewActivityStore(db)
		ratings, err := store.ListFeedback(context.Background(), "a1")

		assert.NoError(t, err)
		assert.Len(t, ratings, 2)
		assert.Equal(t, "r1", ratings[0].Rating_ID)
		assert.Equal(t, "r2", ratings[1].Rating_ID)
	})

	t.Run("unknown activity", func(t *testing.T) {
		db, mock, cleanup := newTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		store := NewActivityStore(db)
		_, err := store.ListFeedback(context.Background(), "missing")

		assert.True(t, models.IsKind(err, models.ErrorNotFound))
	})
}

func TestActivityStoreHistoryFor(t *testing.T) {
	now := time.Now()

	db, mock, cleanup := newTestDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"activity_id", "owner_id", "created_at"}).
		AddRow("a1", "u1", now.Add(-2*time.Hour)).
		AddRow("a2", "u9", now.Add(-time.Hour)).
		AddRow("a3", "u1", now)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	store := NewActivityStore(db)
	history, err := store.HistoryFor(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Len(t, history, 3)

	roles := map[string]string{}
	for _, item := range history {
		roles[item.Activity_ID] = item.Role
	}
	// owner relation wins; only non-owned participation counts as joined
	assert.Equal(t, models.HistoryRoleCreated, roles["a1"])
	assert.Equal(t, models.HistoryRoleJoined, roles["a2"])
	assert.Equal(t, models.HistoryRoleCreated, roles["a3"])

	// newest first
	assert.Equal(t, "a3", history[0].Activity_ID)
}
