package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	MatchStatusMatching          = "matching"
	MatchStatusMatchingCompleted = "matching_completed"
	MatchStatusCancelled         = "cancelled"
	MatchStatusPaused            = "paused"
)

const (
	MatchResponseAccept = "accept"
	MatchResponseReject = "reject"
)

// ValidMatchAction reports whether a coordinator action is one of the two
// terminal-ish transitions reachable from matching_completed.
func ValidMatchAction(action string) bool {
	return action == MatchStatusCancelled || action == MatchStatusPaused
}

type Match struct {
	Match_ID           string         `json:"match_id"`
	Activity_ID        string         `json:"activity_id"`
	Status             string         `json:"status"`
	Matched_Candidates pq.StringArray `json:"matched_candidates"`
	Pending            pq.StringArray `json:"pending"`
	Accepted           pq.StringArray `json:"accepted"`
	Rejected           pq.StringArray `json:"rejected"`
	Updated_At         time.Time      `json:"updated_at"`
}

// ApplyResponse moves userID out of pending into accepted or rejected.
// A user not currently pending leaves membership untouched, so repeating
// the same response is a no-op. Returns true when membership changed.
func (m *Match) ApplyResponse(userID string, response string) bool {
	if !containsUser(m.Pending, userID) {
		return false
	}
	m.Pending = removeUser(m.Pending, userID)
	switch response {
	case MatchResponseAccept:
		if !containsUser(m.Accepted, userID) {
			m.Accepted = append(m.Accepted, userID)
		}
	case MatchResponseReject:
		if !containsUser(m.Rejected, userID) {
			m.Rejected = append(m.Rejected, userID)
		}
	}
	return true
}

func containsUser(set pq.StringArray, userID string) bool {
	for _, id := range set {
		if id == userID {
			return true
		}
	}
	return false
}

func removeUser(set pq.StringArray, userID string) pq.StringArray {
	out := make(pq.StringArray, 0, len(set))
	for _, id := range set {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}

type MatchHistoryEntry struct {
	Entry_ID    int       `json:"entry_id" goqu:"skipinsert"`
	Match_ID    string    `json:"match_id"`
	Action      string    `json:"action"`
	Recorded_At time.Time `json:"recorded_at"`
}

type MatchFeedback struct {
	Feedback_ID  int       `json:"feedback_id" goqu:"skipinsert"`
	Rater_ID     string    `json:"rater_id"`
	Match_ID     string    `json:"match_id"`
	Rating       float64   `json:"rating"`
	Submitted_At time.Time `json:"submitted_at"`
}

type MatchCriteria struct {
	Preferred_Tags  []string `json:"preferred_tags"`
	Location        string   `json:"location"`
	Age_Range       []int    `json:"age_range"`
	Max_Distance_KM int      `json:"max_distance_km"`
}

type MatchedCandidate struct {
	User_ID          string  `json:"user_id"`
	Similarity_Score float64 `json:"similarity_score"`
}

type MatchCandidatesRequest struct {
	User_ID     string        `json:"user_id" binding:"required"`
	Activity_ID string        `json:"activity_id"`
	Token       string        `json:"token"`
	Criteria    MatchCriteria `json:"criteria"`
}

type MatchCandidatesResponse struct {
	Activity_ID        string             `json:"activity_id"`
	Match_ID           string             `json:"match_id"`
	Matched_Candidates []MatchedCandidate `json:"matched_candidates"`
	User_Pending       []string           `json:"user_pending"`
	User_Accepted      []string           `json:"user_accepted"`
	User_Rejected      []string           `json:"user_rejected"`
	Matched_At         string             `json:"matched_at"`
	Status             string             `json:"status"`
}

type MatchRecordQueryResponse struct {
	Activity_ID        string             `json:"activity_id"`
	Match_Record_ID    string             `json:"match_record_id"`
	Matched_Candidates []MatchedCandidate `json:"matched_candidates"`
	User_Pending       []string           `json:"user_pending"`
	User_Accepted      []string           `json:"user_accepted"`
	User_Rejected      []string           `json:"user_rejected"`
	Matched_At         string             `json:"matched_at"`
	Status             string             `json:"status"`
}

type MatchFeedbackRequest struct {
	User_ID     string  `json:"user_id" binding:"required"`
	Activity_ID string  `json:"activity_id"`
	Match_ID    string  `json:"match_id" binding:"required"`
	Token       string  `json:"token"`
	Rating      float64 `json:"rating"`
}

type MatchFeedbackResponse struct {
	Activity_ID string `json:"activity_id"`
	Message     string `json:"message"`
}

type MatchStatusResponse struct {
	Activity_ID              string `json:"activity_id"`
	User_ID                  string `json:"user_id"`
	Matching_Status          string `json:"matching_status"`
	Current_Candidates_Count int    `json:"current_candidates_count"`
}

type MatchUpdateRequest struct {
	User_ID     string `json:"user_id"`
	Activity_ID string `json:"activity_id" binding:"required"`
	Token       string `json:"token"`
	Action      string `json:"action" binding:"required"`
}

type MatchUpdateResponse struct {
	Activity_ID string `json:"activity_id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

type MatchNotificationActionRequest struct {
	User_ID  string `json:"user_id" binding:"required"`
	Token    string `json:"token"`
	Match_ID string `json:"match_id" binding:"required"`
	Response string `json:"response" binding:"required"`
}

type MatchNotificationActionResponse struct {
	Match_ID string `json:"match_id"`
	Message  string `json:"message"`
}
