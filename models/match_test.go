package models

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMatchApplyResponse(t *testing.T) {
	tests := []struct {
		name             string
		match            Match
		userID           string
		response         string
		expectedMoved    bool
		expectedPending  pq.StringArray
		expectedAccepted pq.StringArray
		expectedRejected pq.StringArray
	}{
		{
			name: "accept moves the user out of pending",
			match: Match{
				Pending:  pq.StringArray{"u1", "u2"},
				Accepted: pq.StringArray{},
				Rejected: pq.StringArray{},
			},
			userID:           "u1",
			response:         MatchResponseAccept,
			expectedMoved:    true,
			expectedPending:  pq.StringArray{"u2"},
			expectedAccepted: pq.StringArray{"u1"},
			expectedRejected: pq.StringArray{},
		},
		{
			name: "reject moves the user out of pending",
			match: Match{
				Pending:  pq.StringArray{"u1"},
				Accepted: pq.StringArray{},
				Rejected: pq.StringArray{},
			},
			userID:           "u1",
			response:         MatchResponseReject,
			expectedMoved:    true,
			expectedPending:  pq.StringArray{},
			expectedAccepted: pq.StringArray{},
			expectedRejected: pq.StringArray{"u1"},
		},
		{
			name: "already accepted user is left alone",
			match: Match{
				Pending:  pq.StringArray{"u2"},
				Accepted: pq.StringArray{"u1"},
				Rejected: pq.StringArray{},
			},
			userID:           "u1",
			response:         MatchResponseReject,
			expectedMoved:    false,
			expectedPending:  pq.StringArray{"u2"},
			expectedAccepted: pq.StringArray{"u1"},
			expectedRejected: pq.StringArray{},
		},
		{
			name: "user who was never a candidate",
			match: Match{
				Pending:  pq.StringArray{"u1"},
				Accepted: pq.StringArray{},
				Rejected: pq.StringArray{},
			},
			userID:           "stranger",
			response:         MatchResponseAccept,
			expectedMoved:    false,
			expectedPending:  pq.StringArray{"u1"},
			expectedAccepted: pq.StringArray{},
			expectedRejected: pq.StringArray{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved := tt.match.ApplyResponse(tt.userID, tt.response)

			assert.Equal(t, tt.expectedMoved, moved)
			assert.Equal(t, tt.expectedPending, tt.match.Pending)
			assert.Equal(t, tt.expectedAccepted, tt.match.Accepted)
			assert.Equal(t, tt.expectedRejected, tt.match.Rejected)
		})
	}
}

func TestMatchApplyResponseSetsStayDisjoint(t *testing.T) {
	match := Match{
		Pending:  pq.StringArray{"u1", "u2", "u3"},
		Accepted: pq.StringArray{},
		Rejected: pq.StringArray{},
	}

	match.ApplyResponse("u1", MatchResponseAccept)
	match.ApplyResponse("u2", MatchResponseReject)
	match.ApplyResponse("u1", MatchResponseReject)
	match.ApplyResponse("u2", MatchResponseAccept)

	assert.Equal(t, pq.StringArray{"u3"}, match.Pending)
	assert.Equal(t, pq.StringArray{"u1"}, match.Accepted)
	assert.Equal(t, pq.StringArray{"u2"}, match.Rejected)
}
