package client

import (
	"context"
	"testing"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		target   Target
		group    string
		location string
		wantErr  error
		want     SearchQuery
	}{
		{name: "empty group", target: TargetDonors, group: "", wantErr: ErrMissingBloodGroup},
		{name: "blank group", target: TargetBanks, group: "   ", location: "Metro", wantErr: ErrMissingBloodGroup},
		{name: "unknown group", target: TargetDonors, group: "C+", wantErr: entity.ErrInvalidBloodGroup},
		{name: "bad target", target: "hospital", group: "A+", wantErr: ErrInvalidTarget},
		{
			name: "normalized", target: TargetDonors, group: " o- ", location: "  New York ",
			want: SearchQuery{Target: TargetDonors, BloodGroup: entity.BloodGroupONeg, Location: "New York"},
		},
		{
			name: "location optional", target: TargetBanks, group: "AB+",
			want: SearchQuery{Target: TargetBanks, BloodGroup: entity.BloodGroupABPos},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildQuery(tt.target, tt.group, tt.location)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchQuery_KeyIgnoresLocation(t *testing.T) {
	a, err := BuildQuery(TargetDonors, "O-", "Metro")
	require.NoError(t, err)
	b, err := BuildQuery(TargetDonors, "O-", "Gotham")
	require.NoError(t, err)
	c, err := BuildQuery(TargetBanks, "O-", "Metro")
	require.NoError(t, err)

	assert.Equal(t, "donor|O-", a.Key())
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestCriteriaModel(t *testing.T) {
	m := NewCriteriaModel()
	assert.Equal(t, TargetDonors, m.Target())

	_, err := m.Submit("", "Metro")
	require.ErrorIs(t, err, ErrMissingBloodGroup)
	assert.ErrorIs(t, m.Err(), ErrMissingBloodGroup)

	require.NoError(t, m.SetTarget(TargetBanks))
	q, err := m.Submit("B+", "")
	require.NoError(t, err)
	assert.Equal(t, TargetBanks, q.Target)
	assert.NoError(t, m.Err())

	assert.ErrorIs(t, m.SetTarget("clinic"), ErrInvalidTarget)
	assert.Equal(t, TargetBanks, m.Target())
}

func TestClientSearch_MissingGroupIssuesNoRequest(t *testing.T) {
	searcher := &fakeSearcher{}
	c := &Client{Criteria: NewCriteriaModel(), Matcher: NewMatcher(searcher, nopLogger())}

	_, err := c.Search(context.Background(), "", "Metro")
	require.ErrorIs(t, err, ErrMissingBloodGroup)
	assert.Zero(t, searcher.calls.Load())
}
