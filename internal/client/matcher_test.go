package client

import (
	"context"
	"errors"
	"testing"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDonors() []dto.DonorResponse {
	return []dto.DonorResponse{
		{ID: uuid.New(), FullName: "Alice", BloodGroup: "O-", Location: "New York", AvailabilityStatus: "Available"},
		{ID: uuid.New(), FullName: "Bob", BloodGroup: "A+", Location: "Newark", AvailabilityStatus: "Available"},
		{ID: uuid.New(), FullName: "Carol", BloodGroup: "O-", Location: "Boston", AvailabilityStatus: "Not Available"},
		{ID: uuid.New(), FullName: "Dan", BloodGroup: "B-", Location: "new york", AvailabilityStatus: "Available"},
	}
}

func TestFilterDonors_ByGroupOnly(t *testing.T) {
	donors := sampleDonors()
	for _, group := range entity.BloodGroups {
		got := FilterDonors(donors, LocalFilter{BloodGroup: group})
		for _, d := range got {
			assert.Equal(t, group.String(), d.BloodGroup)
		}
	}

	got := FilterDonors(donors, LocalFilter{BloodGroup: entity.BloodGroupONeg})
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].FullName)
	assert.Equal(t, "Carol", got[1].FullName)
}

func TestFilterDonors_CaseInsensitiveText(t *testing.T) {
	donors := sampleDonors()

	for _, text := range []string{"new", "NEW", "New York", "  nEw yOrK "} {
		got := FilterDonors(donors, LocalFilter{Text: text})
		names := make([]string, 0, len(got))
		for _, d := range got {
			names = append(names, d.FullName)
		}
		assert.Contains(t, names, "Alice", text)
		assert.Contains(t, names, "Dan", text)
		assert.NotContains(t, names, "Carol", text)
	}

	got := FilterDonors(donors, LocalFilter{Text: "bob"})
	require.Len(t, got, 1)
	assert.Equal(t, "Newark", got[0].Location)

	assert.Len(t, FilterDonors(donors, LocalFilter{}), len(donors))
}

func TestFilterBanks(t *testing.T) {
	banks := []dto.BloodBankResponse{
		{Name: "City Blood Bank", City: "Metro", AvailableBloodGroups: []string{"A+", "O-"}},
		{Name: "Harbor Bank", City: "Gotham", AvailableBloodGroups: []string{"B+"}},
	}

	got := FilterBanks(banks, LocalFilter{BloodGroup: entity.BloodGroupONeg})
	require.Len(t, got, 1)
	assert.Equal(t, "City Blood Bank", got[0].Name)

	got = FilterBanks(banks, LocalFilter{Text: "GOTH"})
	require.Len(t, got, 1)
	assert.Equal(t, "Harbor Bank", got[0].Name)

	assert.Empty(t, FilterBanks(banks, LocalFilter{Text: "metro", BloodGroup: entity.BloodGroupBPos}))
}

func TestMatcherSearch_AnnotatesCandidates(t *testing.T) {
	searcher := &fakeSearcher{
		donors: sampleDonors()[:1],
		banks:  []dto.BloodBankResponse{{ID: uuid.New(), Name: "City Blood Bank", City: "Metro", ContactNumber: "5550001111", StockStatus: "Low"}},
	}
	m := NewMatcher(searcher, nopLogger())
	ctx := context.Background()

	q, err := BuildQuery(TargetDonors, "O-", "new")
	require.NoError(t, err)
	result, err := m.Search(ctx, q)
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	c := result.Candidates[0]
	assert.Equal(t, TargetDonors, c.Kind)
	assert.Equal(t, "Alice", c.Label)
	assert.Equal(t, entity.BloodGroupONeg, c.MatchedGroup)
	assert.NotNil(t, c.Donor)
	assert.Nil(t, c.Bank)
	assert.Equal(t, DonorQuery{BloodGroup: "O-", Location: "new"}, searcher.lastDonorQuery)

	q, err = BuildQuery(TargetBanks, "O-", "")
	require.NoError(t, err)
	result, err = m.Search(ctx, q)
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "Low", result.Candidates[0].Status)
	assert.NotNil(t, result.Candidates[0].Bank)
}

func TestMatcherSearch_EmptyIsNotAnError(t *testing.T) {
	m := NewMatcher(&fakeSearcher{}, nopLogger())
	q, err := BuildQuery(TargetDonors, "AB-", "")
	require.NoError(t, err)

	result, err := m.Search(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestMatcherSearch_WrapsFailure(t *testing.T) {
	cause := &APIError{StatusCode: 500, Message: "boom"}
	m := NewMatcher(&fakeSearcher{err: cause}, nopLogger())
	q, err := BuildQuery(TargetBanks, "A+", "")
	require.NoError(t, err)

	_, err = m.Search(context.Background(), q)
	require.ErrorIs(t, err, ErrSearchFailed)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "boom", apiErr.Message)
}

func TestMatcherSearch_DiscardsStaleResponse(t *testing.T) {
	searcher := &fakeSearcher{
		donors:  sampleDonors(),
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
	m := NewMatcher(searcher, nopLogger())
	q, err := BuildQuery(TargetDonors, "O-", "")
	require.NoError(t, err)

	type outcome struct {
		result *SearchResult
		err    error
	}
	first := make(chan outcome, 1)
	go func() {
		r, err := m.Search(context.Background(), q)
		first <- outcome{r, err}
	}()
	<-searcher.entered

	second, err := m.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, len(sampleDonors()), second.Len())

	close(searcher.gate)
	got := <-first
	assert.ErrorIs(t, got.err, ErrStaleResponse)
	assert.Nil(t, got.result)
}

func TestMatcherSearch_StaleFailureIsNotReported(t *testing.T) {
	searcher := &fakeSearcher{
		donors:   sampleDonors(),
		firstErr: &APIError{StatusCode: 500, Message: "boom"},
		entered:  make(chan struct{}),
		gate:     make(chan struct{}),
	}
	m := NewMatcher(searcher, nopLogger())
	q, err := BuildQuery(TargetDonors, "O-", "")
	require.NoError(t, err)

	first := make(chan error, 1)
	go func() {
		_, err := m.Search(context.Background(), q)
		first <- err
	}()
	<-searcher.entered

	second, err := m.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, len(sampleDonors()), second.Len())

	close(searcher.gate)
	err = <-first
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.NotErrorIs(t, err, ErrSearchFailed)
}

func TestSequencer(t *testing.T) {
	s := NewSequencer()
	a1 := s.Next("a")
	b1 := s.Next("b")
	a2 := s.Next("a")

	assert.False(t, s.IsLatest("a", a1))
	assert.True(t, s.IsLatest("a", a2))
	assert.True(t, s.IsLatest("b", b1))
}
