package usecase

import (
	"context"
	"testing"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBloodRequest(group, city string) *dto.CreateBloodRequestRequest {
	return &dto.CreateBloodRequestRequest{
		Name:               "Jane Roe",
		RequiredBloodGroup: group,
		City:               city,
		Phone:              "5559876543",
	}
}

func TestCreateRequest_DefaultsUrgency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	requester := f.register(t, dto.RegisterRequest{Username: "jane", UserType: "recipient"})

	created, err := f.requests.CreateRequest(ctx, requester, newBloodRequest("ab+", "Metro"))
	require.NoError(t, err)
	assert.Equal(t, "AB+", created.RequiredBloodGroup)
	assert.Equal(t, "Medium", created.UrgencyLevel)
	assert.Equal(t, requester, created.RequesterID)

	high := newBloodRequest("O-", "Metro")
	high.UrgencyLevel = "High"
	created, err = f.requests.CreateRequest(ctx, requester, high)
	require.NoError(t, err)
	assert.Equal(t, "High", created.UrgencyLevel)

	mine, err := f.requests.GetMyRequests(ctx, requester)
	require.NoError(t, err)
	require.Equal(t, 2, mine.Count)
	assert.Equal(t, "O-", mine.Requests[0].RequiredBloodGroup, "newest first")
}

func TestListRequests_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	requester := f.register(t, dto.RegisterRequest{Username: "jane", UserType: "recipient"})

	for _, r := range []*dto.CreateBloodRequestRequest{
		newBloodRequest("A+", "Metro"),
		newBloodRequest("A+", "Gotham"),
		newBloodRequest("B-", "Metro"),
	} {
		_, err := f.requests.CreateRequest(ctx, requester, r)
		require.NoError(t, err)
	}

	result, err := f.requests.ListRequests(ctx, &entity.RequestFilter{BloodGroup: entity.BloodGroupAPos})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	result, err = f.requests.ListRequests(ctx, &entity.RequestFilter{BloodGroup: entity.BloodGroupAPos, City: "metro"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Metro", result.Requests[0].City)
}

func TestCancelRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, dto.RegisterRequest{Username: "jane", UserType: "recipient"})
	other := f.register(t, dto.RegisterRequest{Username: "john", UserType: "recipient"})

	created, err := f.requests.CreateRequest(ctx, owner, newBloodRequest("A+", "Metro"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.requests.CancelRequest(ctx, other, created.ID), ErrBloodRequestNotOwned)
	assert.ErrorIs(t, f.requests.CancelRequest(ctx, owner, uuid.New()), ErrBloodRequestNotFound)

	require.NoError(t, f.requests.CancelRequest(ctx, owner, created.ID))
	_, err = f.requests.GetRequest(ctx, created.ID)
	assert.ErrorIs(t, err, ErrBloodRequestNotFound)
}
