package usecase

import (
	"context"
	"testing"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyAuditLogs_OwnActionsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.register(t, dto.RegisterRequest{Username: "jane", UserType: "recipient"})
	f.register(t, dto.RegisterRequest{Username: "john", UserType: "recipient"})

	created, err := f.requests.CreateRequest(ctx, jane, newBloodRequest("A+", "Metro"))
	require.NoError(t, err)
	require.NoError(t, f.requests.CancelRequest(ctx, jane, created.ID))

	logs, err := f.audit.GetMyAuditLogs(ctx, jane)
	require.NoError(t, err)
	require.Equal(t, 3, logs.Total)

	actions := make([]string, 0, len(logs.Logs))
	for _, l := range logs.Logs {
		actions = append(actions, l.Action)
	}
	assert.Equal(t, []string{
		entity.AuditActionRequestCancel,
		entity.AuditActionRequestCreate,
		entity.AuditActionUserRegister,
	}, actions)
}
