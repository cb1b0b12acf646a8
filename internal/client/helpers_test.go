package client

import (
	"context"
	"io"
	"sync/atomic"

	"nearest-blood-locator/internal/delivery/dto"

	"github.com/sirupsen/logrus"
)

func nopLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeSearcher answers searches from fixed lists. When gate is set the first
// donor search blocks until gate is closed, after signalling entered.
type fakeSearcher struct {
	donors []dto.DonorResponse
	banks  []dto.BloodBankResponse
	err    error
	// firstErr fails only the first donor search.
	firstErr error

	entered chan struct{}
	gate    chan struct{}
	calls   atomic.Int32

	lastDonorQuery DonorQuery
}

func (f *fakeSearcher) SearchDonors(ctx context.Context, q DonorQuery) ([]dto.DonorResponse, error) {
	n := f.calls.Add(1)
	f.lastDonorQuery = q
	if n == 1 && f.gate != nil {
		close(f.entered)
		<-f.gate
	}
	if n == 1 && f.firstErr != nil {
		return nil, f.firstErr
	}
	return f.donors, f.err
}

func (f *fakeSearcher) SearchBanks(ctx context.Context, bloodGroup, city string) ([]dto.BloodBankResponse, error) {
	f.calls.Add(1)
	return f.banks, f.err
}

type staticSession struct {
	loading  bool
	identity *Identity
}

func (s staticSession) Loading() bool { return s.loading }

func (s staticSession) Identity() (Identity, bool) {
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s staticSession) IsAuthenticated() bool { return s.identity != nil }
