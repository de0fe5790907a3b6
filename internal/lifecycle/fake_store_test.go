package lifecycle

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bountyboard/bountyboard-backend/pkg/datastore"
	"github.com/bountyboard/bountyboard-backend/pkg/types"
)

// fakeStore is an in-memory datastore with the same conditional transition semantics as postgres
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	bounties map[int64]types.Bounty
	requests map[string]types.Request
	events   []types.ReputationEvent
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bounties: map[int64]types.Bounty{},
		requests: map[string]types.Request{},
	}
}

func (s *fakeStore) Bounty() datastore.BountyRepository   { return fakeBounties{s} }
func (s *fakeStore) Request() datastore.RequestRepository { return fakeRequests{s} }
func (s *fakeStore) Outbox() datastore.OutboxRepository   { return fakeOutbox{s} }
func (s *fakeStore) HealthCheck(context.Context) error    { return s.failWith }
func (s *fakeStore) Close()                               {}

func (s *fakeStore) request(id string) types.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id]
}

type fakeBounties struct{ s *fakeStore }

func (f fakeBounties) Create(_ context.Context, bounty *types.Bounty) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return f.s.failWith
	}
	f.s.nextID++
	bounty.ID = f.s.nextID
	bounty.CreatedAt = time.Now()
	f.s.bounties[bounty.ID] = *bounty
	return nil
}

func (f fakeBounties) GetByID(_ context.Context, id int64) (*types.Bounty, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	bounty, ok := f.s.bounties[id]
	if !ok {
		return nil, nil
	}
	return &bounty, nil
}

func (f fakeBounties) List(_ context.Context) ([]types.Bounty, error) {
	return f.filter(func(types.Bounty) bool { return true })
}

func (f fakeBounties) ListByCreator(_ context.Context, creator string) ([]types.Bounty, error) {
	return f.filter(func(b types.Bounty) bool { return b.CreatorAddress == creator })
}

func (f fakeBounties) filter(keep func(types.Bounty) bool) ([]types.Bounty, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []types.Bounty
	for _, b := range f.s.bounties {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeRequests struct{ s *fakeStore }

func (f fakeRequests) Create(_ context.Context, request *types.Request) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return f.s.failWith
	}
	request.ID = uuid.NewString()
	request.Status = types.RequestStatusPending
	request.CreatedAt = time.Now()
	stored := *request
	stored.Bounty = nil
	f.s.requests[request.ID] = stored
	return nil
}

func (f fakeRequests) joined(r types.Request) *types.Request {
	if b, ok := f.s.bounties[r.BountyID]; ok {
		r.Bounty = &b
	}
	return &r
}

func (f fakeRequests) GetByID(_ context.Context, id string) (*types.Request, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	r, ok := f.s.requests[id]
	if !ok {
		return nil, nil
	}
	return f.joined(r), nil
}

func (f fakeRequests) filter(keep func(types.Request) bool) ([]types.Request, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []types.Request
	for _, r := range f.s.requests {
		if keep(r) {
			out = append(out, *f.joined(r))
		}
	}
	return out, nil
}

func (f fakeRequests) List(context.Context) ([]types.Request, error) {
	return f.filter(func(types.Request) bool { return true })
}

func (f fakeRequests) ListByBounty(_ context.Context, bountyID int64) ([]types.Request, error) {
	return f.filter(func(r types.Request) bool { return r.BountyID == bountyID })
}

func (f fakeRequests) ListBySupporter(_ context.Context, supporter string) ([]types.Request, error) {
	return f.filter(func(r types.Request) bool { return r.SupporterAddress == supporter })
}

func (f fakeRequests) ListByCreator(_ context.Context, creator string) ([]types.Request, error) {
	return f.filter(func(r types.Request) bool { return f.s.bounties[r.BountyID].CreatorAddress == creator })
}

func (f fakeRequests) Transition(_ context.Context, id string, from, to types.RequestStatus, fields datastore.TransitionFields) (*types.Request, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return nil, f.s.failWith
	}
	r, ok := f.s.requests[id]
	if !ok || r.Status != from {
		return nil, datastore.ErrTransitionConflict
	}
	r.Status = to
	if fields.FulfilledCID != nil {
		cid := *fields.FulfilledCID
		r.FulfilledCID = &cid
	}
	if fields.TxHash != nil {
		hash := *fields.TxHash
		r.TxHash = &hash
	}
	r.UpdatedAt = time.Now()
	f.s.requests[id] = r
	return f.joined(r), nil
}

type fakeOutbox struct{ s *fakeStore }

func (f fakeOutbox) Create(_ context.Context, event *types.ReputationEvent) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failWith != nil {
		return f.s.failWith
	}
	event.ID = uuid.NewString()
	f.s.events = append(f.s.events, *event)
	return nil
}

func (f fakeOutbox) ListPending(context.Context, int, int) ([]types.ReputationEvent, error) {
	return nil, errors.New("not used")
}

func (f fakeOutbox) CountPending(context.Context, int) (int64, error) {
	return 0, errors.New("not used")
}

func (f fakeOutbox) MarkDelivered(context.Context, string, string) error { return errors.New("not used") }
func (f fakeOutbox) MarkFailed(context.Context, string, string) error    { return errors.New("not used") }
