package ingestion

import (
	"context"
	"sync"

	"github.com/chainsafe/dao-indexer/pkg/casper"
	"github.com/chainsafe/dao-indexer/pkg/casper/node"
	"github.com/chainsafe/dao-indexer/pkg/governance"
)

// MockFetcher is a function-field fake of DeployFetcher that counts calls.
type MockFetcher struct {
	GetDeployFunc func(ctx context.Context, hash casper.Hash) (*casper.DeployInfo, error)

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) GetDeploy(ctx context.Context, hash casper.Hash) (*casper.DeployInfo, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.GetDeployFunc != nil {
		return m.GetDeployFunc(ctx, hash)
	}
	return nil, context.DeadlineExceeded
}

func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockStream replays Events once, then blocks until the context ends.
type MockStream struct {
	Events    []node.Event
	connected bool
	mu        sync.Mutex
}

func (m *MockStream) Run(ctx context.Context, handle func(node.Event)) error {
	m.mu.Lock()
	m.connected = true
	m.mu.Unlock()
	for _, ev := range m.Events {
		handle(ev)
	}
	<-ctx.Done()
	m.mu.Lock()
	m.connected = false
	m.mu.Unlock()
	return nil
}

func (m *MockStream) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// MemStore is an in-memory govstore.Writer with the same uniqueness rules as the database.
type MemStore struct {
	InsertErr error

	mu        sync.Mutex
	daos      map[string]governance.DAO
	proposals map[string]governance.Proposal
	votes     map[string]governance.Vote
}

func NewMemStore() *MemStore {
	return &MemStore{
		daos:      map[string]governance.DAO{},
		proposals: map[string]governance.Proposal{},
		votes:     map[string]governance.Vote{},
	}
}

func (m *MemStore) InsertDAO(_ context.Context, dao *governance.DAO) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return false, m.InsertErr
	}
	if existing, ok := m.daos[dao.DAOID]; ok {
		changed := false
		fill := func(dst *string, src string) {
			if *dst == "" && src != "" {
				*dst = src
				changed = true
			}
		}
		if existing.DeployHash == "" && dao.DeployHash != "" {
			existing.CreatedAt = dao.CreatedAt
		}
		fill(&existing.Name, dao.Name)
		fill(&existing.Description, dao.Description)
		fill(&existing.Creator, dao.Creator)
		fill(&existing.TokenAddress, dao.TokenAddress)
		fill(&existing.DeployHash, dao.DeployHash)
		if changed {
			m.daos[dao.DAOID] = existing
		}
		return changed, nil
	}
	m.daos[dao.DAOID] = *dao
	return true, nil
}

func (m *MemStore) InsertProposal(_ context.Context, p *governance.Proposal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return false, m.InsertErr
	}
	key := p.DAOID + "/" + p.ProposalID
	if existing, ok := m.proposals[key]; ok && (existing.DeployHash != "" || p.DeployHash == "") {
		return false, nil
	}
	m.proposals[key] = *p
	return true, nil
}

func (m *MemStore) InsertVote(_ context.Context, v *governance.Vote) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return false, m.InsertErr
	}
	if _, ok := m.votes[v.DeployHash]; ok {
		return false, nil
	}
	m.votes[v.DeployHash] = *v
	return true, nil
}

func (m *MemStore) Votes() []governance.Vote {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]governance.Vote, 0, len(m.votes))
	for _, v := range m.votes {
		out = append(out, v)
	}
	return out
}

func (m *MemStore) DAO(id string) (governance.DAO, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.daos[id]
	return d, ok
}
