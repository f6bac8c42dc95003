package govstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/chainsafe/dao-indexer/pkg/governance"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new PostgreSQL-backed governance store.
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

// InsertDAO stores a DAO. An existing row keeps every non-blank column; blank
// columns are filled from dao. A reconciler row (no deploy hash) also takes
// the created_at of the first chain fact that carries one.
func (s *pgStore) InsertDAO(ctx context.Context, dao *governance.DAO) (bool, error) {
	res, err := s.db.NewInsert().
		Model(toDAODao(dao)).
		On("CONFLICT (dao_id) DO UPDATE").
		Set("name = COALESCE(NULLIF(d.name, ''), EXCLUDED.name)").
		Set("description = COALESCE(NULLIF(d.description, ''), EXCLUDED.description)").
		Set("creator = COALESCE(NULLIF(d.creator, ''), EXCLUDED.creator)").
		Set("token_address = COALESCE(NULLIF(d.token_address, ''), EXCLUDED.token_address)").
		Set("created_at = CASE WHEN d.deploy_hash = '' AND EXCLUDED.deploy_hash <> '' " +
			"THEN EXCLUDED.created_at ELSE d.created_at END").
		Set("deploy_hash = COALESCE(NULLIF(d.deploy_hash, ''), EXCLUDED.deploy_hash)").
		Where(fillsBlank("d", "name", "description", "creator", "token_address", "deploy_hash")).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert dao %s: %w", dao.DAOID, err)
	}
	return affected(res)
}

// InsertProposal stores a proposal unless (dao_id, proposal_id) already
// exists. A row without a deploy hash is a reconciler placeholder and is
// replaced by the first proposal that has one.
func (s *pgStore) InsertProposal(ctx context.Context, proposal *governance.Proposal) (bool, error) {
	res, err := s.db.NewInsert().
		Model(toProposalDao(proposal)).
		On("CONFLICT (dao_id, proposal_id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("start_time = EXCLUDED.start_time").
		Set("end_time = EXCLUDED.end_time").
		Set("deploy_hash = EXCLUDED.deploy_hash").
		Where("p.deploy_hash = '' AND EXCLUDED.deploy_hash <> ''").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert proposal %s/%s: %w", proposal.DAOID, proposal.ProposalID, err)
	}
	return affected(res)
}

// fillsBlank builds the upsert guard: true when any of columns is blank in
// the stored row and set in the incoming one.
func fillsBlank(alias string, columns ...string) string {
	conds := lo.Map(columns, func(c string, _ int) string {
		return fmt.Sprintf("(%s.%s = '' AND EXCLUDED.%s <> '')", alias, c, c)
	})
	return strings.Join(conds, " OR ")
}

// InsertVote stores a vote unless its deploy hash was already recorded.
func (s *pgStore) InsertVote(ctx context.Context, vote *governance.Vote) (bool, error) {
	res, err := s.db.NewInsert().
		Model(toVoteDao(vote)).
		On("CONFLICT (deploy_hash) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert vote %s: %w", vote.DeployHash, err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// ListDAOs returns every DAO, oldest first.
func (s *pgStore) ListDAOs(ctx context.Context) ([]*governance.DAO, error) {
	var daos []DAODao
	err := s.db.NewSelect().
		Model(&daos).
		Order("d.created_at ASC", "d.dao_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list daos: %w", err)
	}
	return lo.Map(daos, func(d DAODao, _ int) *governance.DAO { return fromDAODao(&d) }), nil
}

// GetDAO returns a single DAO or ErrDAONotFound.
func (s *pgStore) GetDAO(ctx context.Context, daoID string) (*governance.DAO, error) {
	dao := new(DAODao)
	err := s.db.NewSelect().
		Model(dao).
		Where("d.dao_id = ?", daoID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDAONotFound
		}
		return nil, fmt.Errorf("failed to get dao %s: %w", daoID, err)
	}
	return fromDAODao(dao), nil
}

type proposalTallyRow struct {
	ProposalDao `bun:",extend"`
	YesVotes    int `bun:"yes_votes"`
	NoVotes     int `bun:"no_votes"`
}

// ListProposals returns the proposals of a DAO with their vote counts.
func (s *pgStore) ListProposals(ctx context.Context, daoID string) ([]*ProposalWithTally, error) {
	var rows []proposalTallyRow
	err := s.db.NewSelect().
		Model(&rows).
		ColumnExpr("p.*").
		ColumnExpr("COUNT(v.deploy_hash) FILTER (WHERE v.choice) AS yes_votes").
		ColumnExpr("COUNT(v.deploy_hash) FILTER (WHERE NOT v.choice) AS no_votes").
		Join("LEFT JOIN votes AS v ON v.dao_id = p.dao_id AND v.proposal_id = p.proposal_id").
		Where("p.dao_id = ?", daoID).
		Group("p.dao_id", "p.proposal_id").
		Order("p.start_time ASC", "p.proposal_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals for dao %s: %w", daoID, err)
	}
	return lo.Map(rows, func(r proposalTallyRow, _ int) *ProposalWithTally {
		return &ProposalWithTally{
			Proposal: fromProposalDao(&r.ProposalDao),
			YesVotes: r.YesVotes,
			NoVotes:  r.NoVotes,
		}
	}), nil
}

// ListVotes returns the votes cast on a proposal, newest first.
func (s *pgStore) ListVotes(ctx context.Context, proposalID string, opts ...QueryOption) ([]governance.Vote, error) {
	options := &QueryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var votes []VoteDao
	q := s.db.NewSelect().
		Model(&votes).
		Where("v.proposal_id = ?", proposalID)
	if options.DAOID != nil {
		q = q.Where("v.dao_id = ?", *options.DAOID)
	}
	err := q.Order("v.timestamp DESC", "v.deploy_hash ASC").
		Limit(ClampLimit(options.Limit)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes for proposal %s: %w", proposalID, err)
	}
	return lo.Map(votes, func(v VoteDao, _ int) governance.Vote { return fromVoteDao(&v) }), nil
}

// ListAllVotes returns the most recent votes across all DAOs.
func (s *pgStore) ListAllVotes(ctx context.Context, limit int) ([]governance.Vote, error) {
	var votes []VoteDao
	err := s.db.NewSelect().
		Model(&votes).
		Order("v.timestamp DESC", "v.deploy_hash ASC").
		Limit(ClampLimit(limit)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return lo.Map(votes, func(v VoteDao, _ int) governance.Vote { return fromVoteDao(&v) }), nil
}

// GetTally counts yes and no votes of one proposal.
func (s *pgStore) GetTally(ctx context.Context, daoID, proposalID string) (*Tally, error) {
	tally := new(Tally)
	err := s.db.NewSelect().
		Model((*VoteDao)(nil)).
		ColumnExpr("COUNT(*) FILTER (WHERE v.choice)").
		ColumnExpr("COUNT(*) FILTER (WHERE NOT v.choice)").
		ColumnExpr("COUNT(*)").
		Where("v.dao_id = ?", daoID).
		Where("v.proposal_id = ?", proposalID).
		Scan(ctx, &tally.Yes, &tally.No, &tally.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to tally proposal %s/%s: %w", daoID, proposalID, err)
	}
	return tally, nil
}

// GetDAOStats summarises a DAO. A proposal is active when start_time <= now < end_time.
func (s *pgStore) GetDAOStats(ctx context.Context, daoID string, now time.Time) (*DAOStats, error) {
	stats := new(DAOStats)
	err := s.db.NewSelect().
		Model((*VoteDao)(nil)).
		ColumnExpr("COUNT(DISTINCT v.voter_address)").
		ColumnExpr("COUNT(*)").
		Where("v.dao_id = ?", daoID).
		Scan(ctx, &stats.MemberCount, &stats.TotalVotes)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes for dao %s: %w", daoID, err)
	}

	now = now.UTC()
	err = s.db.NewSelect().
		Model((*ProposalDao)(nil)).
		ColumnExpr("COUNT(*)").
		ColumnExpr("COUNT(*) FILTER (WHERE p.start_time <= ? AND p.end_time > ?)", now, now).
		Where("p.dao_id = ?", daoID).
		Scan(ctx, &stats.ProposalCount, &stats.ActiveProposals)
	if err != nil {
		return nil, fmt.Errorf("failed to count proposals for dao %s: %w", daoID, err)
	}
	return stats, nil
}

// HasVoted reports whether voterAddress cast any vote in the DAO.
func (s *pgStore) HasVoted(ctx context.Context, daoID, voterAddress string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*VoteDao)(nil)).
		Where("v.dao_id = ?", daoID).
		Where("v.voter_address = ?", voterAddress).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check vote for %s in dao %s: %w", voterAddress, daoID, err)
	}
	return exists, nil
}
