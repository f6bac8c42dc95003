package govstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/dao-indexer/pkg/governance"
)

// DAODao maps to the 'daos' table.
type DAODao struct {
	bun.BaseModel `bun:"table:daos,alias:d"`
	DAOID         string    `bun:"dao_id,pk,type:varchar(128)"`
	Name          string    `bun:"name,notnull,default:'',type:text"`
	Description   string    `bun:"description,notnull,default:'',type:text"`
	Creator       string    `bun:"creator,notnull,default:'',type:varchar(68)"`
	TokenAddress  string    `bun:"token_address,notnull,default:'',type:varchar(128)"`
	DeployHash    string    `bun:"deploy_hash,notnull,type:varchar(64)"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

// ProposalDao maps to the 'proposals' table. (dao_id, proposal_id) is unique.
type ProposalDao struct {
	bun.BaseModel `bun:"table:proposals,alias:p"`
	DAOID         string    `bun:"dao_id,pk,type:varchar(128)"`
	ProposalID    string    `bun:"proposal_id,pk,type:varchar(128)"`
	Title         string    `bun:"title,notnull,default:'',type:text"`
	Description   string    `bun:"description,notnull,default:'',type:text"`
	StartTime     time.Time `bun:"start_time,notnull"`
	EndTime       time.Time `bun:"end_time,notnull"`
	DeployHash    string    `bun:"deploy_hash,notnull,type:varchar(64)"`
}

// VoteDao maps to the 'votes' table. A deploy casts at most one vote.
type VoteDao struct {
	bun.BaseModel `bun:"table:votes,alias:v"`
	DeployHash    string    `bun:"deploy_hash,pk,type:varchar(64)"`
	DAOID         string    `bun:"dao_id,notnull,type:varchar(128)"`
	ProposalID    string    `bun:"proposal_id,notnull,type:varchar(128)"`
	VoterAddress  string    `bun:"voter_address,notnull,type:varchar(68)"`
	Choice        bool      `bun:"choice,notnull"`
	Timestamp     time.Time `bun:"timestamp,notnull"`
}

func toDAODao(d *governance.DAO) *DAODao {
	return &DAODao{
		DAOID:        d.DAOID,
		Name:         d.Name,
		Description:  d.Description,
		Creator:      d.Creator,
		TokenAddress: d.TokenAddress,
		DeployHash:   d.DeployHash,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func fromDAODao(dao *DAODao) *governance.DAO {
	return &governance.DAO{
		DAOID:        dao.DAOID,
		Name:         dao.Name,
		Description:  dao.Description,
		Creator:      dao.Creator,
		TokenAddress: dao.TokenAddress,
		DeployHash:   dao.DeployHash,
		CreatedAt:    dao.CreatedAt.UTC(),
	}
}

func toProposalDao(p *governance.Proposal) *ProposalDao {
	return &ProposalDao{
		DAOID:       p.DAOID,
		ProposalID:  p.ProposalID,
		Title:       p.Title,
		Description: p.Description,
		StartTime:   p.StartTime.UTC(),
		EndTime:     p.EndTime.UTC(),
		DeployHash:  p.DeployHash,
	}
}

func fromProposalDao(dao *ProposalDao) governance.Proposal {
	return governance.Proposal{
		DAOID:       dao.DAOID,
		ProposalID:  dao.ProposalID,
		Title:       dao.Title,
		Description: dao.Description,
		StartTime:   dao.StartTime.UTC(),
		EndTime:     dao.EndTime.UTC(),
		DeployHash:  dao.DeployHash,
	}
}

func toVoteDao(v *governance.Vote) *VoteDao {
	return &VoteDao{
		DeployHash:   v.DeployHash,
		DAOID:        v.DAOID,
		ProposalID:   v.ProposalID,
		VoterAddress: v.VoterAddress,
		Choice:       v.Choice,
		Timestamp:    v.Timestamp.UTC(),
	}
}

func fromVoteDao(dao *VoteDao) governance.Vote {
	return governance.Vote{
		DeployHash:   dao.DeployHash,
		DAOID:        dao.DAOID,
		ProposalID:   dao.ProposalID,
		VoterAddress: dao.VoterAddress,
		Choice:       dao.Choice,
		Timestamp:    dao.Timestamp.UTC(),
	}
}
