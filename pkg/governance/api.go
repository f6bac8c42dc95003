package governance

import "time"

// DAOListResponse is the body of GET /daos.
type DAOListResponse struct {
	DAOs []DAO `json:"daos"`
}

// ProposalView is a proposal with its derived status and tally.
type ProposalView struct {
	ProposalID  string    `json:"proposal_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      Status    `json:"status"`
	YesVotes    int       `json:"yes_votes"`
	NoVotes     int       `json:"no_votes"`
	DeployHash  string    `json:"deploy_hash"`
}

// ProposalListResponse is the body of GET /proposals/{daoId}.
type ProposalListResponse struct {
	Proposals []ProposalView `json:"proposals"`
}

// VoteListResponse is the body of the vote listings.
type VoteListResponse struct {
	Votes []Vote `json:"votes"`
}

// TallyResponse is the body of GET /stats/{daoId}/{proposalId}.
type TallyResponse struct {
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Total int `json:"total"`
}

// DAOStatsResponse is the body of GET /dao-stats/{daoId}.
type DAOStatsResponse struct {
	MemberCount     int `json:"memberCount"`
	TotalVotes      int `json:"totalVotes"`
	ProposalCount   int `json:"proposalCount"`
	ActiveProposals int `json:"activeProposals"`
}

// HasVotedResponse is the body of GET /has-voted/{daoId}/{voterAddress}.
type HasVotedResponse struct {
	HasVoted bool `json:"hasVoted"`
}

// CreateDAORequest asks the backend to sign and submit create_dao.
type CreateDAORequest struct {
	DAOName       string `json:"daoName" validate:"required,max=100"`
	Description   string `json:"description" validate:"max=1000"`
	UserPublicKey string `json:"userPublicKey"`
}

// CreateProposalRequest is used by both the backend-signed and the
// prepare flow for create_proposal.
type CreateProposalRequest struct {
	DAOID            string `json:"daoId" validate:"required"`
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description" validate:"max=5000"`
	VotingDurationMs uint64 `json:"votingDurationMs"`
	UserPublicKey    string `json:"userPublicKey"`
}

// VoteRequest is used by both the backend-signed and the prepare flow for vote.
type VoteRequest struct {
	DAOID         string `json:"daoId" validate:"required"`
	ProposalID    string `json:"proposalId"`
	Choice        *bool  `json:"choice" validate:"required"`
	UserPublicKey string `json:"userPublicKey"`
}

// SubmitResponse is returned by the backend-signed create operations.
type SubmitResponse struct {
	DeployHash string `json:"deployHash"`
	Creator    string `json:"creator,omitzero"`
	Voter      string `json:"voter,omitzero"`
}

// PrepareResponse carries an unsigned deploy for external signing.
type PrepareResponse struct {
	DeployJSON string `json:"deployJson"`
}

// SubmitSignedResponse is returned by POST /submit-signed-deploy.
type SubmitSignedResponse struct {
	DeployHash string `json:"deployHash"`
	Message    string `json:"message"`
}

// ExtractDAOIDResponse is returned by GET /extract-dao-id/{deployHash}.
type ExtractDAOIDResponse struct {
	DAOID      string `json:"daoId"`
	DeployHash string `json:"deployHash"`
	Message    string `json:"message"`
}
