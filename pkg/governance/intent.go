package governance

// Operation names a user-facing write against the DAO contract.
type Operation string

const (
	OperationCreateDAO      Operation = "create_dao"
	OperationCreateProposal Operation = "create_proposal"
	OperationVote           Operation = "vote"
	OperationSubmitSigned   Operation = "submit_signed"
)

// Intent carries what the submitter knew about a deploy before it executed.
// It is merged into the facts extracted for the same deploy hash.
type Intent struct {
	Operation   Operation
	Name        string
	Title       string
	Description string
	// Creator and Voter name the user a backend-signed deploy acted for.
	Creator string
	Voter   string
}

// Apply merges the intent into facts extracted for its deploy.
// Identifiers always come from the chain. Free text only fills blanks.
// Creator and Voter replace the signing account.
func (in *Intent) Apply(facts Facts) Facts {
	if in == nil {
		return facts
	}

	for i := range facts.DAOs {
		d := &facts.DAOs[i]
		if d.Name == "" {
			d.Name = in.Name
		}
		if d.Description == "" {
			d.Description = in.Description
		}
		if in.Creator != "" {
			d.Creator = in.Creator
		}
	}

	for i := range facts.Proposals {
		p := &facts.Proposals[i]
		if p.Title == "" {
			p.Title = in.Title
		}
		if p.Description == "" {
			p.Description = in.Description
		}
	}

	if in.Voter != "" {
		for i := range facts.Votes {
			facts.Votes[i].VoterAddress = in.Voter
		}
	}

	return facts
}
