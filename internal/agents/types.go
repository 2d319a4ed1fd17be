package agents

// AgentType enumerates the pipeline roles.
type AgentType string

const (
	AgentSearch      AgentType = "search"
	AgentWriter      AgentType = "writer"
	AgentSeoReviewer AgentType = "seo_reviewer"
)

// Agent names as they appear in hand-off targets and run events.
const (
	NameSearchAgent      = "SearchAgent"
	NameWritePostAgent   = "WritePostAgent"
	NameSeoReviewerAgent = "SeoReviewerAgent"
)
