package parser

// LeadingCommentField provides leading comment support for statements.
// It is embedded in statement structs and filled from the comment trivia
// that precedes the statement's first token.
type LeadingCommentField struct {
	LeadingComments []string
}

// GetLeadingComments returns the leading comments.
func (c *LeadingCommentField) GetLeadingComments() []string {
	return c.LeadingComments
}

// CommentAccessor is implemented by all statement types.
type CommentAccessor interface {
	GetLeadingComments() []string
}

func (c *LeadingCommentField) setLeadingComments(comments []string) {
	c.LeadingComments = comments
}
