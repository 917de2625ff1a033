package domain

// WebSearchArgs is the body of the web_search handler.
type WebSearchArgs struct {
	Query string `json:"query" jsonschema:"required,minLength=1"`
}
