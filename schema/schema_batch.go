package schema

// BatchFailure records a document that could not be analyzed.
type BatchFailure struct {
	Line  int    `json:"line"` // 1-based position in the input
	Text  string `json:"text"`
	Error string `json:"error"`
}

// BatchOutput is the outcome of analyzing a list of documents.
type BatchOutput struct {
	Analyses []CommentAnalysis `json:"analyses"`
	Failures []BatchFailure    `json:"failures"`
}

// FetchOutput is the batch analyzed from a single API URL.
type FetchOutput struct {
	APIURL string `json:"apiUrl"`
	BatchOutput
}
