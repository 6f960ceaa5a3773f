package models

import "image"

type BlockKind string

const (
	BlockSuccess    BlockKind = "success"
	BlockError      BlockKind = "error"
	BlockWarning    BlockKind = "warning"
	BlockEvaluation BlockKind = "evaluation"
	BlockMatch      BlockKind = "match"
	BlockWordCloud  BlockKind = "wordcloud"
)

// RenderRequest is everything one render cycle reads from the user.
type RenderRequest struct {
	JobDescription string
	Resume         []byte
	ResumeName     string
	Actions        []Action
}

func (r RenderRequest) HasResume() bool {
	return r.Resume != nil
}

// Block is one item appended to the output area.
type Block struct {
	Kind    BlockKind `json:"kind"`
	Heading string    `json:"heading,omitempty"`
	Text    string    `json:"text,omitempty"`
	// Image is a PNG payload for word-cloud blocks.
	Image []byte `json:"image,omitempty"`
	// Words is the ranked term list behind a word-cloud image.
	Words []WordCount `json:"words,omitempty"`
}

type RenderResult struct {
	CycleID string  `json:"cycle_id"`
	Blocks  []Block `json:"blocks"`
}

func (r *RenderResult) Append(b Block) {
	r.Blocks = append(r.Blocks, b)
}

// Kinds lists block kinds in output order.
func (r RenderResult) Kinds() []BlockKind {
	kinds := make([]BlockKind, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		kinds = append(kinds, b.Kind)
	}
	return kinds
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordCloud is a rendered cloud together with the frequencies it was laid out from.
type WordCloud struct {
	Image image.Image
	PNG   []byte
	Words []WordCount
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
