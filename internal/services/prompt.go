package services

import (
	"alfredoptarigan/ats-resume-expert/internal/models"
)

// aiAction describes how a resume-based action is sent to the model and shown.
type aiAction struct {
	prompt  models.PromptTemplate
	heading string
	kind    models.BlockKind
}

var aiActions = map[models.Action]aiAction{
	models.ActionEvaluateResume: {
		prompt:  models.ReviewPrompt,
		heading: "Resume Evaluation:",
		kind:    models.BlockEvaluation,
	},
	models.ActionPercentageMatch: {
		prompt:  models.MatchPrompt,
		heading: "Percentage Match Results:",
		kind:    models.BlockMatch,
	},
}

// PromptFor returns the template an action sends, if it sends one.
func PromptFor(action models.Action) (models.PromptTemplate, bool) {
	a, ok := aiActions[action]
	return a.prompt, ok
}

const (
	wordCloudHeading   = "Job Description Word Cloud:"
	uploadSuccessText  = "Resume uploaded successfully!"
	missingResumeText  = "Please upload a resume to proceed."
	processPDFErrorFmt = "Error processing PDF: %v"
	generateErrorFmt   = "Error generating response: %v"
	wordCloudErrorFmt  = "Error generating word cloud: %v"
)
