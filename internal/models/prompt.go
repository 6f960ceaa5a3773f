package models

// PromptTemplate is a fixed instruction sent alongside the job description and resume image.
type PromptTemplate string

const ReviewPrompt PromptTemplate = `
You are an experienced Technical Human Resource Manager. Your task is to review the provided resume against the job description. 
Highlight the strengths and weaknesses of the applicant in relation to the specified job requirements.
`

const MatchPrompt PromptTemplate = `
You are a skilled ATS (Applicant Tracking System) scanner. Evaluate the resume against the provided job description. 
Provide the match percentage, missing keywords, and final feedback.
`

func (p PromptTemplate) String() string {
	return string(p)
}
