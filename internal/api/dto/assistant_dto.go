package dto

// ChatRequest carries a career question for the assistant.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// ChatResponse carries the assistant's answer.
type ChatResponse struct {
	Response string `json:"response"`
}

// ResumeAnalyzeRequest carries resume text plus an optional job description.
type ResumeAnalyzeRequest struct {
	ResumeText     string `json:"resumeText" validate:"required,max=20000"`
	JobDescription string `json:"jobDescription,omitempty" validate:"max=20000"`
}

// ResumeAnalyzeResponse lists up to three suggested improvements.
type ResumeAnalyzeResponse struct {
	Improvements []string `json:"improvements"`
}
