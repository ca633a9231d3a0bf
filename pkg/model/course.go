package model

// Course is an active Classroom course the user is enrolled in as a student.
type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourseWork is one assignment definition as reported by the remote service.
// DueDate is nil when none was set.
type CourseWork struct {
	ID          string
	Title       string
	Description string
	DueDate     *Date
}

// Submission is the user's own, not yet turned in, submission for a CourseWork.
type Submission struct {
	CourseWorkID  string
	AttachmentURL string // empty when nothing is attached
	SubmissionURL string
}
