package refresh

import (
	"fmt"

	"github.com/harrisonrobin/classwork/pkg/model"
)

// DefaultDescription stands in for coursework posted without a description.
const DefaultDescription = "No description"

// MalformedRecordError describes a fetched item that lacks a field an
// assignment needs. Only that item is dropped.
type MalformedRecordError struct {
	CourseID     string
	CourseWorkID string
	Field        string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("course %s: coursework %s has no %s", e.CourseID, e.CourseWorkID, e.Field)
}

// build turns a pending submission into an assignment using the first
// coursework item with the submission's id. ok is false when no item in work
// matches.
func build(course model.Course, sub model.Submission, work []model.CourseWork) (a model.Assignment, ok bool, err error) {
	var cw *model.CourseWork
	for i := range work {
		if work[i].ID == sub.CourseWorkID {
			cw = &work[i]
			break
		}
	}
	if cw == nil {
		return model.Assignment{}, false, nil
	}

	malformed := func(field string) error {
		return &MalformedRecordError{CourseID: course.ID, CourseWorkID: cw.ID, Field: field}
	}
	switch {
	case cw.Title == "":
		return model.Assignment{}, true, malformed("title")
	case cw.DueDate == nil || !cw.DueDate.Valid():
		return model.Assignment{}, true, malformed("due date")
	case sub.SubmissionURL == "":
		return model.Assignment{}, true, malformed("submission link")
	}

	description := cw.Description
	if description == "" {
		description = DefaultDescription
	}
	return model.Assignment{
		Name:        cw.Title,
		Description: description,
		DueDate:     *cw.DueDate,
		Course:      course.Name,
		Attachment:  sub.AttachmentURL,
		Link:        sub.SubmissionURL,
	}, true, nil
}
