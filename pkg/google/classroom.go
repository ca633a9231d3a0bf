package google

import (
	"context"
	"time"

	"github.com/harrisonrobin/classwork/pkg/model"
	"google.golang.org/api/classroom/v1"
)

const (
	courseFields     = "nextPageToken,courses(id,name)"
	courseWorkFields = "nextPageToken,courseWork(id,title,description,dueDate)"
	submissionFields = "nextPageToken,studentSubmissions(courseWorkId,alternateLink,assignmentSubmission/attachments)"
)

// Submission states that mean the work has not been turned in yet.
var pendingStates = []string{"CREATED", "RECLAIMED_BY_STUDENT"}

// ClassroomClient is a typed facade over the three Classroom list calls the
// refresh needs. Every list call follows page tokens to the end.
type ClassroomClient struct {
	srv     *classroom.Service
	timeout time.Duration
}

// NewClassroomClient wraps srv. A positive timeout bounds each list call,
// including all of its pages.
func NewClassroomClient(srv *classroom.Service, timeout time.Duration) *ClassroomClient {
	return &ClassroomClient{srv: srv, timeout: timeout}
}

func (c *ClassroomClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// ListActiveCourses returns the active courses the user is a student in.
func (c *ClassroomClient) ListActiveCourses(ctx context.Context) ([]model.Course, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var courses []model.Course
	err := c.srv.Courses.List().
		CourseStates("ACTIVE").
		StudentId("me").
		Fields(courseFields).
		Pages(ctx, func(resp *classroom.ListCoursesResponse) error {
			for _, course := range resp.Courses {
				if course == nil {
					continue
				}
				courses = append(courses, model.Course{ID: course.Id, Name: course.Name})
			}
			return nil
		})
	if err != nil {
		return nil, remoteError("list courses", "", err)
	}
	return courses, nil
}

// ListCourseWork returns the course's coursework ordered by due date,
// earliest first.
func (c *ClassroomClient) ListCourseWork(ctx context.Context, courseID string) ([]model.CourseWork, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var work []model.CourseWork
	err := c.srv.Courses.CourseWork.List(courseID).
		OrderBy("dueDate asc").
		Fields(courseWorkFields).
		Pages(ctx, func(resp *classroom.ListCourseWorkResponse) error {
			for _, cw := range resp.CourseWork {
				if cw == nil {
					continue
				}
				work = append(work, courseWorkFromAPI(cw))
			}
			return nil
		})
	if err != nil {
		return nil, remoteError("list coursework", courseID, err)
	}
	return work, nil
}

// ListSubmissions returns the user's submissions in courseID that have not
// been turned in.
func (c *ClassroomClient) ListSubmissions(ctx context.Context, courseID string) ([]model.Submission, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	var subs []model.Submission
	err := c.srv.Courses.CourseWork.StudentSubmissions.List(courseID, "-").
		UserId("me").
		States(pendingStates...).
		Fields(submissionFields).
		Pages(ctx, func(resp *classroom.ListStudentSubmissionsResponse) error {
			for _, s := range resp.StudentSubmissions {
				if s == nil {
					continue
				}
				subs = append(subs, submissionFromAPI(s))
			}
			return nil
		})
	if err != nil {
		return nil, remoteError("list submissions", courseID, err)
	}
	return subs, nil
}

func courseWorkFromAPI(cw *classroom.CourseWork) model.CourseWork {
	work := model.CourseWork{
		ID:          cw.Id,
		Title:       cw.Title,
		Description: cw.Description,
	}
	if d := cw.DueDate; d != nil {
		work.DueDate = &model.Date{Year: int(d.Year), Month: int(d.Month), Day: int(d.Day)}
	}
	return work
}

func submissionFromAPI(s *classroom.StudentSubmission) model.Submission {
	sub := model.Submission{
		CourseWorkID:  s.CourseWorkId,
		SubmissionURL: s.AlternateLink,
	}
	if s.AssignmentSubmission != nil && len(s.AssignmentSubmission.Attachments) > 0 {
		sub.AttachmentURL = attachmentURL(s.AssignmentSubmission.Attachments[0])
	}
	return sub
}

// attachmentURL returns the link of whatever kind of attachment a is.
func attachmentURL(a *classroom.Attachment) string {
	switch {
	case a == nil:
		return ""
	case a.DriveFile != nil:
		return a.DriveFile.AlternateLink
	case a.Link != nil:
		return a.Link.Url
	case a.YouTubeVideo != nil:
		return a.YouTubeVideo.AlternateLink
	case a.Form != nil:
		return a.Form.FormUrl
	}
	return ""
}
