package learning

import "errors"

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrProgressNotFound = errors.New("course progress not found")
)
