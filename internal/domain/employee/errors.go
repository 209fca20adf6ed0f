package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrPunchCardIDExists    = errors.New("punch card ID already exists")
	ErrPunchCardIDImmutable = errors.New("punch card ID cannot be changed")
	ErrEmployeeHasRecords   = errors.New("cannot delete employee with attendance records")
)
