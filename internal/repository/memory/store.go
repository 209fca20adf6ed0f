// Package memory is an in-process implementation of the repositories. It
// enforces the same uniqueness and reference rules as the PostgreSQL schema.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/admin"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/serverroom"
	"github.com/google/uuid"
)

type Store struct {
	mu          sync.Mutex
	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	actions     map[string]serverroom.Action
	admins      map[string]admin.Admin
	jobs        map[string]job.ScheduledJob
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:   make(map[string]employee.Employee),
		attendances: make(map[string]attendance.Attendance),
		actions:     make(map[string]serverroom.Action),
		admins:      make(map[string]admin.Admin),
		jobs:        make(map[string]job.ScheduledJob),
		now:         time.Now,
	}
}

// SetClock replaces the clock used for created_at and updated_at.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Employees() employee.EmployeeRepository { return &employeeRepo{s} }

func (s *Store) Attendances() attendance.AttendanceRepository { return &attendanceRepo{s} }

func (s *Store) ServerRoomActions() serverroom.ServerRoomActionRepository { return &serverRoomRepo{s} }

func (s *Store) Admins() admin.AdminRepository { return &adminRepo{s} }

func (s *Store) Jobs() job.ScheduledJobRepository { return &jobRepo{s} }

// WithinTransaction runs fn directly. Every repository call is atomic on its own.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// AllAttendances returns a snapshot ordered by check-in.
func (s *Store) AllAttendances() []attendance.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]attendance.Attendance, 0, len(s.attendances))
	for _, a := range s.attendances {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out
}

// AllJobs returns a snapshot of the scheduled jobs.
func (s *Store) AllJobs() []job.ScheduledJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]job.ScheduledJob, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunAt.Before(out[j].RunAt) })
	return out
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *Store) employeeInfo(id string) *attendance.EmployeeInfo {
	e, ok := s.employees[id]
	if !ok {
		return nil
	}
	return &attendance.EmployeeInfo{ID: e.ID, PunchCardID: e.PunchCardID, Name: e.Name, Department: e.Department}
}

func cloneAttendance(a attendance.Attendance) attendance.Attendance {
	if a.CheckOut != nil {
		t := *a.CheckOut
		a.CheckOut = &t
	}
	if a.CheckOutLocation != nil {
		l := *a.CheckOutLocation
		a.CheckOutLocation = &l
	}
	if a.Duration != nil {
		d := *a.Duration
		a.Duration = &d
	}
	a.Employee = nil
	return a
}

// ========================================
// Employees
// ========================================

type employeeRepo struct{ s *Store }

func (r *employeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.employees {
		if existing.PunchCardID == e.PunchCardID {
			return employee.Employee{}, employee.ErrPunchCardIDExists
		}
	}
	now := r.s.now()
	e.ID = newID()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.employees[e.ID] = e
	return e, nil
}

func (r *employeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepo) GetByPunchCardID(_ context.Context, punchCardID string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.PunchCardID == punchCardID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *employeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.employees[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	existing.Name = e.Name
	existing.Department = e.Department
	existing.UpdatedAt = r.s.now()
	r.s.employees[e.ID] = existing
	return existing, nil
}

func (r *employeeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	for _, a := range r.s.attendances {
		if a.EmployeeID == id {
			return employee.ErrEmployeeHasRecords
		}
	}
	for _, a := range r.s.actions {
		if a.EmployeeID == id {
			return employee.ErrEmployeeHasRecords
		}
	}
	delete(r.s.employees, id)
	return nil
}

// ========================================
// Attendances
// ========================================

type attendanceRepo struct{ s *Store }

func (r *attendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.attendances {
		if existing.EmployeeID == a.EmployeeID && existing.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	now := r.s.now()
	a = cloneAttendance(a)
	a.ID = newID()
	a.CheckOut, a.CheckOutLocation, a.Duration = nil, nil, nil
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.attendances[a.ID] = a
	return a, nil
}

func (r *attendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return cloneAttendance(a), nil
}

func (r *attendanceRepo) GetOpenSession(_ context.Context, employeeID string) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *attendance.Attendance
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && a.IsOpen() && (found == nil || a.CheckIn.After(found.CheckIn)) {
			c := cloneAttendance(a)
			found = &c
		}
	}
	return found, nil
}

func (r *attendanceRepo) GetLatestByEmployee(_ context.Context, employeeID string) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *attendance.Attendance
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && (found == nil || a.CheckIn.After(found.CheckIn)) {
			c := cloneAttendance(a)
			found = &c
		}
	}
	if found != nil {
		found.Employee = r.s.employeeInfo(employeeID)
	}
	return found, nil
}

func (r *attendanceRepo) CountViolatedSessions(_ context.Context, employeeID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && a.ViolationCount > 0 {
			n++
		}
	}
	return n, nil
}

func (r *attendanceRepo) CloseSession(_ context.Context, p attendance.CloseSessionParams) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attendances[p.ID]
	if !ok || !a.IsOpen() {
		return attendance.Attendance{}, attendance.ErrSessionAlreadyClosed
	}
	checkOut, location, duration := p.CheckOut, p.CheckOutLocation, p.Duration
	a.CheckOut = &checkOut
	a.CheckOutLocation = &location
	a.Duration = &duration
	a.ViolationCount += p.ViolationIncrement
	a.UpdatedAt = r.s.now()
	r.s.attendances[a.ID] = a
	return cloneAttendance(a), nil
}

func (r *attendanceRepo) ResetViolations(_ context.Context, employeeID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, a := range r.s.attendances {
		if a.EmployeeID == employeeID && a.ViolationCount > 0 {
			a.ViolationCount = 0
			a.UpdatedAt = r.s.now()
			r.s.attendances[id] = a
			n++
		}
	}
	return n, nil
}

func (r *attendanceRepo) List(_ context.Context, f attendance.ListFilter) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]attendance.Attendance, 0)
	for _, a := range r.s.attendances {
		if f.EmployeeID != nil && a.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.From != nil && a.CheckIn.Before(*f.From) {
			continue
		}
		if f.To != nil && !a.CheckIn.Before(*f.To) {
			continue
		}
		if f.Location != nil && !strings.Contains(strings.ToLower(a.CheckInLocation), strings.ToLower(*f.Location)) {
			continue
		}
		c := cloneAttendance(a)
		c.Employee = r.s.employeeInfo(a.EmployeeID)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].ID > out[j].ID
		}
		return out[i].CheckIn.After(out[j].CheckIn)
	})
	return out, nil
}

func (r *attendanceRepo) ListByCheckInRange(_ context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]attendance.Attendance, 0)
	for _, a := range r.s.attendances {
		if a.CheckIn.Before(from) || !a.CheckIn.Before(to) {
			continue
		}
		c := cloneAttendance(a)
		c.Employee = r.s.employeeInfo(a.EmployeeID)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].ID < out[j].ID
		}
		return out[i].CheckIn.Before(out[j].CheckIn)
	})
	return out, nil
}

// ========================================
// Server room actions
// ========================================

type serverRoomRepo struct{ s *Store }

func (r *serverRoomRepo) Create(_ context.Context, a serverroom.Action) (serverroom.Action, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[a.EmployeeID]; !ok {
		return serverroom.Action{}, serverroom.ErrEmployeeNotFound
	}
	a.ID = newID()
	a.CreatedAt = r.s.now()
	r.s.actions[a.ID] = a
	return a, nil
}

func (r *serverRoomRepo) ListWithSessions(_ context.Context, serverRoomLocation string) ([]serverroom.ActionWithSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]serverroom.ActionWithSession, 0, len(r.s.actions))
	for _, a := range r.s.actions {
		row := serverroom.ActionWithSession{Action: a}
		if e, ok := r.s.employees[a.EmployeeID]; ok {
			row.EmployeeName = e.Name
			row.PunchCardID = e.PunchCardID
		}
		var match *attendance.Attendance
		for _, att := range r.s.attendances {
			if att.EmployeeID != a.EmployeeID || att.CheckInLocation != serverRoomLocation || att.CheckIn.After(a.CreatedAt) {
				continue
			}
			if match == nil || att.CheckIn.After(match.CheckIn) {
				c := cloneAttendance(att)
				match = &c
			}
		}
		if match != nil {
			checkIn := match.CheckIn
			row.CheckIn = &checkIn
			row.CheckOut = match.CheckOut
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ========================================
// Admins
// ========================================

type adminRepo struct{ s *Store }

func (r *adminRepo) Create(_ context.Context, a admin.Admin) (admin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if existing.Username == a.Username {
			return admin.Admin{}, admin.ErrUsernameExists
		}
	}
	now := r.s.now()
	a.ID = newID()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.admins[a.ID] = a
	return a, nil
}

func (r *adminRepo) GetByUsername(_ context.Context, username string) (admin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return admin.Admin{}, admin.ErrAdminNotFound
}

func (r *adminRepo) GetByID(_ context.Context, id string) (admin.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return admin.Admin{}, admin.ErrAdminNotFound
	}
	return a, nil
}

// ========================================
// Scheduled jobs
// ========================================

type jobRepo struct{ s *Store }

func (r *jobRepo) Enqueue(_ context.Context, j job.ScheduledJob) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.jobs {
		if existing.Kind == j.Kind && existing.AttendanceID == j.AttendanceID {
			return nil
		}
	}
	now := r.s.now()
	j.ID = newID()
	j.Status = job.StatusPending
	j.Attempts = 0
	j.CreatedAt, j.UpdatedAt = now, now
	r.s.jobs[j.ID] = j
	return nil
}

func (r *jobRepo) ClaimDue(_ context.Context, now time.Time, staleBefore time.Time, limit int) ([]job.ScheduledJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	due := make([]job.ScheduledJob, 0)
	for _, j := range r.s.jobs {
		pendingDue := j.Status == job.StatusPending && !j.RunAt.After(now)
		stale := j.Status == job.StatusRunning && j.LockedAt != nil && j.LockedAt.Before(staleBefore)
		if pendingDue || stale {
			due = append(due, j)
		}
	}
	sort.Slice(due, func(a, b int) bool { return due[a].RunAt.Before(due[b].RunAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	for i := range due {
		lockedAt := now
		due[i].Status = job.StatusRunning
		due[i].Attempts++
		due[i].LockedAt = &lockedAt
		due[i].UpdatedAt = r.s.now()
		r.s.jobs[due[i].ID] = due[i]
	}
	return due, nil
}

func (r *jobRepo) MarkDone(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if j, ok := r.s.jobs[id]; ok {
		j.Status = job.StatusDone
		j.LockedAt = nil
		j.LastError = nil
		r.s.jobs[id] = j
	}
	return nil
}

func (r *jobRepo) MarkFailed(_ context.Context, id string, errMsg string, retryAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil
	}
	j.LastError = &errMsg
	j.LockedAt = nil
	if retryAt != nil {
		j.Status = job.StatusPending
		j.RunAt = *retryAt
	} else {
		j.Status = job.StatusFailed
	}
	r.s.jobs[id] = j
	return nil
}

func (r *jobRepo) CancelForAttendance(_ context.Context, attendanceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, j := range r.s.jobs {
		if j.AttendanceID == attendanceID && j.Status == job.StatusPending {
			j.Status = job.StatusCancelled
			r.s.jobs[id] = j
		}
	}
	return nil
}
