package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/repository"
)

// ── 基于 map 的内存 Repository，供 Service 单元测试使用 ──

func newMockRepo() *repository.Repository {
	users := &mockUserRepo{users: map[string]*model.User{}}
	jobs := &mockJobRepo{jobs: map[string]*model.Job{}, users: users.users}
	apps := &mockApplicationRepo{apps: map[string]*model.Application{}, jobs: jobs}
	return &repository.Repository{
		User:        users,
		Job:         jobs,
		Application: apps,
	}
}

// ── 用户 ──

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if filters.Keyword != "" {
				kw := strings.ToLower(filters.Keyword)
				if !strings.Contains(strings.ToLower(u.FirstName), kw) &&
					!strings.Contains(strings.ToLower(u.LastName), kw) &&
					!strings.Contains(strings.ToLower(u.Email), kw) {
					continue
				}
			}
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].UserID < matched[j].UserID })
	total := int64(len(matched))
	return paginate(matched, offset, limit), total, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *mockUserRepo) CountByActive(_ context.Context, active bool) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.IsActive == active {
			n++
		}
	}
	return n, nil
}

// ── 职位 ──

type mockJobRepo struct {
	jobs  map[string]*model.Job
	users map[string]*model.User // 可选：Preload Recruiter 用
}

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	cp := *job
	m.jobs[job.JobID] = &cp
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id string) (*model.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *j
	if m.users != nil {
		if r, ok := m.users[j.RecruiterID]; ok {
			rc := *r
			cp.Recruiter = &rc
		}
	}
	return &cp, nil
}

func (m *mockJobRepo) Update(_ context.Context, job *model.Job) error {
	if _, ok := m.jobs[job.JobID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *job
	m.jobs[job.JobID] = &cp
	return nil
}

func (m *mockJobRepo) Delete(_ context.Context, id string) error {
	delete(m.jobs, id)
	return nil
}

func (m *mockJobRepo) List(_ context.Context, filters *repository.JobListFilters, offset, limit int) ([]model.Job, int64, error) {
	var matched []model.Job
	for _, j := range m.jobs {
		if filters != nil {
			if filters.Status != "" && j.Status != filters.Status {
				continue
			}
			if filters.JobType != "" && j.JobType != filters.JobType {
				continue
			}
			if filters.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(filters.Location)) {
				continue
			}
			if filters.RecruiterID != "" && j.RecruiterID != filters.RecruiterID {
				continue
			}
			if filters.Search != "" {
				kw := strings.ToLower(filters.Search)
				if !strings.Contains(strings.ToLower(j.Title), kw) &&
					!strings.Contains(strings.ToLower(j.Description), kw) &&
					!strings.Contains(strings.ToLower(j.Requirements), kw) {
					continue
				}
			}
		}
		matched = append(matched, *j)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].JobID < matched[j].JobID })
	total := int64(len(matched))
	return paginate(matched, offset, limit), total, nil
}

func (m *mockJobRepo) ListIDsByRecruiter(_ context.Context, recruiterID string) ([]string, error) {
	var ids []string
	for _, j := range m.jobs {
		if j.RecruiterID == recruiterID {
			ids = append(ids, j.JobID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockJobRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.jobs)), nil
}

func (m *mockJobRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, j := range m.jobs {
		if j.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockJobRepo) CountByRecruiter(_ context.Context, recruiterID string) (int64, error) {
	var n int64
	for _, j := range m.jobs {
		if j.RecruiterID == recruiterID {
			n++
		}
	}
	return n, nil
}

func (m *mockJobRepo) CountGroupedByType(_ context.Context) (map[string]int64, error) {
	result := map[string]int64{}
	for _, j := range m.jobs {
		result[j.JobType]++
	}
	return result, nil
}

// ── 申请 ──

type mockApplicationRepo struct {
	apps map[string]*model.Application
	jobs *mockJobRepo // 可选：Preload Job 用
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	for _, a := range m.apps {
		if a.StudentID == app.StudentID && a.JobID == app.JobID {
			return gorm.ErrDuplicatedKey
		}
	}
	if app.ApplicationID == "" {
		app.ApplicationID = uuid.New().String()
	}
	cp := *app
	m.apps[app.ApplicationID] = &cp
	return nil
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	m.preloadJob(ctx, &cp)
	return &cp, nil
}

func (m *mockApplicationRepo) GetByStudentAndJob(_ context.Context, studentID, jobID string) (*model.Application, error) {
	for _, a := range m.apps {
		if a.StudentID == studentID && a.JobID == jobID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) Update(_ context.Context, app *model.Application) error {
	if _, ok := m.apps[app.ApplicationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *app
	cp.Job = nil
	cp.Student = nil
	m.apps[app.ApplicationID] = &cp
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, id string) error {
	delete(m.apps, id)
	return nil
}

func (m *mockApplicationRepo) List(ctx context.Context, filters *repository.ApplicationListFilters, offset, limit int) ([]model.Application, int64, error) {
	var matched []model.Application
	for _, a := range m.apps {
		if filters != nil {
			if filters.Status != "" && a.Status != filters.Status {
				continue
			}
			if filters.JobID != "" && a.JobID != filters.JobID {
				continue
			}
			if filters.StudentID != "" && a.StudentID != filters.StudentID {
				continue
			}
			if filters.JobIDs != nil && !containsID(filters.JobIDs, a.JobID) {
				continue
			}
		}
		cp := *a
		m.preloadJob(ctx, &cp)
		matched = append(matched, cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ApplicationID < matched[j].ApplicationID })
	total := int64(len(matched))
	return paginate(matched, offset, limit), total, nil
}

func (m *mockApplicationRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Application, error) {
	var matched []model.Application
	for _, a := range m.apps {
		if a.StudentID == studentID {
			cp := *a
			m.preloadJob(ctx, &cp)
			matched = append(matched, cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ApplicationID < matched[j].ApplicationID })
	return matched, nil
}

func (m *mockApplicationRepo) ListByJob(_ context.Context, jobID string) ([]model.Application, error) {
	var matched []model.Application
	for _, a := range m.apps {
		if a.JobID == jobID {
			matched = append(matched, *a)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ApplicationID < matched[j].ApplicationID })
	return matched, nil
}

func (m *mockApplicationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.apps)), nil
}

func (m *mockApplicationRepo) CountByStudent(_ context.Context, studentID string) (int64, error) {
	var n int64
	for _, a := range m.apps {
		if a.StudentID == studentID {
			n++
		}
	}
	return n, nil
}

func (m *mockApplicationRepo) CountByJobIDs(_ context.Context, jobIDs []string, status string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var n int64
	for _, a := range m.apps {
		if !containsID(jobIDs, a.JobID) {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		n++
	}
	return n, nil
}

func (m *mockApplicationRepo) CountGroupedByStatus(_ context.Context) (map[string]int64, error) {
	result := map[string]int64{}
	for _, a := range m.apps {
		result[a.Status]++
	}
	return result, nil
}

func (m *mockApplicationRepo) preloadJob(ctx context.Context, app *model.Application) {
	if m.jobs == nil {
		return
	}
	if j, err := m.jobs.GetByID(ctx, app.JobID); err == nil {
		app.Job = j
	}
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
