package service

import (
	"time"

	"campus-recruit/backend/internal/dto"
	"campus-recruit/backend/internal/model"
)

// ── 模型 → 响应 DTO 转换 ──

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:        u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func toJobResponse(j *model.Job) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:                  j.JobID,
		Title:               j.Title,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Location:            j.Location,
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		JobType:             j.JobType,
		Status:              j.Status,
		RecruiterID:         j.RecruiterID,
		OpenForApplications: j.IsOpenForApplications(),
		CreatedAt:           j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           j.UpdatedAt.Format(time.RFC3339),
		Recruiter:           toUserBrief(j.Recruiter),
	}
	if j.ApplicationDeadline != nil {
		s := j.ApplicationDeadline.Format(time.RFC3339)
		resp.ApplicationDeadline = &s
	}
	return resp
}

func toJobBrief(j *model.Job) *dto.JobBrief {
	if j == nil {
		return nil
	}
	return &dto.JobBrief{
		ID:          j.JobID,
		Title:       j.Title,
		Location:    j.Location,
		JobType:     j.JobType,
		RecruiterID: j.RecruiterID,
		Recruiter:   toUserBrief(j.Recruiter),
	}
}

func toApplicationResponse(a *model.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:          a.ApplicationID,
		StudentID:   a.StudentID,
		JobID:       a.JobID,
		Status:      a.Status,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Notes:       a.Notes,
		AppliedAt:   a.AppliedAt.Format(time.RFC3339),
		Job:         toJobBrief(a.Job),
		Student:     toUserBrief(a.Student),
	}
	if a.ReviewedAt != nil {
		s := a.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &s
	}
	return resp
}
