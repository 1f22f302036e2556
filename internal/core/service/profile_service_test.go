package service

import (
	"context"
	"errors"
	"testing"

	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func TestProfileService_CandidateUpsert(t *testing.T) {
	f := newFixture()
	svc := f.profileService()
	years := 4

	profile, err := svc.Update(context.Background(), as("cand-1"), ports.UpdateProfileInput{
		User: ports.UserDetails{Phone: strPtr("+34 600 000 000")},
		Candidate: &ports.CandidateProfileInput{
			ResumeURL:       strPtr("https://cdn.example/cv.pdf"),
			Skills:          []string{"go", "sql"},
			ExperienceYears: &years,
		},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if profile.User.Phone != "+34 600 000 000" {
		t.Fatalf("user details not updated: %+v", profile.User)
	}
	if profile.Candidate == nil || profile.Candidate.ResumeURL == "" || profile.Candidate.ExperienceYears != 4 {
		t.Fatalf("candidate profile not stored: %+v", profile.Candidate)
	}
	if profile.Recruiter != nil {
		t.Fatalf("candidate should not get a recruiter profile")
	}
}

func TestProfileService_WrongProfileKind(t *testing.T) {
	f := newFixture()
	svc := f.profileService()

	_, err := svc.Update(context.Background(), as("rec-1"), ports.UpdateProfileInput{
		Candidate: &ports.CandidateProfileInput{ResumeURL: strPtr("x")},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProfileService_RecruiterRequiresCompany(t *testing.T) {
	f := newFixture()
	svc := f.profileService()

	_, err := svc.Update(context.Background(), as("rec-1"), ports.UpdateProfileInput{
		Recruiter: &ports.RecruiterProfileInput{Industry: strPtr("fintech")},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	profile, err := svc.Update(context.Background(), as("rec-1"), ports.UpdateProfileInput{
		Recruiter: &ports.RecruiterProfileInput{CompanyName: strPtr("Acme")},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if profile.Recruiter == nil || profile.Recruiter.CompanyName != "Acme" {
		t.Fatalf("recruiter profile not stored: %+v", profile.Recruiter)
	}
}

func TestProfileService_Get_Unauthenticated(t *testing.T) {
	f := newFixture()

	if _, err := f.profileService().Get(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
