package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-issues-backend/internal/domain"
)

// ----- Fake repo -----

type fakeIssueRepo struct {
	createCalled  bool
	createAddress string
	createType    string
	createNotes   string
	createErr     error

	getID    string
	getIssue *domain.Issue
	getErr   error

	listIssues []domain.Issue
	listErr    error

	deleteID  string
	deleteErr error
}

func (r *fakeIssueRepo) CreateIssue(ctx context.Context, db *gorm.DB, address, issueType, notes string) (*domain.Issue, error) {
	r.createCalled = true
	r.createAddress, r.createType, r.createNotes = address, issueType, notes
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &domain.Issue{ID: "i1", Address: address, Type: issueType, Notes: notes}, nil
}

func (r *fakeIssueRepo) GetIssue(ctx context.Context, db *gorm.DB, id string) (*domain.Issue, error) {
	r.getID = id
	return r.getIssue, r.getErr
}

func (r *fakeIssueRepo) ListIssues(ctx context.Context, db *gorm.DB) ([]domain.Issue, error) {
	return r.listIssues, r.listErr
}

func (r *fakeIssueRepo) DeleteIssue(ctx context.Context, db *gorm.DB, id string) error {
	r.deleteID = id
	return r.deleteErr
}

// ----- Tests -----

func TestCreate_RejectsMissingFieldsBeforeIO(t *testing.T) {
	cases := []struct {
		name    string
		address string
		typ     string
	}{
		{"empty_address", "", "pothole"},
		{"blank_address", "   ", "pothole"},
		{"empty_type", "Main St 1", ""},
		{"blank_type", "Main St 1", "\t"},
		{"both_empty", "", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := &fakeIssueRepo{}
			s := NewIssueService(nil, r, nil, nil)
			if _, err := s.Create(context.Background(), tc.address, tc.typ, "n"); !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
			if r.createCalled {
				t.Fatalf("repository must not be called for invalid input")
			}
		})
	}
}

func TestCreate_TrimsAndDelegates(t *testing.T) {
	r := &fakeIssueRepo{}
	s := NewIssueService(nil, r, nil, nil)

	issue, err := s.Create(context.Background(), "  Main St 1 ", " pothole ", "  deep  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if issue.ID != "i1" {
		t.Fatalf("expected repo-assigned id, got %q", issue.ID)
	}
	if r.createAddress != "Main St 1" || r.createType != "pothole" || r.createNotes != "deep" {
		t.Fatalf("repo got (%q, %q, %q)", r.createAddress, r.createType, r.createNotes)
	}
}

func TestCreate_NotesOptional(t *testing.T) {
	r := &fakeIssueRepo{}
	s := NewIssueService(nil, r, nil, nil)
	if _, err := s.Create(context.Background(), "Main St 1", "pothole", ""); err != nil {
		t.Fatalf("notes must be optional: %v", err)
	}
}

func TestGet_MapsNotFound(t *testing.T) {
	r := &fakeIssueRepo{getErr: gorm.ErrRecordNotFound}
	s := NewIssueService(nil, r, nil, nil)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound, got %v", err)
	}
	if r.getID != "missing" {
		t.Fatalf("repo got id %q", r.getID)
	}
}

func TestGet_PropagatesStoreFault(t *testing.T) {
	boom := errors.New("db down")
	r := &fakeIssueRepo{getErr: boom}
	s := NewIssueService(nil, r, nil, nil)
	if _, err := s.Get(context.Background(), "i1"); !errors.Is(err, boom) {
		t.Fatalf("store faults must propagate as-is, got %v", err)
	}
}

func TestList_Passthrough(t *testing.T) {
	r := &fakeIssueRepo{listIssues: []domain.Issue{{ID: "a"}, {ID: "b"}}}
	s := NewIssueService(nil, r, nil, nil)
	out, err := s.List(context.Background())
	if err != nil || len(out) != 2 {
		t.Fatalf("List = (%v, %v)", out, err)
	}
}

func TestDelete_Passthrough(t *testing.T) {
	r := &fakeIssueRepo{}
	s := NewIssueService(nil, r, nil, nil)
	if err := s.Delete(context.Background(), "i1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if r.deleteID != "i1" {
		t.Fatalf("repo got id %q", r.deleteID)
	}
}
