package handler

// In-memory fakes for the store interfaces. Each fake records the calls it
// receives and returns canned values, so handler tests exercise request
// parsing, validation and error mapping without a database.

import (
	"context"
	"time"

	"github.com/parsab/complaint-desk/internal/model"
	"github.com/parsab/complaint-desk/internal/repository"
)

type fakeUserStore struct {
	createErr    error
	createdID    uint64
	created      *repository.NewUser
	usersByEmail map[string]model.User
	usersByID    map[uint64]model.User
	accounts     []repository.AccountRow
	staffOptions []repository.StaffOption

	statusErr   error
	statusCalls map[uint64]string
	deleteErr   error
	deletedIDs  []uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		createdID:    1,
		usersByEmail: map[string]model.User{},
		usersByID:    map[uint64]model.User{},
		statusCalls:  map[uint64]string{},
	}
}

func (f *fakeUserStore) Create(_ context.Context, nu repository.NewUser, _ int) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = &nu
	return f.createdID, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context, _, _ string) ([]repository.AccountRow, error) {
	return f.accounts, nil
}

func (f *fakeUserStore) UpdateStaffStatus(_ context.Context, id uint64, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusCalls[id] = status
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uint64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeUserStore) AuthorizedStaff(_ context.Context) ([]repository.StaffOption, error) {
	return f.staffOptions, nil
}

type createdComplaint struct {
	userID      uint64
	subject     string
	ctype       string
	description string
	attachment  string
}

type fakeComplaintStore struct {
	createErr error
	createdID uint64
	created   *createdComplaint

	byOwner    []model.Complaint
	all        []repository.Overview
	solved     []repository.Overview
	recent     []repository.Overview
	detail     repository.Detail
	getErr     error
	lastFilter repository.Filter

	statusErr   error
	statusCalls map[uint64]string
	assignErr   error
	assignCalls map[uint64]uint64
	deleteErr   error
	deletedIDs  []uint64
}

func newFakeComplaintStore() *fakeComplaintStore {
	return &fakeComplaintStore{
		createdID:   1,
		statusCalls: map[uint64]string{},
		assignCalls: map[uint64]uint64{},
	}
}

func (f *fakeComplaintStore) Create(_ context.Context, userID uint64, subject, ctype, description, attachment string) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = &createdComplaint{userID, subject, ctype, description, attachment}
	return f.createdID, nil
}

func (f *fakeComplaintStore) ListByOwner(_ context.Context, _ uint64, _ string) ([]model.Complaint, error) {
	return f.byOwner, nil
}

func (f *fakeComplaintStore) ListAll(_ context.Context, filter repository.Filter) ([]repository.Overview, error) {
	f.lastFilter = filter
	return f.all, nil
}

func (f *fakeComplaintStore) ListSolved(_ context.Context) ([]repository.Overview, error) {
	return f.solved, nil
}

func (f *fakeComplaintStore) Recent(_ context.Context, _ int) ([]repository.Overview, error) {
	return f.recent, nil
}

func (f *fakeComplaintStore) Get(_ context.Context, _ uint64) (repository.Detail, error) {
	if f.getErr != nil {
		return repository.Detail{}, f.getErr
	}
	return f.detail, nil
}

func (f *fakeComplaintStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusCalls[id] = status
	return nil
}

func (f *fakeComplaintStore) Assign(_ context.Context, id, staffID uint64) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assignCalls[id] = staffID
	return nil
}

func (f *fakeComplaintStore) Delete(_ context.Context, id uint64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type addedComment struct {
	complaintID uint64
	adminID     uint64
	text        string
}

type fakeCommentStore struct {
	addErr error
	added  []addedComment
}

func (f *fakeCommentStore) Add(_ context.Context, complaintID, adminID uint64, text string) (uint64, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.added = append(f.added, addedComment{complaintID, adminID, text})
	return uint64(len(f.added)), nil
}

func (f *fakeCommentStore) ListByComplaint(_ context.Context, complaintID uint64) ([]repository.CommentView, error) {
	out := []repository.CommentView{}
	for i, a := range f.added {
		if a.complaintID != complaintID {
			continue
		}
		out = append(out, repository.CommentView{ID: uint64(i + 1), Comment: a.text})
	}
	return out, nil
}

type fakeStatsStore struct {
	staff     repository.StaffStats
	dashboard repository.DashboardStats
	report    repository.Report
}

func (f *fakeStatsStore) Staff(_ context.Context) (repository.StaffStats, error) {
	return f.staff, nil
}

func (f *fakeStatsStore) Dashboard(_ context.Context) (repository.DashboardStats, error) {
	return f.dashboard, nil
}

func (f *fakeStatsStore) Statistics(_ context.Context) (repository.Report, error) {
	return f.report, nil
}

func (f *fakeStatsStore) LongestOpen(_ context.Context, _, _, _ string) ([]repository.OpenComplaint, error) {
	return nil, nil
}

func (f *fakeStatsStore) RecentlyClosed(_ context.Context) ([]repository.ClosedComplaint, error) {
	return nil, nil
}

func (f *fakeStatsStore) StaffAssignment(_ context.Context) ([]repository.StaffLoad, error) {
	return nil, nil
}

type fakeRevoker struct {
	revoked []uint64
	cutoffs map[uint64]time.Time
}

func (f *fakeRevoker) Revoke(_ context.Context, userID uint64) error {
	f.revoked = append(f.revoked, userID)
	if f.cutoffs == nil {
		f.cutoffs = map[uint64]time.Time{}
	}
	f.cutoffs[userID] = time.Now()
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, userID uint64, issuedAt time.Time) bool {
	cutoff, ok := f.cutoffs[userID]
	if !ok {
		return false
	}
	return !issuedAt.After(cutoff)
}
