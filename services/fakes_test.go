package services

import (
	"context"
	"time"

	"undangan.link/models"
	"undangan.link/pkg/queryparams"
	"undangan.link/repositories"
)

// In-memory repository fakes. They implement just enough of the real
// Postgres-backed behavior for the service rules under test, including
// the counter side effects of the transactional composites.

type fakeUserRepo struct {
	users     map[uint]*models.User
	loginLogs []models.LoginLog
	nextID    uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) add(user models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
	}
	if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = &user
	return &user
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) FindAllPaginated(_ context.Context, params queryparams.ListParams) ([]models.User, int64, error) {
	params.Validate()
	var all []models.User
	for _, user := range f.users {
		if params.Status != "" && string(user.Status) != params.Status {
			continue
		}
		all = append(all, *user)
	}
	total := int64(len(all))
	offset := params.CalculateOffset()
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + params.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeUserRepo) FindByStatus(_ context.Context, status models.UserStatus) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if user.Status == status {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Approve(_ context.Context, id, approverID uint, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Status = models.UserStatusActive
	user.ApprovedBy = &approverID
	user.ApprovedAt = &at
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.LastLogin = &at
	return nil
}

func (f *fakeUserRepo) CreateLoginLog(_ context.Context, log *models.LoginLog) error {
	f.loginLogs = append(f.loginLogs, *log)
	return nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context) ([]repositories.RoleCount, error) {
	counts := map[models.UserRole]int64{}
	for _, user := range f.users {
		counts[user.Role]++
	}
	var out []repositories.RoleCount
	for role, count := range counts {
		out = append(out, repositories.RoleCount{Role: role, Count: count})
	}
	return out, nil
}

func (f *fakeUserRepo) CountByStatus(_ context.Context, status models.UserStatus) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeInvitationRepo struct {
	invitations map[uint]*models.Invitation
	nextID      uint
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: map[uint]*models.Invitation{}, nextID: 1}
}

func (f *fakeInvitationRepo) add(invitation models.Invitation) *models.Invitation {
	if invitation.ID == 0 {
		invitation.ID = f.nextID
	}
	if invitation.ID >= f.nextID {
		f.nextID = invitation.ID + 1
	}
	f.invitations[invitation.ID] = &invitation
	return &invitation
}

func (f *fakeInvitationRepo) Create(_ context.Context, invitation *models.Invitation) error {
	invitation.ID = f.nextID
	f.nextID++
	stored := *invitation
	f.invitations[invitation.ID] = &stored
	return nil
}

func (f *fakeInvitationRepo) FindByID(_ context.Context, id uint) (*models.Invitation, error) {
	invitation, ok := f.invitations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *invitation
	return &copied, nil
}

func (f *fakeInvitationRepo) FindBySlug(_ context.Context, slug string) (*models.Invitation, error) {
	for _, invitation := range f.invitations {
		if invitation.Slug == slug {
			copied := *invitation
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInvitationRepo) SlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	for _, invitation := range f.invitations {
		if invitation.Slug == slug && invitation.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInvitationRepo) FindPublished(_ context.Context) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, invitation := range f.invitations {
		if invitation.Status == models.InvitationStatusPublished {
			out = append(out, *invitation)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) FindAll(_ context.Context) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, invitation := range f.invitations {
		out = append(out, *invitation)
	}
	return out, nil
}

func (f *fakeInvitationRepo) FindByUserID(_ context.Context, userID uint) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, invitation := range f.invitations {
		if invitation.UserID == userID {
			out = append(out, *invitation)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) FindPublishedBySlugForView(_ context.Context, slug string) (*models.Invitation, error) {
	for _, invitation := range f.invitations {
		if invitation.Slug == slug && invitation.Status == models.InvitationStatusPublished {
			invitation.ViewCount++
			copied := *invitation
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInvitationRepo) Update(_ context.Context, invitation *models.Invitation) error {
	if _, ok := f.invitations[invitation.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *invitation
	f.invitations[invitation.ID] = &stored
	return nil
}

func (f *fakeInvitationRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	if _, ok := f.invitations[id]; !ok {
		return repositories.ErrNotFound
	}
	return nil
}

func (f *fakeInvitationRepo) DeleteCascade(_ context.Context, id, userID uint) error {
	invitation, ok := f.invitations[id]
	if !ok || invitation.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(f.invitations, id)
	return nil
}

func (f *fakeInvitationRepo) Stats(_ context.Context, userID uint) (*repositories.InvitationStats, error) {
	stats := &repositories.InvitationStats{}
	for _, invitation := range f.invitations {
		if userID != 0 && invitation.UserID != userID {
			continue
		}
		stats.TotalInvitations++
		switch invitation.Status {
		case models.InvitationStatusPublished:
			stats.PublishedCount++
		case models.InvitationStatusDraft:
			stats.DraftCount++
		}
		stats.TotalViews += invitation.ViewCount
		stats.TotalRSVPs += invitation.RSVPCount
	}
	return stats, nil
}

type fakeTemplateRepo struct {
	templates map[uint]*models.Template
	nextID    uint
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[uint]*models.Template{}, nextID: 1}
}

func (f *fakeTemplateRepo) add(template models.Template) *models.Template {
	if template.ID == 0 {
		template.ID = f.nextID
	}
	if template.ID >= f.nextID {
		f.nextID = template.ID + 1
	}
	f.templates[template.ID] = &template
	return &template
}

func (f *fakeTemplateRepo) Create(_ context.Context, template *models.Template) error {
	template.ID = f.nextID
	f.nextID++
	stored := *template
	f.templates[template.ID] = &stored
	return nil
}

func (f *fakeTemplateRepo) FindByID(_ context.Context, id uint) (*models.Template, error) {
	template, ok := f.templates[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *template
	return &copied, nil
}

func (f *fakeTemplateRepo) FindActive(_ context.Context) ([]models.Template, error) {
	var out []models.Template
	for _, template := range f.templates {
		if template.IsActive {
			out = append(out, *template)
		}
	}
	return out, nil
}

func (f *fakeTemplateRepo) FindActiveByCategory(_ context.Context, category models.TemplateCategory) ([]models.Template, error) {
	var out []models.Template
	for _, template := range f.templates {
		if template.IsActive && template.Category == category {
			out = append(out, *template)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	payments map[uint]*models.Payment
	nextID   uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uint]*models.Payment{}, nextID: 1}
}

func (f *fakePaymentRepo) add(payment models.Payment) *models.Payment {
	if payment.ID == 0 {
		payment.ID = f.nextID
	}
	if payment.ID >= f.nextID {
		f.nextID = payment.ID + 1
	}
	f.payments[payment.ID] = &payment
	return &payment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	payment.ID = f.nextID
	f.nextID++
	stored := *payment
	f.payments[payment.ID] = &stored
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uint) (*models.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *payment
	return &copied, nil
}

func (f *fakePaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	for _, payment := range f.payments {
		if payment.TransactionID != nil && *payment.TransactionID == transactionID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakePaymentRepo) FindByUserID(_ context.Context, userID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, payment := range f.payments {
		if payment.UserID == userID {
			out = append(out, *payment)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	if _, ok := f.payments[payment.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *payment
	f.payments[payment.ID] = &stored
	return nil
}

func (f *fakePaymentRepo) HasCompletedForInvitation(_ context.Context, invitationID uint) (bool, error) {
	for _, payment := range f.payments {
		if payment.InvitationID == invitationID && payment.Status == models.PaymentStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

type fakeRSVPRepo struct {
	rsvps       []models.RSVP
	invitations *fakeInvitationRepo
	nextID      uint
}

func newFakeRSVPRepo(invitations *fakeInvitationRepo) *fakeRSVPRepo {
	return &fakeRSVPRepo{invitations: invitations, nextID: 1}
}

func (f *fakeRSVPRepo) CreateWithCount(_ context.Context, rsvp *models.RSVP) error {
	rsvp.ID = f.nextID
	f.nextID++
	f.rsvps = append(f.rsvps, *rsvp)
	if invitation, ok := f.invitations.invitations[rsvp.InvitationID]; ok {
		invitation.RSVPCount++
	}
	return nil
}

func (f *fakeRSVPRepo) FindDuplicate(_ context.Context, invitationID uint, guestName string, guestEmail, guestPhone *string) (*models.RSVP, error) {
	for i := range f.rsvps {
		existing := &f.rsvps[i]
		if existing.InvitationID != invitationID {
			continue
		}
		if existing.GuestName == guestName {
			return existing, nil
		}
		if guestEmail != nil && existing.GuestEmail != nil && *existing.GuestEmail == *guestEmail {
			return existing, nil
		}
		if guestPhone != nil && existing.GuestPhone != nil && *existing.GuestPhone == *guestPhone {
			return existing, nil
		}
	}
	return nil, nil
}

func (f *fakeRSVPRepo) FindByInvitationID(_ context.Context, invitationID uint) ([]models.RSVP, error) {
	var out []models.RSVP
	for _, rsvp := range f.rsvps {
		if rsvp.InvitationID == invitationID {
			out = append(out, rsvp)
		}
	}
	return out, nil
}

func (f *fakeRSVPRepo) StatsByInvitationID(_ context.Context, invitationID uint) (*repositories.RSVPStats, error) {
	stats := &repositories.RSVPStats{}
	for _, rsvp := range f.rsvps {
		if rsvp.InvitationID != invitationID {
			continue
		}
		stats.Total++
		stats.TotalGuests += int64(rsvp.GuestCount)
		switch rsvp.Status {
		case models.RSVPStatusAttending:
			stats.Attending++
		case models.RSVPStatusNotAttending:
			stats.NotAttending++
		case models.RSVPStatusMaybe:
			stats.Maybe++
		}
	}
	return stats, nil
}

type fakeGuestbookRepo struct {
	entries map[uint]*models.Guestbook
	nextID  uint
}

func newFakeGuestbookRepo() *fakeGuestbookRepo {
	return &fakeGuestbookRepo{entries: map[uint]*models.Guestbook{}, nextID: 1}
}

func (f *fakeGuestbookRepo) Create(_ context.Context, entry *models.Guestbook) error {
	entry.ID = f.nextID
	f.nextID++
	stored := *entry
	f.entries[entry.ID] = &stored
	return nil
}

func (f *fakeGuestbookRepo) FindByID(_ context.Context, id uint) (*models.Guestbook, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeGuestbookRepo) FindByInvitationID(_ context.Context, invitationID uint, includeUnapproved bool) ([]models.Guestbook, error) {
	var out []models.Guestbook
	for _, entry := range f.entries {
		if entry.InvitationID != invitationID {
			continue
		}
		if !includeUnapproved && !entry.IsApproved {
			continue
		}
		out = append(out, *entry)
	}
	return out, nil
}

func (f *fakeGuestbookRepo) SetApproved(_ context.Context, id uint, approved bool) error {
	entry, ok := f.entries[id]
	if !ok {
		return repositories.ErrNotFound
	}
	entry.IsApproved = approved
	return nil
}

func (f *fakeGuestbookRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.entries[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.entries, id)
	return nil
}

type fakeVisitorRepo struct {
	visitors    []models.Visitor
	invitations *fakeInvitationRepo
	nextID      uint
}

func newFakeVisitorRepo(invitations *fakeInvitationRepo) *fakeVisitorRepo {
	return &fakeVisitorRepo{invitations: invitations, nextID: 1}
}

func (f *fakeVisitorRepo) CreateWithViewCount(_ context.Context, visitor *models.Visitor) error {
	visitor.ID = f.nextID
	f.nextID++
	f.visitors = append(f.visitors, *visitor)
	if invitation, ok := f.invitations.invitations[visitor.InvitationID]; ok {
		invitation.ViewCount++
	}
	return nil
}

func (f *fakeVisitorRepo) Stats(_ context.Context, query repositories.VisitorStatsQuery) (*repositories.VisitorStats, error) {
	stats := &repositories.VisitorStats{}
	seen := map[string]struct{}{}
	for _, visitor := range f.visitors {
		if query.InvitationID != 0 && visitor.InvitationID != query.InvitationID {
			continue
		}
		if query.From != nil && visitor.VisitedAt.Before(*query.From) {
			continue
		}
		if query.To != nil && visitor.VisitedAt.After(*query.To) {
			continue
		}
		stats.TotalVisits++
		seen[visitor.IPAddress] = struct{}{}
	}
	stats.UniqueVisitors = int64(len(seen))
	return stats, nil
}

var (
	_ repositories.IUserRepository       = (*fakeUserRepo)(nil)
	_ repositories.IInvitationRepository = (*fakeInvitationRepo)(nil)
	_ repositories.ITemplateRepository   = (*fakeTemplateRepo)(nil)
	_ repositories.IPaymentRepository    = (*fakePaymentRepo)(nil)
	_ repositories.IRSVPRepository       = (*fakeRSVPRepo)(nil)
	_ repositories.IGuestbookRepository  = (*fakeGuestbookRepo)(nil)
	_ repositories.IVisitorRepository    = (*fakeVisitorRepo)(nil)
)
