package usecase

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
)

// In-memory repository fakes. They mirror the mongo-backed implementations'
// error contract: mongo.ErrNoDocuments for misses and a duplicate-key write
// exception for unique-index violations.

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, duplicateKeyError()
		}
	}

	stored := *user
	stored.ID = bson.NewObjectID()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID.Hex()] = stored

	out := stored
	return &out, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := user
	return &out, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			out := user
			return &out, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			out := user
			return &out, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) ListUsers(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		out := user
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })

	return users, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, id string, params repository.UpdateUserParams) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.Currency != nil {
		user.Currency = *params.Currency
	}
	if params.Theme != nil {
		user.Theme = *params.Theme
	}
	if params.MobileNumber != nil {
		user.MobileNumber = params.MobileNumber
	}
	if params.Onboarded != nil {
		user.Onboarded = *params.Onboarded
	}
	user.UpdatedAt = time.Now()
	r.users[id] = user

	out := user
	return &out, nil
}

func (r *fakeUserRepo) UpdateCredentials(_ context.Context, id string, params repository.UpdateCredentialsParams) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.VerificationCode != nil {
		user.VerificationCode = *params.VerificationCode
	}
	if params.EmailVerified != nil {
		user.EmailVerified = *params.EmailVerified
	}
	if params.SessionToken != nil {
		user.SessionToken = *params.SessionToken
	}
	user.UpdatedAt = time.Now()
	r.users[id] = user

	out := user
	return &out, nil
}

func (r *fakeUserRepo) ClearSessionToken(ctx context.Context, id string) error {
	empty := ""
	_, err := r.UpdateCredentials(ctx, id, repository.UpdateCredentialsParams{SessionToken: &empty})
	return err
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.users, id)

	out := user
	return &out, nil
}

type fakeLogbookRepo struct {
	mu       sync.Mutex
	logbooks map[string]model.Logbook
}

func newFakeLogbookRepo() *fakeLogbookRepo {
	return &fakeLogbookRepo{logbooks: make(map[string]model.Logbook)}
}

func (r *fakeLogbookRepo) CreateLogbook(_ context.Context, logbook *model.Logbook) (*model.Logbook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *logbook
	stored.ID = bson.NewObjectID()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.logbooks[stored.ID.Hex()] = stored

	out := stored
	return &out, nil
}

func (r *fakeLogbookRepo) GetLogbook(_ context.Context, id string) (*model.Logbook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logbook, ok := r.logbooks[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := logbook
	return &out, nil
}

func (r *fakeLogbookRepo) ListLogbooks(_ context.Context) ([]*model.Logbook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logbooks := make([]*model.Logbook, 0, len(r.logbooks))
	for _, logbook := range r.logbooks {
		out := logbook
		logbooks = append(logbooks, &out)
	}

	return logbooks, nil
}

func (r *fakeLogbookRepo) ListLogbooksByOwner(_ context.Context, ownerID string) ([]*model.Logbook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var logbooks []*model.Logbook
	for _, logbook := range r.logbooks {
		if logbook.OwnerID.Hex() == ownerID {
			out := logbook
			logbooks = append(logbooks, &out)
		}
	}

	return logbooks, nil
}

func (r *fakeLogbookRepo) UpdateLogbook(_ context.Context, id string, params repository.UpdateLogbookParams) (*model.Logbook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logbook, ok := r.logbooks[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		logbook.Name = *params.Name
	}
	logbook.UpdatedAt = time.Now()
	r.logbooks[id] = logbook

	out := logbook
	return &out, nil
}

func (r *fakeLogbookRepo) DeleteLogbook(_ context.Context, id string) (*model.Logbook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logbook, ok := r.logbooks[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.logbooks, id)

	out := logbook
	return &out, nil
}

type fakeOverviewRepo struct {
	mu        sync.Mutex
	overviews map[string]model.Overview
}

func newFakeOverviewRepo() *fakeOverviewRepo {
	return &fakeOverviewRepo{overviews: make(map[string]model.Overview)}
}

func (r *fakeOverviewRepo) CreateOverview(_ context.Context, overview *model.Overview) (*model.Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *overview
	stored.ID = bson.NewObjectID()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.overviews[stored.ID.Hex()] = stored

	out := stored
	return &out, nil
}

func (r *fakeOverviewRepo) GetOverview(_ context.Context, id string) (*model.Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	overview, ok := r.overviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := overview
	return &out, nil
}

func (r *fakeOverviewRepo) GetOverviewByLogbook(_ context.Context, logbookID string) (*model.Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, overview := range r.overviews {
		if overview.LogbookID.Hex() == logbookID {
			out := overview
			return &out, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeOverviewRepo) ListOverviews(_ context.Context) ([]*model.Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	overviews := make([]*model.Overview, 0, len(r.overviews))
	for _, overview := range r.overviews {
		out := overview
		overviews = append(overviews, &out)
	}

	return overviews, nil
}

func (r *fakeOverviewRepo) UpdateOverview(_ context.Context, id string, params repository.UpdateOverviewParams) (*model.Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	overview, ok := r.overviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	r.overviews[id] = applyOverviewParams(overview, params)
	out := r.overviews[id]
	return &out, nil
}

func (r *fakeOverviewRepo) UpdateOverviewByLogbook(_ context.Context, logbookID string, params repository.UpdateOverviewParams) (*model.Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, overview := range r.overviews {
		if overview.LogbookID.Hex() == logbookID {
			r.overviews[id] = applyOverviewParams(overview, params)
			out := r.overviews[id]
			return &out, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func applyOverviewParams(overview model.Overview, params repository.UpdateOverviewParams) model.Overview {
	if params.Income != nil {
		overview.Income = *params.Income
	}
	if params.Savings != nil {
		overview.Savings = *params.Savings
	}
	overview.UpdatedAt = time.Now()
	return overview
}

func (r *fakeOverviewRepo) DeleteOverview(_ context.Context, id string) (*model.Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	overview, ok := r.overviews[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.overviews, id)

	out := overview
	return &out, nil
}

func (r *fakeOverviewRepo) DeleteOverviewsByLogbook(_ context.Context, logbookID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, overview := range r.overviews {
		if overview.LogbookID.Hex() == logbookID {
			delete(r.overviews, id)
			deleted++
		}
	}

	return deleted, nil
}

type fakeEntryRepo struct {
	mu      sync.Mutex
	entries map[string]model.Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]model.Entry)}
}

func (r *fakeEntryRepo) CreateEntry(_ context.Context, entry *model.Entry) (*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	stored.ID = bson.NewObjectID()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.entries[stored.ID.Hex()] = stored

	out := stored
	return &out, nil
}

func (r *fakeEntryRepo) GetEntry(_ context.Context, id string) (*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := entry
	return &out, nil
}

func (r *fakeEntryRepo) GetEntryByNameInOverview(_ context.Context, name, overviewID string) (*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.Name == name && entry.OverviewID != nil && entry.OverviewID.Hex() == overviewID {
			out := entry
			return &out, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeEntryRepo) GetEntryByNameInLogbook(_ context.Context, name, logbookID string) (*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.Name == name && entry.LogbookID != nil && entry.LogbookID.Hex() == logbookID {
			out := entry
			return &out, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeEntryRepo) ListEntries(_ context.Context) ([]*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]*model.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out := entry
		entries = append(entries, &out)
	}

	return entries, nil
}

func (r *fakeEntryRepo) ListEntriesByOverview(_ context.Context, overviewID string) ([]*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []*model.Entry
	for _, entry := range r.entries {
		if entry.OverviewID != nil && entry.OverviewID.Hex() == overviewID {
			out := entry
			entries = append(entries, &out)
		}
	}

	return entries, nil
}

func (r *fakeEntryRepo) ListEntriesByLogbook(_ context.Context, logbookID string) ([]*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []*model.Entry
	for _, entry := range r.entries {
		if entry.LogbookID != nil && entry.LogbookID.Hex() == logbookID {
			out := entry
			entries = append(entries, &out)
		}
	}

	return entries, nil
}

func (r *fakeEntryRepo) UpdateEntry(_ context.Context, id string, params repository.UpdateEntryParams) (*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		entry.Name = *params.Name
	}
	if params.TotalSpent != nil {
		entry.TotalSpent = *params.TotalSpent
	}
	if params.NonMonthlyTotalSpent != nil {
		entry.NonMonthlyTotalSpent = *params.NonMonthlyTotalSpent
	}
	if params.Budget != nil {
		entry.Budget = params.Budget
	}
	if params.OverviewID != nil {
		overviewObjectID, err := bson.ObjectIDFromHex(*params.OverviewID)
		if err != nil {
			return nil, err
		}
		entry.OverviewID = &overviewObjectID
	}
	if params.LogbookID != nil {
		logbookObjectID, err := bson.ObjectIDFromHex(*params.LogbookID)
		if err != nil {
			return nil, err
		}
		entry.LogbookID = &logbookObjectID
	}
	entry.UpdatedAt = time.Now()
	r.entries[id] = entry

	out := entry
	return &out, nil
}

func (r *fakeEntryRepo) DeleteEntry(_ context.Context, id string) (*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.entries, id)

	out := entry
	return &out, nil
}

func (r *fakeEntryRepo) DeleteEntriesByOverview(_ context.Context, overviewID string) ([]*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted []*model.Entry
	for id, entry := range r.entries {
		if entry.OverviewID != nil && entry.OverviewID.Hex() == overviewID {
			out := entry
			deleted = append(deleted, &out)
			delete(r.entries, id)
		}
	}

	return deleted, nil
}

func (r *fakeEntryRepo) DeleteEntriesByLogbook(_ context.Context, logbookID string) ([]*model.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted []*model.Entry
	for id, entry := range r.entries {
		if entry.LogbookID != nil && entry.LogbookID.Hex() == logbookID {
			out := entry
			deleted = append(deleted, &out)
			delete(r.entries, id)
		}
	}

	return deleted, nil
}

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[string]model.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]model.Purchase)}
}

func (r *fakePurchaseRepo) CreatePurchase(_ context.Context, purchase *model.Purchase) (*model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *purchase
	stored.ID = bson.NewObjectID()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.purchases[stored.ID.Hex()] = stored

	out := stored
	return &out, nil
}

func (r *fakePurchaseRepo) CreatePurchases(ctx context.Context, purchases []*model.Purchase) ([]*model.Purchase, error) {
	created := make([]*model.Purchase, 0, len(purchases))
	for _, purchase := range purchases {
		out, err := r.CreatePurchase(ctx, purchase)
		if err != nil {
			return nil, err
		}
		created = append(created, out)
	}

	return created, nil
}

func (r *fakePurchaseRepo) GetPurchase(_ context.Context, id string) (*model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purchase, ok := r.purchases[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := purchase
	return &out, nil
}

func (r *fakePurchaseRepo) ListPurchases(_ context.Context) ([]*model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purchases := make([]*model.Purchase, 0, len(r.purchases))
	for _, purchase := range r.purchases {
		out := purchase
		purchases = append(purchases, &out)
	}

	return purchases, nil
}

func (r *fakePurchaseRepo) ListPurchasesByEntry(_ context.Context, entryID string) ([]*model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purchases []*model.Purchase
	for _, purchase := range r.purchases {
		if purchase.EntryID.Hex() == entryID {
			out := purchase
			purchases = append(purchases, &out)
		}
	}
	sort.Slice(purchases, func(i, j int) bool { return purchases[i].Placement < purchases[j].Placement })

	return purchases, nil
}

func (r *fakePurchaseRepo) UpdatePurchase(_ context.Context, id string, params repository.UpdatePurchaseParams) (*model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purchase, ok := r.purchases[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Category != nil {
		purchase.Category = *params.Category
	}
	if params.Description != nil {
		purchase.Description = *params.Description
	}
	if params.Cost != nil {
		purchase.Cost = *params.Cost
	}
	if params.Placement != nil {
		purchase.Placement = *params.Placement
	}
	purchase.UpdatedAt = time.Now()
	r.purchases[id] = purchase

	out := purchase
	return &out, nil
}

func (r *fakePurchaseRepo) DeletePurchase(_ context.Context, id string) (*model.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purchase, ok := r.purchases[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.purchases, id)

	out := purchase
	return &out, nil
}

func (r *fakePurchaseRepo) DeletePurchases(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for _, id := range ids {
		if _, ok := r.purchases[id]; ok {
			delete(r.purchases, id)
			deleted++
		}
	}

	return deleted, nil
}

func (r *fakePurchaseRepo) DeletePurchasesByEntry(_ context.Context, entryID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, purchase := range r.purchases {
		if purchase.EntryID.Hex() == entryID {
			delete(r.purchases, id)
			deleted++
		}
	}

	return deleted, nil
}

func (r *fakePurchaseRepo) NextPlacement(_ context.Context, entryID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	highest := 0
	for _, purchase := range r.purchases {
		if purchase.EntryID.Hex() == entryID && purchase.Placement > highest {
			highest = purchase.Placement
		}
	}

	return highest + 1, nil
}

type sentEmail struct {
	to         string
	subject    string
	paragraphs []string
}

// captureMailer records outbound email instead of sending it.
type captureMailer struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (m *captureMailer) SendParagraphs(to, subject string, paragraphs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, sentEmail{to: to, subject: subject, paragraphs: paragraphs})
	return nil
}

var codePattern = regexp.MustCompile(`\b\d{8}\b`)

// lastCode extracts the 8-digit verification code from the most recent email.
func (m *captureMailer) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return ""
	}

	body := strings.Join(m.sent[len(m.sent)-1].paragraphs, "\n")
	return codePattern.FindString(body)
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sent)
}
