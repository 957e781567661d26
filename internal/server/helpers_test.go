package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/store"
)

// fakeDB is an in-memory DBClient mirroring the store's ownership and
// ordering semantics.
type fakeDB struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*store.User
	documents map[uuid.UUID]*store.Document
	payments  []store.Payment
	seq       int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:     make(map[uuid.UUID]*store.User),
		documents: make(map[uuid.UUID]*store.Document),
	}
}

func (f *fakeDB) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.users[id] = &store.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Tier:         "free",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return id, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDB) SetUserTier(_ context.Context, id uuid.UUID, tier string, startAt, renewAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Tier = tier
		u.TierStartAt = &startAt
		u.TierRenewAt = &renewAt
	}
	return nil
}

func (f *fakeDB) CreateDocument(_ context.Context, ownerID uuid.UUID, kind, title, templateID, colorID string, data json.RawMessage) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.seq++
	f.documents[id] = &store.Document{
		ID:         id,
		OwnerID:    ownerID,
		Kind:       kind,
		Title:      title,
		TemplateID: templateID,
		ColorID:    colorID,
		Data:       append(json.RawMessage(nil), data...),
		CreatedAt:  time.Now().Add(time.Duration(f.seq) * time.Millisecond),
		UpdatedAt:  time.Now(),
	}
	return id, nil
}

func (f *fakeDB) GetDocument(_ context.Context, id, ownerID uuid.UUID) (*store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.documents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if doc.OwnerID != ownerID {
		return nil, store.ErrForbidden
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDB) UpdateDocument(_ context.Context, id, ownerID uuid.UUID, title, templateID, colorID string, data json.RawMessage) (*store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.documents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if doc.OwnerID != ownerID {
		return nil, store.ErrForbidden
	}
	doc.Title = title
	doc.TemplateID = templateID
	doc.ColorID = colorID
	doc.Data = append(json.RawMessage(nil), data...)
	doc.UpdatedAt = time.Now()
	copied := *doc
	return &copied, nil
}

func (f *fakeDB) DeleteDocument(_ context.Context, id, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.documents[id]
	if !ok {
		// Deleting an absent document succeeds.
		return nil
	}
	if doc.OwnerID != ownerID {
		return store.ErrForbidden
	}
	delete(f.documents, id)
	return nil
}

func (f *fakeDB) ListDocuments(_ context.Context, ownerID uuid.UUID, kind string) ([]store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Document
	for _, doc := range f.documents {
		if doc.OwnerID != ownerID {
			continue
		}
		if kind != "" && doc.Kind != kind {
			continue
		}
		out = append(out, *doc)
	}
	// Newest first, matching the store's ordering.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeDB) RecordPayment(_ context.Context, userID uuid.UUID, orderID, tier, amount, currency, status string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := store.Payment{
		ID:        uuid.New(),
		UserID:    userID,
		OrderID:   orderID,
		Tier:      tier,
		Amount:    amount,
		Currency:  currency,
		Status:    status,
		CreatedAt: time.Now(),
	}
	f.payments = append([]store.Payment{p}, f.payments...)
	return p.ID, nil
}

func (f *fakeDB) ListPayments(_ context.Context, userID uuid.UUID) ([]store.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// newTestServer builds a server over a fakeDB, with fast bcrypt cost and
// a fixed JWT secret.
func newTestServer() (*Server, *fakeDB) {
	db := newFakeDB()
	pwCfg := &config.PasswordConfig{BcryptCost: bcrypt.MinCost}
	jwtCfg := &config.JWTConfig{Secret: "test-secret-at-least-16-bytes", ExpirationHours: 24}

	s := &Server{
		db:        db,
		logger:    zap.NewNop(),
		validator: validator.New(),
		uploadCfg: &config.UploadConfig{MaxBytes: 10 << 20, Timeout: 5 * time.Second},
	}
	s.userService = NewUserService(db, pwCfg)
	s.jwtService = NewJWTService(jwtCfg)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	return s, db
}

// seedUser registers a user directly against the fake and returns its id.
func seedUser(db *fakeDB, email, tier string) uuid.UUID {
	id, _ := db.CreateUser(context.Background(), "Test User", email, "$2a$04$unusable")
	db.mu.Lock()
	db.users[id].Tier = tier
	db.mu.Unlock()
	return id
}
