package employees

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"employee-directory/internal/models"
)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, stored string) bool {
	return stored == "hashed:"+password
}

type fakeIssuer struct {
	issued []models.Identity
	err    error
}

func (f *fakeIssuer) Issue(identity models.Identity) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.issued = append(f.issued, identity)
	return "token-" + strconv.FormatInt(identity.SubjectID, 10), nil
}

type recordingNotifier struct {
	events []Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event Event) error {
	n.events = append(n.events, event)
	return n.err
}

// fakeRepo is an in-memory Repository enforcing the same uniqueness rules
// as the database schema.
type fakeRepo struct {
	mu          sync.Mutex
	byID        map[int64]*models.Employee
	nextID      int64
	nextPhoneID int64
	listErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[int64]*models.Employee)}
}

func (r *fakeRepo) clone(e *models.Employee) *models.Employee {
	c := *e
	c.Phones = append([]models.Phone(nil), e.Phones...)
	c.ManagerName = nil
	if e.ManagerID != nil {
		id := *e.ManagerID
		c.ManagerID = &id
		if m, ok := r.byID[id]; ok {
			name := m.DisplayName()
			c.ManagerName = &name
		}
	}
	return &c
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return r.clone(e), nil
}

func (r *fakeRepo) FindByDocumentNumber(_ context.Context, documentNumber int64) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.DocumentNumber == documentNumber {
			return r.clone(e), nil
		}
	}
	return nil, ErrEmployeeNotFound
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.Email == email {
			return r.clone(e), nil
		}
	}
	return nil, ErrEmployeeNotFound
}

func (r *fakeRepo) ExistsAny(context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID) > 0, nil
}

func (r *fakeRepo) List(context.Context) ([]*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*models.Employee, 0, len(r.byID))
	for id := int64(1); id <= r.nextID; id++ {
		if e, ok := r.byID[id]; ok {
			out = append(out, r.clone(e))
		}
	}
	return out, nil
}

func (r *fakeRepo) checkUnique(e *models.Employee) error {
	for _, other := range r.byID {
		if other.ID == e.ID {
			continue
		}
		if other.DocumentNumber == e.DocumentNumber {
			return ErrDuplicateDocumentNumber
		}
		if other.Email == e.Email {
			return ErrDuplicateEmail
		}
	}
	if e.ManagerID != nil {
		if _, ok := r.byID[*e.ManagerID]; !ok {
			return ErrManagerNotFound
		}
	}
	return nil
}

func (r *fakeRepo) assignPhoneIDs(phones []models.Phone) []models.Phone {
	out := make([]models.Phone, 0, len(phones))
	for _, p := range phones {
		if p.ID == 0 {
			r.nextPhoneID++
			p.ID = r.nextPhoneID
		}
		out = append(out, p)
	}
	return out
}

func (r *fakeRepo) Insert(_ context.Context, e *models.Employee) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(e); err != nil {
		return nil, err
	}
	r.nextID++
	stored := *e
	stored.ID = r.nextID
	stored.Phones = r.assignPhoneIDs(e.Phones)
	r.byID[stored.ID] = &stored
	return r.clone(&stored), nil
}

func (r *fakeRepo) Update(_ context.Context, e *models.Employee) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[e.ID]; !ok {
		return nil, ErrEmployeeNotFound
	}
	if err := r.checkUnique(e); err != nil {
		return nil, err
	}
	stored := *e
	stored.Phones = r.assignPhoneIDs(e.Phones)
	r.byID[stored.ID] = &stored
	return r.clone(&stored), nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrEmployeeNotFound
	}
	delete(r.byID, id)
	for _, e := range r.byID {
		if e.ManagerID != nil && *e.ManagerID == id {
			e.ManagerID = nil
		}
	}
	return nil
}

// seed stores e directly, bypassing every policy check.
func (r *fakeRepo) seed(e models.Employee) *models.Employee {
	stored, err := r.Insert(context.Background(), &e)
	if err != nil {
		panic(err)
	}
	return stored
}

type countingTx struct {
	readOnly, readWrite int
	failWith            error
	// lastErr is what the most recent read-write unit of work returned.
	lastErr error
}

func (c *countingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	c.readOnly++
	return fn(ctx)
}

func (c *countingTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	c.readWrite++
	c.lastErr = fn(ctx)
	if c.failWith != nil {
		return errors.Join(c.lastErr, c.failWith)
	}
	return c.lastErr
}
