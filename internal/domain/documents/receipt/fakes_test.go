package receipt

import (
	"context"

	"sklad/internal/core/apperror"
	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/core/types"
	"sklad/internal/domain/catalogs/resource"
	"sklad/internal/domain/catalogs/unit"
	"sklad/internal/domain/registers/balance"
)

// passthroughTxManager runs fn directly. Rollback semantics are not
// simulated, so error-path tests assert on state before the transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- catalog fakes ---

type fakeResourceRepo struct {
	items map[id.ID]*resource.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{items: make(map[id.ID]*resource.Resource)}
}

func (f *fakeResourceRepo) add(name string, status entity.Status) id.ID {
	r := resource.New(name)
	r.Status = status
	f.items[r.ID] = r
	return r.ID
}

func (f *fakeResourceRepo) Create(_ context.Context, r *resource.Resource) error {
	f.items[r.ID] = r
	return nil
}

func (f *fakeResourceRepo) GetByID(_ context.Context, resourceID id.ID) (*resource.Resource, error) {
	r, ok := f.items[resourceID]
	if !ok {
		return nil, apperror.NewNotFound("resource", resourceID)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeResourceRepo) Update(_ context.Context, r *resource.Resource) error {
	f.items[r.ID] = r
	return nil
}

func (f *fakeResourceRepo) Delete(_ context.Context, resourceID id.ID) error {
	delete(f.items, resourceID)
	return nil
}

func (f *fakeResourceRepo) List(_ context.Context) ([]*resource.Resource, error) {
	result := make([]*resource.Resource, 0, len(f.items))
	for _, r := range f.items {
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeResourceRepo) ExistsByName(_ context.Context, normalizedName string, excludeID id.ID) (bool, error) {
	for _, r := range f.items {
		if r.ID != excludeID && entity.NormalizeName(r.Name) == normalizedName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResourceRepo) InUse(_ context.Context, _ id.ID) (bool, error) {
	return false, nil
}

type fakeUnitRepo struct {
	items map[id.ID]*unit.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{items: make(map[id.ID]*unit.Unit)}
}

func (f *fakeUnitRepo) add(name string, status entity.Status) id.ID {
	u := unit.New(name)
	u.Status = status
	f.items[u.ID] = u
	return u.ID
}

func (f *fakeUnitRepo) Create(_ context.Context, u *unit.Unit) error {
	f.items[u.ID] = u
	return nil
}

func (f *fakeUnitRepo) GetByID(_ context.Context, unitID id.ID) (*unit.Unit, error) {
	u, ok := f.items[unitID]
	if !ok {
		return nil, apperror.NewNotFound("unit", unitID)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUnitRepo) Update(_ context.Context, u *unit.Unit) error {
	f.items[u.ID] = u
	return nil
}

func (f *fakeUnitRepo) Delete(_ context.Context, unitID id.ID) error {
	delete(f.items, unitID)
	return nil
}

func (f *fakeUnitRepo) List(_ context.Context) ([]*unit.Unit, error) {
	result := make([]*unit.Unit, 0, len(f.items))
	for _, u := range f.items {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUnitRepo) ExistsByName(_ context.Context, normalizedName string, excludeID id.ID) (bool, error) {
	for _, u := range f.items {
		if u.ID != excludeID && entity.NormalizeName(u.Name) == normalizedName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUnitRepo) InUse(_ context.Context, _ id.ID) (bool, error) {
	return false, nil
}

// --- balance fake ---

type fakeBalanceRepo struct {
	rows map[id.ID]entity.Balance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{rows: make(map[id.ID]entity.Balance)}
}

func (f *fakeBalanceRepo) Get(_ context.Context, resourceID, unitID id.ID) (entity.Balance, bool, error) {
	for _, b := range f.rows {
		if b.ResourceID == resourceID && b.UnitID == unitID {
			return b, true, nil
		}
	}
	return entity.Balance{}, false, nil
}

func (f *fakeBalanceRepo) GetForUpdate(ctx context.Context, resourceID, unitID id.ID) (entity.Balance, bool, error) {
	return f.Get(ctx, resourceID, unitID)
}

func (f *fakeBalanceRepo) Insert(_ context.Context, bal entity.Balance) error {
	f.rows[bal.ID] = bal
	return nil
}

func (f *fakeBalanceRepo) SetQuantity(_ context.Context, balanceID id.ID, qty types.Quantity) error {
	b := f.rows[balanceID]
	b.Quantity = qty
	f.rows[balanceID] = b
	return nil
}

func (f *fakeBalanceRepo) Delete(_ context.Context, balanceID id.ID) error {
	delete(f.rows, balanceID)
	return nil
}

func (f *fakeBalanceRepo) List(_ context.Context) ([]entity.Balance, error) {
	result := make([]entity.Balance, 0, len(f.rows))
	for _, b := range f.rows {
		result = append(result, b)
	}
	return result, nil
}

// --- receipt fake ---

type fakeReceiptRepo struct {
	headers map[id.ID]Receipt
	lines   map[id.ID]Line
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{
		headers: make(map[id.ID]Receipt),
		lines:   make(map[id.ID]Line),
	}
}

func (f *fakeReceiptRepo) GetByID(_ context.Context, receiptID id.ID) (*Receipt, error) {
	h, ok := f.headers[receiptID]
	if !ok {
		return nil, apperror.NewNotFound("receipt", receiptID)
	}
	copied := h
	copied.Lines = nil
	return &copied, nil
}

func (f *fakeReceiptRepo) Create(_ context.Context, rec *Receipt) error {
	h := *rec
	h.Lines = nil
	f.headers[rec.ID] = h
	return nil
}

func (f *fakeReceiptRepo) Update(_ context.Context, rec *Receipt) error {
	if _, ok := f.headers[rec.ID]; !ok {
		return apperror.NewNotFound("receipt", rec.ID)
	}
	h := *rec
	h.Lines = nil
	f.headers[rec.ID] = h
	return nil
}

func (f *fakeReceiptRepo) Delete(_ context.Context, receiptID id.ID) error {
	if _, ok := f.headers[receiptID]; !ok {
		return apperror.NewNotFound("receipt", receiptID)
	}
	delete(f.headers, receiptID)
	for lineID, l := range f.lines {
		if l.ReceiptID == receiptID {
			delete(f.lines, lineID)
		}
	}
	return nil
}

func (f *fakeReceiptRepo) GetLines(_ context.Context, receiptID id.ID) ([]Line, error) {
	var result []Line
	for _, l := range f.lines {
		if l.ReceiptID == receiptID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeReceiptRepo) GetLineByID(_ context.Context, lineID id.ID) (*Line, error) {
	l, ok := f.lines[lineID]
	if !ok {
		return nil, apperror.NewNotFound("receipt line", lineID)
	}
	copied := l
	return &copied, nil
}

func (f *fakeReceiptRepo) InsertLines(_ context.Context, lines []Line) error {
	for _, l := range lines {
		f.lines[l.ID] = l
	}
	return nil
}

func (f *fakeReceiptRepo) DeleteLines(_ context.Context, receiptID id.ID) error {
	for lineID, l := range f.lines {
		if l.ReceiptID == receiptID {
			delete(f.lines, lineID)
		}
	}
	return nil
}

func (f *fakeReceiptRepo) DeleteLine(_ context.Context, lineID id.ID) error {
	if _, ok := f.lines[lineID]; !ok {
		return apperror.NewNotFound("receipt line", lineID)
	}
	delete(f.lines, lineID)
	return nil
}

func (f *fakeReceiptRepo) NumberExists(_ context.Context, normalizedNumber string, excludeID id.ID) (bool, error) {
	for _, h := range f.headers {
		if h.ID != excludeID && NormalizeNumber(h.Number) == normalizedNumber {
			return true, nil
		}
	}
	return false, nil
}

// --- test environment ---

type testEnv struct {
	resources *fakeResourceRepo
	units     *fakeUnitRepo
	balances  *fakeBalanceRepo
	receipts  *fakeReceiptRepo

	balanceSvc *balance.Service
	svc        *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		resources: newFakeResourceRepo(),
		units:     newFakeUnitRepo(),
		balances:  newFakeBalanceRepo(),
		receipts:  newFakeReceiptRepo(),
	}
	env.balanceSvc = balance.NewService(env.balances)
	env.svc = NewService(env.receipts, env.resources, env.units, env.balanceSvc, passthroughTxManager{})
	return env
}

func (e *testEnv) stock(ctx context.Context, resourceID, unitID id.ID) types.Quantity {
	qty, err := e.balanceSvc.Get(ctx, resourceID, unitID)
	if err != nil {
		panic(err)
	}
	return qty
}
