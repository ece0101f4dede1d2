package importer_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Badkirked/quoteforge/internal/application/importer"
	"github.com/Badkirked/quoteforge/internal/domain"
	"github.com/Badkirked/quoteforge/internal/domain/entity"
	"github.com/Badkirked/quoteforge/internal/domain/repository"
)

// ── repos en memoria ──────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByName(name string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	all := r.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeCustomerRepo) Search(query string, limit int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.sorted() {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) FillContact(id, phone, email, address string) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Phone == "" {
		c.Phone = phone
	}
	if c.Email == "" {
		c.Email = email
	}
	if c.Address == "" {
		c.Address = address
	}
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeCustomerRepo) Count() (int, error) { return len(r.byID), nil }

func (r *fakeCustomerRepo) sorted() []*entity.Customer {
	out := make([]*entity.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type fakeJobRepo struct {
	byID map[string]*entity.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[string]*entity.Job)}
}

func (r *fakeJobRepo) Create(j *entity.Job) error {
	for _, existing := range r.byID {
		if existing.QuoteNumber == j.QuoteNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *j
	r.byID[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) GetByID(id string) (*entity.Job, error) {
	if j, ok := r.byID[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeJobRepo) GetByQuoteNumber(qn string) (*entity.Job, error) {
	for _, j := range r.byID {
		if j.QuoteNumber == qn {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) GetByOrigin(customerID string, date time.Time, description string) (*entity.Job, error) {
	for _, j := range r.byID {
		if j.CustomerID == customerID && j.Date.Equal(date) && j.Description == description {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) List(limit, offset int) ([]*entity.Job, error) {
	all := r.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeJobRepo) ListByCustomer(customerID string) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range r.sorted() {
		if j.CustomerID == customerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) QuoteNumberExists(qn string) (bool, error) {
	for _, j := range r.byID {
		if j.QuoteNumber == qn {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeJobRepo) MaxQuoteSequence() (int, error) {
	max := 0
	for _, j := range r.byID {
		rest, ok := strings.CutPrefix(j.QuoteNumber, "Q")
		if !ok {
			continue
		}
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		// Solo números "Q<n>" puros; los derivados con sufijo quedan afuera.
		if digits == 0 || digits != len(rest) {
			continue
		}
		var n int
		fmt.Sscanf(rest, "%d", &n)
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (r *fakeJobRepo) Update(j *entity.Job) error {
	if _, ok := r.byID[j.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *j
	r.byID[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeJobRepo) Count() (int, error) { return len(r.byID), nil }

func (r *fakeJobRepo) LatestDate() (time.Time, error) {
	var latest time.Time
	for _, j := range r.byID {
		if j.Date.After(latest) {
			latest = j.Date
		}
	}
	return latest, nil
}

func (r *fakeJobRepo) sorted() []*entity.Job {
	out := make([]*entity.Job, 0, len(r.byID))
	for _, j := range r.byID {
		cp := *j
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuoteNumber < out[j].QuoteNumber })
	return out
}

type fakeMaterialRepo struct {
	byJob map[string][]*entity.Material
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{byJob: make(map[string][]*entity.Material)}
}

func (r *fakeMaterialRepo) CreateBatch(jobID string, items []*entity.Material) error {
	r.byJob[jobID] = append(r.byJob[jobID], items...)
	return nil
}

func (r *fakeMaterialRepo) ListByJob(jobID string) ([]*entity.Material, error) {
	return r.byJob[jobID], nil
}

func (r *fakeMaterialRepo) ReplaceForJob(jobID string, items []*entity.Material) error {
	r.byJob[jobID] = items
	return nil
}

func (r *fakeMaterialRepo) DeleteByJob(jobID string) error {
	delete(r.byJob, jobID)
	return nil
}

// ── fuente y transacciones en memoria ─────────────────────────────────────────

// fakeWorkbook libro en memoria con hojas ordenadas.
type fakeWorkbook struct {
	order  []string
	sheets map[string][][]string
}

func (w *fakeWorkbook) SheetNames() []string { return w.order }

func (w *fakeWorkbook) Rows(sheet string) ([][]string, error) {
	rows, ok := w.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("hoja %q inexistente", sheet)
	}
	return rows, nil
}

func (w *fakeWorkbook) Close() error { return nil }

type fakeSource struct {
	wb *fakeWorkbook
}

func (s *fakeSource) Open(path string) (importer.Workbook, error) { return s.wb, nil }

// fakeTxRunner pasa los repos compartidos sin transacción real y cuenta los
// lotes confirmados.
type fakeTxRunner struct {
	customers *fakeCustomerRepo
	jobs      *fakeJobRepo
	materials *fakeMaterialRepo
	commits   int
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	customers repository.CustomerRepository,
	jobs repository.JobRepository,
	materials repository.MaterialRepository,
) error) error {
	if err := fn(t.customers, t.jobs, t.materials); err != nil {
		return err
	}
	t.commits++
	return nil
}
