package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/audit"
	"github.com/meditrack/meditrack/internal/platform/auth"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[int64]*Patient
	nextID   int64
	updates  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[int64]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) (int64, error) {
	m.nextID++
	stored := *p
	stored.ID = m.nextID
	m.patients[stored.ID] = &stored
	return stored.ID, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.updates++
	stored := *p
	m.patients[p.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (m *mockRepo) List(_ context.Context) ([]*Patient, error) {
	items := []*Patient{}
	for id := m.nextID; id >= 1; id-- {
		if p, ok := m.patients[id]; ok {
			items = append(items, p)
		}
	}
	return items, nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) FieldValues(_ context.Context, column string) ([]FieldValue, error) {
	var values []FieldValue
	for id := int64(1); id <= m.nextID; id++ {
		p, ok := m.patients[id]
		if !ok {
			continue
		}
		fv := FieldValue{ID: p.ID, Name: p.Name}
		switch column {
		case "status":
			fv.Value = p.Status
		case "name":
			fv.Value = p.Name
		default:
			fv.Value = p.Disease
		}
		values = append(values, fv)
	}
	return values, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	trail := audit.NewTrail(zerolog.Nop())
	return NewService(repo, auth.NewGate(trail), trail), repo
}

var (
	admin        = auth.Identity{Name: "alice", Role: auth.RoleAdmin}
	receptionist = auth.Identity{Name: "bob", Role: auth.RoleReceptionist}
	guest        = auth.Identity{Name: "eve", Role: auth.Role("Guest")}
)

func validPatient() *Patient {
	return &Patient{Name: "Asha Rao", Age: 41, Gender: "Female", Phone: "9876543210", Disease: "Covid-19", Status: StatusNew}
}

// -- Create / Get --

func TestService_CreateThenGetRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p := validPatient()
	id, err := svc.Create(ctx, admin, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected assigned identity")
	}
	if p.ID != id {
		t.Errorf("expected identity filled in on the entity, got %d", p.ID)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected patient")
	}
	want := *validPatient()
	want.ID = id
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}
}

func TestService_Create_ReceptionistPermitted(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Create(context.Background(), receptionist, validPatient()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_Create_UnknownRoleDenied(t *testing.T) {
	svc, repo := newTestService()
	_, err := svc.Create(context.Background(), guest, validPatient())
	if !apperr.IsAccessDenied(err) {
		t.Fatalf("expected AccessDenied, got %v", err)
	}
	if len(repo.patients) != 0 {
		t.Error("expected no row on denial")
	}
}

func TestService_Create_InvalidPhone(t *testing.T) {
	svc, repo := newTestService()
	p := validPatient()
	p.Phone = "12345"
	_, err := svc.Create(context.Background(), admin, p)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.patients) != 0 {
		t.Error("expected validation to reject before the store")
	}
}

func TestService_Get_Absent(t *testing.T) {
	svc, _ := newTestService()
	got, err := svc.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent patient, got %+v", got)
	}
}

// -- Update --

func TestService_Update(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p := validPatient()
	id, err := svc.Create(ctx, admin, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Status = StatusCritical
	p.Disease = "Pneumonia"
	if err := svc.Update(ctx, admin, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.Get(ctx, id)
	if got.Status != StatusCritical || got.Disease != "Pneumonia" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestService_Update_MissingID(t *testing.T) {
	svc, repo := newTestService()
	err := svc.Update(context.Background(), admin, validPatient())
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.updates != 0 {
		t.Error("expected no store access when id is missing")
	}
}

// -- Search --

func seedSearchPatients(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []*Patient{
		{Name: "A", Age: 30, Gender: "Female", Phone: "1111111111", Disease: "Covid-19", Status: StatusCritical},
		{Name: "B", Age: 40, Gender: "Male", Phone: "2222222222", Disease: "Flu", Status: StatusNew},
		{Name: "C", Age: 50, Gender: "Other", Phone: "3333333333", Disease: "Diabetes", Status: StatusFollowUp},
	} {
		if _, err := svc.Create(ctx, admin, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestService_Search_Disease(t *testing.T) {
	svc, _ := newTestService()
	seedSearchPatients(t, svc)

	matches, err := svc.Search(context.Background(), "covid|flu", "disease")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
	if matches[0].Name != "A" || matches[0].ID != 1 {
		t.Errorf("unexpected first match: %+v", matches[0])
	}
	if matches[1].Name != "B" || matches[1].ID != 2 {
		t.Errorf("unexpected second match: %+v", matches[1])
	}
}

func TestService_Search_CaseInsensitive(t *testing.T) {
	svc, _ := newTestService()
	seedSearchPatients(t, svc)

	matches, err := svc.Search(context.Background(), "COVID", "disease")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 1 {
		t.Errorf("expected patient 1, got %+v", matches)
	}
}

func TestService_Search_StatusField(t *testing.T) {
	svc, _ := newTestService()
	seedSearchPatients(t, svc)

	matches, err := svc.Search(context.Background(), "critical", "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 1 {
		t.Errorf("expected patient 1, got %+v", matches)
	}
}

func TestService_Search_UnknownFieldFallsBackToDisease(t *testing.T) {
	svc, _ := newTestService()
	seedSearchPatients(t, svc)

	matches, err := svc.Search(context.Background(), "flu", "shoe-size")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 2 {
		t.Errorf("expected patient 2 via disease fallback, got %+v", matches)
	}
}

func TestService_Search_MalformedPattern(t *testing.T) {
	svc, _ := newTestService()
	seedSearchPatients(t, svc)

	matches, err := svc.Search(context.Background(), "covid(", "disease")
	var pe *apperr.PatternError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PatternError, got %v", err)
	}
	if matches != nil {
		t.Errorf("expected no partial results, got %+v", matches)
	}
}

func TestService_Search_NoMatches(t *testing.T) {
	svc, _ := newTestService()
	seedSearchPatients(t, svc)

	matches, err := svc.Search(context.Background(), "malaria", "disease")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected empty result, got %+v", matches)
	}
}
