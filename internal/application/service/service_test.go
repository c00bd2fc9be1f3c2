package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/caixa-api/internal/infrastructure/repository"
	"github.com/sangkips/caixa-api/pkg/format"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixedNow is 2024-03-05 14:30:00 in the display time zone
var fixedNow = time.Date(2024, 3, 5, 14, 30, 0, 0, format.Location())

type testEnv struct {
	db          *gorm.DB
	user        *entity.User
	caixas      *CaixaService
	reports     *ReportService
	receipts    *ReceiptService
	printer     *fakePrinter
	clockMu     sync.Mutex
	clockOffset time.Duration
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newTestEnv wires the services on an in-memory database with one operator
// (matricula "123") and a clock that ticks one second per call from fixedNow.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	userRepo := infraRepo.NewUserRepository(db)
	caixaRepo := infraRepo.NewCaixaRepository(db)
	lancamentoRepo := infraRepo.NewLancamentoRepository(db)
	sangriaRepo := infraRepo.NewSangriaRepository(db)

	env := &testEnv{db: db, printer: &fakePrinter{connected: true}}
	clock := func() time.Time {
		env.clockMu.Lock()
		defer env.clockMu.Unlock()
		env.clockOffset += time.Second
		return fixedNow.Add(env.clockOffset)
	}

	env.user = createUser(t, db, "Ana Souza", "123", enum.RoleOperador)

	env.caixas = NewCaixaService(caixaRepo, lancamentoRepo, sangriaRepo)
	env.caixas.now = clock

	env.reports = NewReportService(caixaRepo, lancamentoRepo, sangriaRepo, userRepo, ReportOptions{CacheTTL: time.Minute})
	env.reports.now = func() time.Time { return fixedNow }

	env.receipts = NewReceiptService(env.printer, lancamentoRepo, 48)
	env.receipts.now = func() time.Time { return fixedNow }

	return env
}

func (e *testEnv) ctx() context.Context {
	return repository.WithOwner(context.Background(), e.user.ID)
}

func createUser(t *testing.T, db *gorm.DB, nome, matricula, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		Nome:      nome,
		Matricula: matricula,
		Email:     matricula + "@caixa.local",
		Password:  "x",
		Role:      role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

type fakePrinter struct {
	mu        sync.Mutex
	jobs      [][]byte
	connected bool
	err       error
}

func (p *fakePrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *fakePrinter) Close() error      { return nil }
func (p *fakePrinter) IsConnected() bool { return p.connected }
func (p *fakePrinter) Type() string      { return "network" }

func withOwner(id uuid.UUID) context.Context {
	return repository.WithOwner(context.Background(), id)
}
