package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	domainRepo "github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/internal/infrastructure/database"
	"github.com/sangkips/caixa-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

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

func seedUser(t *testing.T, db *gorm.DB, matricula string) *entity.User {
	t.Helper()
	u := &entity.User{Nome: "Operador " + matricula, Matricula: matricula, Email: matricula + "@caixa.local"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestOwnerScope(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaixaRepository(db)

	ana := seedUser(t, db, "123")
	bia := seedUser(t, db, "456")

	caixa := &entity.Caixa{UserID: ana.ID}
	require.NoError(t, repo.Create(context.Background(), caixa))

	t.Run("owner sees own caixa", func(t *testing.T) {
		got, err := repo.GetByID(domainRepo.WithOwner(context.Background(), ana.ID), caixa.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, ana.ID, got.UserID)
	})

	t.Run("other operator gets nothing", func(t *testing.T) {
		got, err := repo.GetByID(domainRepo.WithOwner(context.Background(), bia.ID), caixa.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing owner matches nothing", func(t *testing.T) {
		got, err := repo.GetByID(context.Background(), caixa.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("admin skips the scope", func(t *testing.T) {
		ctx := domainRepo.WithSkipOwnerScope(domainRepo.WithOwner(context.Background(), bia.ID), true)
		got, err := repo.GetByID(ctx, caixa.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	id, ok := domainRepo.GetOwnerID(domainRepo.WithOwner(context.Background(), ana.ID))
	assert.True(t, ok)
	assert.Equal(t, ana.ID, id)
}

func TestCaixaRepository_OpenListClose(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaixaRepository(db)
	user := seedUser(t, db, "123")
	ctx := domainRepo.WithOwner(context.Background(), user.ID)

	base := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	old := &entity.Caixa{UserID: user.ID, Status: enum.CaixaStatusFechado, CreatedAt: base}
	current := &entity.Caixa{UserID: user.ID, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, current))

	open, err := repo.GetOpen(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, current.ID, open.ID)

	params := pagination.DefaultPagination()
	items, total, err := repo.List(ctx, user.ID, params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, current.ID, items[0].ID, "newest first")

	closed, err := repo.Close(ctx, current.ID, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, closed)

	// closing twice changes nothing
	closed, err = repo.Close(ctx, current.ID, base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, closed)

	got, err := repo.GetByID(ctx, current.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ClosedAt)
	assert.Equal(t, enum.CaixaStatusFechado, got.Status)
	assert.True(t, got.ClosedAt.Equal(base.Add(2*time.Hour)))

	open, err = repo.GetOpen(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestCaixaRepository_OneOpenPerOperator(t *testing.T) {
	db := newTestDB(t)
	repo := NewCaixaRepository(db)
	user := seedUser(t, db, "123")
	ctx := domainRepo.WithOwner(context.Background(), user.ID)

	first := &entity.Caixa{UserID: user.ID}
	require.NoError(t, repo.Create(ctx, first))
	assert.Error(t, repo.Create(ctx, &entity.Caixa{UserID: user.ID}), "second open caixa")

	// closed caixas do not count
	require.NoError(t, repo.Create(ctx, &entity.Caixa{UserID: user.ID, Status: enum.CaixaStatusFechado}))

	closed, err := repo.Close(ctx, first.ID, time.Now())
	require.NoError(t, err)
	require.True(t, closed)
	assert.NoError(t, repo.Create(ctx, &entity.Caixa{UserID: user.ID}))

	// other operators are unaffected
	other := seedUser(t, db, "456")
	assert.NoError(t, repo.Create(ctx, &entity.Caixa{UserID: other.ID}))
}

func TestLancamentoAndSangriaRepositories(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "123")
	ctx := domainRepo.WithOwner(context.Background(), user.ID)

	caixa := &entity.Caixa{UserID: user.ID}
	require.NoError(t, NewCaixaRepository(db).Create(ctx, caixa))

	lancamentos := NewLancamentoRepository(db)
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	second := &entity.Lancamento{CaixaID: caixa.ID, UserID: user.ID, DataCaixa: "2024-03-05", Valor: decimal.NewFromInt(20), CreatedAt: base.Add(time.Minute)}
	first := &entity.Lancamento{CaixaID: caixa.ID, UserID: user.ID, DataCaixa: "2024-03-05", Valor: decimal.NewFromInt(10), CreatedAt: base}
	require.NoError(t, lancamentos.Create(ctx, second))
	require.NoError(t, lancamentos.Create(ctx, first))

	items, err := lancamentos.ListByCaixa(ctx, caixa.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID, "oldest first")
	assert.True(t, items[1].Valor.Equal(decimal.NewFromInt(20)))

	got, err := lancamentos.GetByID(ctx, caixa.ID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = lancamentos.GetByID(ctx, uuid.New(), first.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "lancamento belongs to another caixa")

	sangrias := NewSangriaRepository(db)
	require.NoError(t, sangrias.Create(ctx, &entity.Sangria{CaixaID: caixa.ID, UserID: user.ID, Valor: decimal.NewFromInt(5), Motivo: "troco"}))

	list, err := sangrias.ListByCaixa(ctx, caixa.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "troco", list[0].Motivo)

	list, err = sangrias.ListByCaixa(domainRepo.WithOwner(context.Background(), uuid.New()), caixa.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "123")

	got, err := repo.GetByMatricula(ctx, "123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	got, err = repo.GetByEmail(ctx, "nobody@caixa.local")
	require.NoError(t, err)
	assert.Nil(t, got)

	user.Nome = "Ana Souza"
	require.NoError(t, repo.Update(ctx, user))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", got.Nome)
}

func TestIdempotencyRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	fresh := &entity.IdempotencyKey{Key: "k1", UserID: userID, Endpoint: "POST /x", ResponseCode: 201, ExpiresAt: time.Now().Add(time.Hour)}
	stale := &entity.IdempotencyKey{Key: "k2", UserID: userID, Endpoint: "POST /x", ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, fresh))
	require.NoError(t, repo.Create(ctx, stale))

	got, err := repo.GetByKey(ctx, "k1", userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	got, err = repo.GetByKey(ctx, "k1", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got, "keys are per operator")

	require.NoError(t, repo.DeleteExpired(ctx))
	got, err = repo.GetByKey(ctx, "k2", userID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
