package dao

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgres spins up a throwaway Postgres container. Tests that need it
// skip cleanly on machines without a Docker daemon.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=furduncinho_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})
	_ = resource.Expire(180)

	dsn := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=secret dbname=furduncinho_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	var db *gorm.DB

	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, openErr := db.DB()
		if openErr != nil {
			return openErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func TestTicketDAOActiveIndex(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	tickets := NewTicketDAO(db)

	first, err := tickets.Insert(ctx, Ticket{UserID: 1, Amount: 3000})
	require.NoError(t, err)
	require.Equal(t, "pending", first.Status)

	// The partial index allows only one active ticket per user.
	_, err = tickets.Insert(ctx, Ticket{UserID: 1, Amount: 3000})
	assert.ErrorIs(t, err, ErrActiveTicketExists)

	// Other users are unaffected.
	_, err = tickets.Insert(ctx, Ticket{UserID: 2, Amount: 3000})
	require.NoError(t, err)

	// Once the first ticket leaves the active set, inserting works again.
	err = db.Model(&Ticket{}).Where("id = ?", first.ID).Update("status", "cancelled").Error
	require.NoError(t, err)

	_, err = tickets.Insert(ctx, Ticket{UserID: 1, Amount: 3000})
	assert.NoError(t, err)
}

func TestPaymentDAOApprove(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	tickets := NewTicketDAO(db)
	payments := NewPaymentDAO(db)

	ticket, err := tickets.Insert(ctx, Ticket{UserID: 1, Amount: 3000})
	require.NoError(t, err)

	payment, err := payments.Insert(ctx, Payment{TicketID: ticket.ID, ProofPath: "proof.png", Amount: 3000})
	require.NoError(t, err)

	// One payment row per ticket.
	_, err = payments.Insert(ctx, Payment{TicketID: ticket.ID, ProofPath: "other.png", Amount: 3000})
	assert.ErrorIs(t, err, ErrPaymentExists)

	generatedAt := time.Now()
	err = payments.Approve(ctx, payment.ID, 9, ticket.ID,
		"a1b2c3", "FD047-00000001", "qr.png", generatedAt)
	require.NoError(t, err)

	got, err := tickets.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)
	require.NotNil(t, got.QRCodeHash)
	assert.Equal(t, "a1b2c3", *got.QRCodeHash)
	require.NotNil(t, got.TicketCode)
	assert.Equal(t, "FD047-00000001", *got.TicketCode)

	stored, err := payments.FindByTicketID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, uint(9), *stored.ApprovedBy)

	// Approving again hits the status condition and fails.
	err = payments.Approve(ctx, payment.ID, 9, ticket.ID,
		"d4e5f6", "FD047-00000002", "qr2.png", time.Now())
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	// A late resubmission cannot pull an approved payment back into review.
	err = payments.Resubmit(ctx, payment.ID, "late-proof.png")
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	stored, err = payments.FindByTicketID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)
	assert.Equal(t, "proof.png", stored.ProofPath)
}

func TestPaymentDAOReject(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	tickets := NewTicketDAO(db)
	payments := NewPaymentDAO(db)

	ticket, err := tickets.Insert(ctx, Ticket{UserID: 1, Amount: 3000})
	require.NoError(t, err)

	payment, err := payments.Insert(ctx, Payment{TicketID: ticket.ID, ProofPath: "proof.png", Amount: 3000})
	require.NoError(t, err)

	require.NoError(t, payments.Reject(ctx, payment.ID, "comprovante ilegível"))

	stored, err := payments.FindByTicketID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", stored.Status)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "comprovante ilegível", *stored.RejectionReason)

	// Resubmitting puts the payment back in review and clears the reason.
	require.NoError(t, payments.Resubmit(ctx, payment.ID, "proof-v2.png"))

	stored, err = payments.FindByTicketID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", stored.Status)
	assert.Equal(t, "proof-v2.png", stored.ProofPath)
	assert.Nil(t, stored.RejectionReason)
}

func TestTicketDAOMarkUsedConcurrent(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	tickets := NewTicketDAO(db)
	checkins := NewCheckinLogDAO(db)

	ticket, err := tickets.Insert(ctx, Ticket{UserID: 1, Amount: 3000})
	require.NoError(t, err)

	err = db.Model(&Ticket{}).Where("id = ?", ticket.ID).Updates(map[string]any{
		"status":       "paid",
		"qr_code_hash": "hash-concurrent",
	}).Error
	require.NoError(t, err)

	const scans = 10

	var wg sync.WaitGroup
	var wins int64

	wg.Add(scans)
	for i := 0; i < scans; i++ {
		go func() {
			defer wg.Done()

			won, err := tickets.MarkUsed(ctx, ticket.ID, time.Now(), CheckinLog{
				TicketID:  ticket.ID,
				AdminID:   9,
				Result:    "valid",
				Timestamp: time.Now(),
			})
			if err != nil {
				t.Errorf("MarkUsed: %v", err)
				return
			}
			if won {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)

	got, err := tickets.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "used", got.Status)
	assert.NotNil(t, got.ValidatedAt)

	// Only the winning scan wrote its log; losers log through the caller.
	count, err := checkins.CountByResult(ctx, "valid")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAdminDAOResetEvent(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	users := NewUserDAO(db)
	tickets := NewTicketDAO(db)
	payments := NewPaymentDAO(db)
	checkins := NewCheckinLogDAO(db)
	admin := NewAdminDAO(db)

	adminUser, err := users.Insert(ctx, User{
		Name: "Gaba", Email: "gaba@furduncinho.com", Password: "x", Role: "admin",
		LastSignedIn: time.Now(),
	})
	require.NoError(t, err)

	buyer, err := users.Insert(ctx, User{
		Name: "Maria", Email: "maria@example.com", Password: "x",
		LastSignedIn: time.Now(),
	})
	require.NoError(t, err)

	ticket, err := tickets.Insert(ctx, Ticket{UserID: buyer.ID, Amount: 3000})
	require.NoError(t, err)

	_, err = payments.Insert(ctx, Payment{TicketID: ticket.ID, ProofPath: "proof.png", Amount: 3000})
	require.NoError(t, err)

	_, err = checkins.Insert(ctx, CheckinLog{TicketID: ticket.ID, AdminID: adminUser.ID, Result: "invalid", Timestamp: time.Now()})
	require.NoError(t, err)

	require.NoError(t, admin.ResetEvent(ctx))

	count, err := tickets.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = payments.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Admin accounts survive the reset, everyone else is gone.
	_, err = users.FindByID(ctx, adminUser.ID)
	assert.NoError(t, err)

	_, err = users.FindByID(ctx, buyer.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDAOUniqueEmail(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	users := NewUserDAO(db)

	_, err := users.Insert(ctx, User{
		Name: "Maria", Email: "maria@example.com", Password: "x",
		LastSignedIn: time.Now(),
	})
	require.NoError(t, err)

	_, err = users.Insert(ctx, User{
		Name: "Other Maria", Email: "maria@example.com", Password: "x",
		LastSignedIn: time.Now(),
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}
