package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	"github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"github.com/cmcs-dev/claim-workflow/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.New(database.Config{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).Run())
	return db
}

func insertClaim(t *testing.T, db *database.DB, repo *ClaimRepository, claim *entity.Claim) {
	t.Helper()
	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.CreateTx(tx, claim))
	require.NoError(t, tx.Commit())
}

func testClaim(ref string) *entity.Claim {
	now := time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC)
	return &entity.Claim{
		ClaimReference: ref,
		LecturerID:     7,
		MonthWorked:    10,
		YearWorked:     2024,
		HoursWorked:    40,
		HourlyRate:     250,
		TotalAmount:    10000,
		ModuleTaught:   "PROG6212",
		Status:         workflow.StatePending,
		SubmissionDate: now,
		LastModified:   now,
		IsActive:       true,
	}
}

func TestClaimRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewClaimRepository(db.DB, zap.NewNop())

	claim := testClaim("CLM-2410150900-AB12")
	insertClaim(t, db, repo, claim)
	assert.NotZero(t, claim.ID)

	got, err := repo.GetByID(claim.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "CLM-2410150900-AB12", got.ClaimReference)
	assert.Equal(t, workflow.StatePending, got.Status)
	assert.Equal(t, 10000.0, got.TotalAmount)
	assert.True(t, got.IsActive)
}

func TestClaimRepository_GetMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewClaimRepository(db.DB, zap.NewNop())

	got, err := repo.GetByID(12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClaimRepository_UniqueReference(t *testing.T) {
	db := newTestDB(t)
	repo := NewClaimRepository(db.DB, zap.NewNop())

	insertClaim(t, db, repo, testClaim("CLM-2410150900-AB12"))

	dup := testClaim("CLM-2410150900-AB12")
	dup.ModuleTaught = "WEDE6020"
	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.CreateTx(tx, dup)
	assert.Error(t, err, "claim_reference carries a unique constraint")
}

func TestClaimRepository_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewClaimRepository(db.DB, zap.NewNop())

	first := testClaim("CLM-2410150900-0001")
	insertClaim(t, db, repo, first)

	second := testClaim("CLM-2410160900-0002")
	second.SubmissionDate = first.SubmissionDate.Add(24 * time.Hour)
	second.ModuleTaught = "WEDE6020"
	second.Status = workflow.StateApprovedPC
	insertClaim(t, db, repo, second)

	other := testClaim("CLM-2410170900-0003")
	other.LecturerID = 8
	other.SubmissionDate = first.SubmissionDate.Add(48 * time.Hour)
	insertClaim(t, db, repo, other)

	inactive := testClaim("CLM-2410180900-0004")
	inactive.IsActive = false
	inactive.ModuleTaught = "CLDV6211"
	insertClaim(t, db, repo, inactive)

	t.Run("no filter, newest first, inactive hidden", func(t *testing.T) {
		claims, err := repo.List(ListFilter{})
		require.NoError(t, err)
		require.Len(t, claims, 3)
		assert.Equal(t, "CLM-2410170900-0003", claims[0].ClaimReference)
		assert.Equal(t, "CLM-2410160900-0002", claims[1].ClaimReference)
		assert.Equal(t, "CLM-2410150900-0001", claims[2].ClaimReference)
	})

	t.Run("by status", func(t *testing.T) {
		claims, err := repo.List(ListFilter{Status: workflow.StateApprovedPC})
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, "CLM-2410160900-0002", claims[0].ClaimReference)
	})

	t.Run("by lecturer", func(t *testing.T) {
		claims, err := repo.List(ListFilter{LecturerID: 8})
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, "CLM-2410170900-0003", claims[0].ClaimReference)
	})

	t.Run("combined", func(t *testing.T) {
		claims, err := repo.List(ListFilter{Status: workflow.StatePending, LecturerID: 7})
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, "CLM-2410150900-0001", claims[0].ClaimReference)
	})
}

func TestClaimRepository_UpdateStatusTx(t *testing.T) {
	db := newTestDB(t)
	repo := NewClaimRepository(db.DB, zap.NewNop())

	claim := testClaim("CLM-2410150900-AB12")
	insertClaim(t, db, repo, claim)

	modified := claim.LastModified.Add(time.Hour)
	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatusTx(tx, claim.ID, workflow.StateApprovedPC, 10000, modified))
	require.NoError(t, tx.Commit())

	got, err := repo.GetByID(claim.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateApprovedPC, got.Status)
	assert.True(t, got.LastModified.After(claim.SubmissionDate))

	tx, err = db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()
	err = repo.UpdateStatusTx(tx, 99999, workflow.StateApprovedPC, 10000, modified)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestClaimRepository_HasActiveDuplicateTx(t *testing.T) {
	db := newTestDB(t)
	repo := NewClaimRepository(db.DB, zap.NewNop())

	insertClaim(t, db, repo, testClaim("CLM-2410150900-AB12"))

	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	tests := []struct {
		name     string
		lecturer int64
		month    int
		year     int
		module   string
		want     bool
	}{
		{"exact match", 7, 10, 2024, "PROG6212", true},
		{"module differs only by case", 7, 10, 2024, "prog6212", true},
		{"different month", 7, 11, 2024, "PROG6212", false},
		{"different year", 7, 10, 2025, "PROG6212", false},
		{"different module", 7, 10, 2024, "WEDE6020", false},
		{"different lecturer", 8, 10, 2024, "PROG6212", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.HasActiveDuplicateTx(tx, tt.lecturer, tt.month, tt.year, tt.module)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClaimRepository_DeactivateTx(t *testing.T) {
	db := newTestDB(t)
	repo := NewClaimRepository(db.DB, zap.NewNop())

	claim := testClaim("CLM-2410150900-AB12")
	insertClaim(t, db, repo, claim)

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.DeactivateTx(tx, claim.ID, time.Now()))
	require.NoError(t, tx.Commit())

	got, err := repo.GetByID(claim.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "soft-deleted claims stay readable by ID")
	assert.False(t, got.IsActive)

	claims, err := repo.List(ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, claims)
}
