package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"journal-be/internal/entity"
	"journal-be/internal/model"
	"journal-be/internal/repository/specification"
	"journal-be/internal/repository/unitofwork"
	"journal-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.EntryRepository())
	assert.NotNil(t, uow.SystemLogRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Entry CRUD round trip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		entry := &entity.Entry{
			Id:        uuid.New(),
			Title:     "integration probe",
			Content:   "written by the test suite",
			Tags:      []string{"test"},
			UserId:    userId,
			CreatedAt: time.Now(),
		}

		err := uow.EntryRepository().Create(ctx, entry)
		assert.NoError(t, err)

		found, err := uow.EntryRepository().FindOne(ctx,
			specification.ByID{ID: entry.Id},
			specification.UserOwnedBy{UserID: userId},
		)
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, "integration probe", found.Title)
		assert.Equal(t, []string{"test"}, found.Tags)

		// Other users must not see the row.
		foreign, err := uow.EntryRepository().FindOne(ctx,
			specification.ByID{ID: entry.Id},
			specification.UserOwnedBy{UserID: uuid.New()},
		)
		assert.NoError(t, err)
		assert.Nil(t, foreign)

		rows, err := uow.EntryRepository().Delete(ctx,
			specification.ByID{ID: entry.Id},
			specification.UserOwnedBy{UserID: userId},
		)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("Refresh token revocation", func(t *testing.T) {
		ctx := context.Background()

		token := &entity.UserRefreshToken{
			Id:        uuid.New(),
			UserId:    uuid.New(),
			TokenHash: uuid.New().String(),
			ExpiresAt: time.Now().Add(time.Hour),
			CreatedAt: time.Now(),
		}
		assert.NoError(t, uow.UserRepository().CreateRefreshToken(ctx, token))
		defer gormDB.Where("token_hash = ?", token.TokenHash).Delete(&model.UserRefreshToken{})

		assert.NoError(t, uow.UserRepository().RevokeRefreshToken(ctx, token.TokenHash))

		var row model.UserRefreshToken
		assert.NoError(t, gormDB.Where("token_hash = ?", token.TokenHash).First(&row).Error)
		assert.True(t, row.Revoked)
	})

	t.Run("Tag containment search", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		entry := &entity.Entry{
			Id:        uuid.New(),
			Title:     "tagged probe",
			Content:   "c",
			Tags:      []string{"alpha", "beta"},
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		assert.NoError(t, uow.EntryRepository().Create(ctx, entry))
		defer uow.EntryRepository().Delete(ctx, specification.ByID{ID: entry.Id})

		hits, err := uow.EntryRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.HasTag{Tag: "beta"},
		)
		assert.NoError(t, err)
		assert.Len(t, hits, 1)

		misses, err := uow.EntryRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.HasTag{Tag: "gamma"},
		)
		assert.NoError(t, err)
		assert.Len(t, misses, 0)
	})
}
