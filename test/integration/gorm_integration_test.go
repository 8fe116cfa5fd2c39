package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"device-support-be/internal/entity"
	"device-support-be/internal/repository/specification"
	"device-support-be/internal/repository/unitofwork"
	"device-support-be/pkg/database"

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

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.SessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Pipeline Event Repository", func(t *testing.T) {
		count, err := uow.PipelineEventRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("PipelineEvent count: %d", count)
	})

	t.Run("Check Transactional Session Turns", func(t *testing.T) {
		ctx := context.Background()
		txUow := uowFactory.NewUnitOfWork(ctx)
		assert.NoError(t, txUow.Begin(ctx))
		defer txUow.Rollback()

		session := &entity.AnalysisSession{
			Id:    uuid.New(),
			Token: "integration-" + uuid.NewString(),
		}
		assert.NoError(t, txUow.SessionRepository().Create(ctx, session))

		turns := []*entity.SessionTurn{
			{Id: uuid.New(), SessionId: session.Id, Position: 0, Role: "user", Text: "the printer is jammed"},
			{Id: uuid.New(), SessionId: session.Id, Position: 1, Role: "model", Text: "open the rear tray"},
		}
		assert.NoError(t, txUow.SessionTurnRepository().CreateBulk(ctx, turns))

		maxPos, err := txUow.SessionTurnRepository().MaxPosition(ctx, session.Id)
		assert.NoError(t, err)
		assert.Equal(t, 1, maxPos)

		loaded, err := txUow.SessionTurnRepository().FindAll(ctx,
			specification.BySessionID{SessionID: session.Id},
			specification.OrderBy{Field: "position"},
		)
		assert.NoError(t, err)
		assert.Len(t, loaded, 2)
		assert.Equal(t, "user", loaded[0].Role)

		// Rolled back by deferred Rollback, nothing persists.
	})
}
