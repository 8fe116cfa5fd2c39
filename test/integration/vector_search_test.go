package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"device-support-be/internal/entity"
	"device-support-be/internal/repository/unitofwork"
	"device-support-be/pkg/database"
	"device-support-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

// Exercises the pgvector cosine path end to end with a synthetic embedding.
// Requires a migrated database; skipped otherwise.
func TestVectorSearch(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
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

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)
	assert.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	vector := make([]float32, embedding.TargetDimensions)
	vector[0] = 1

	doc := &entity.RagDocument{
		Id:        uuid.New(),
		Title:     "Integration Vector Doc",
		Content:   "Synthetic document for cosine search.",
		Category:  "general",
		Embedding: vector,
		IsActive:  true,
	}
	assert.NoError(t, uow.DocumentRepository().Create(ctx, doc))

	// Identical vector, similarity 1.0 clears any threshold.
	scored, err := uow.DocumentRepository().SearchSimilarWithScore(ctx, vector, 5, "", 0.5)
	assert.NoError(t, err)

	found := false
	for _, result := range scored {
		if result.Document.Id == doc.Id {
			found = true
			assert.InDelta(t, 1.0, result.Similarity, 0.01)
		}
	}
	assert.True(t, found, "inserted document should be returned by similarity search")
}
