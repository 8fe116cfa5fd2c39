package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"device-support-be/internal/config"
	"device-support-be/internal/constant"
	"device-support-be/internal/dto"
	"device-support-be/internal/entity"
	"device-support-be/internal/pkg/apperrors"
	"device-support-be/internal/repository/contract"
	"device-support-be/internal/repository/specification"
	"device-support-be/internal/repository/unitofwork"
	"device-support-be/pkg/extractor"
	"device-support-be/pkg/genai"
	"device-support-be/pkg/retrieval"
	"device-support-be/pkg/synthesis"
	"device-support-be/pkg/telemetry"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// scriptedGenerator replies in order: one extraction call then one synthesis
// call per Analyze invocation.
type scriptedGenerator struct {
	replies  []*genai.Result
	requests [][]*genai.Content
}

func (g *scriptedGenerator) GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.Result, error) {
	g.requests = append(g.requests, contents)
	if len(g.requests) <= len(g.replies) {
		return g.replies[len(g.requests)-1], nil
	}
	return &genai.Result{Text: "ok"}, nil
}

type fakeProvider struct {
	vector []float32
	err    error
	calls  int
}

func (p *fakeProvider) EmbedImage(ctx context.Context, data []byte, mimeType string) ([]float32, error) {
	p.calls++
	return p.vector, p.err
}

func (p *fakeProvider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	p.calls++
	return p.vector, p.err
}

type fakeDocumentRepo struct {
	searchCalls  int
	gotLimit     int
	gotThreshold float64
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.RagDocument) error { return nil }
func (r *fakeDocumentRepo) Update(ctx context.Context, doc *entity.RagDocument) error { return nil }
func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (r *fakeDocumentRepo) Deactivate(ctx context.Context, id uuid.UUID) error        { return nil }
func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RagDocument, error) {
	return nil, nil
}
func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RagDocument, error) {
	return nil, nil
}
func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeDocumentRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, category string, threshold float64) ([]*contract.ScoredDocument, error) {
	r.searchCalls++
	r.gotLimit = limit
	r.gotThreshold = threshold
	return nil, nil
}

type fakeSessionRepo struct {
	byToken map[string]*entity.AnalysisSession
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.AnalysisSession) error {
	r.byToken[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisSession, error) {
	for _, spec := range specs {
		if byToken, ok := spec.(specification.ByToken); ok {
			return r.byToken[byToken.Token], nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.byToken)), nil
}

type fakeTurnRepo struct {
	turns []*entity.SessionTurn
}

func (r *fakeTurnRepo) Create(ctx context.Context, turn *entity.SessionTurn) error {
	r.turns = append(r.turns, turn)
	return nil
}

func (r *fakeTurnRepo) CreateBulk(ctx context.Context, turns []*entity.SessionTurn) error {
	r.turns = append(r.turns, turns...)
	return nil
}

func (r *fakeTurnRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	kept := r.turns[:0]
	for _, turn := range r.turns {
		if turn.SessionId != sessionId {
			kept = append(kept, turn)
		}
	}
	r.turns = kept
	return nil
}

func (r *fakeTurnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionTurn, error) {
	var sessionId uuid.UUID
	for _, spec := range specs {
		if bySession, ok := spec.(specification.BySessionID); ok {
			if id, ok := bySession.SessionID.(uuid.UUID); ok {
				sessionId = id
			}
		}
	}
	matched := make([]*entity.SessionTurn, 0, len(r.turns))
	for _, turn := range r.turns {
		if turn.SessionId == sessionId {
			matched = append(matched, turn)
		}
	}
	return matched, nil
}

func (r *fakeTurnRepo) MaxPosition(ctx context.Context, sessionId uuid.UUID) (int, error) {
	max := -1
	for _, turn := range r.turns {
		if turn.SessionId == sessionId && turn.Position > max {
			max = turn.Position
		}
	}
	return max, nil
}

type fakePromptRepo struct {
	byKey map[string]*entity.AnalysisPrompt
}

func (r *fakePromptRepo) Create(ctx context.Context, prompt *entity.AnalysisPrompt) error {
	r.byKey[prompt.Key] = prompt
	return nil
}

func (r *fakePromptRepo) FindOneByKey(ctx context.Context, key string) (*entity.AnalysisPrompt, error) {
	return r.byKey[key], nil
}

func (r *fakePromptRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisPrompt, error) {
	return nil, nil
}

type fakeUnitOfWork struct {
	sessions *fakeSessionRepo
	turns    *fakeTurnRepo
	prompts  *fakePromptRepo
	docs     *fakeDocumentRepo
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository       { return f.docs }
func (f *fakeUnitOfWork) SessionRepository() contract.SessionRepository         { return f.sessions }
func (f *fakeUnitOfWork) SessionTurnRepository() contract.SessionTurnRepository { return f.turns }
func (f *fakeUnitOfWork) CategoryRepository() contract.CategoryRepository       { return nil }
func (f *fakeUnitOfWork) AnalysisPromptRepository() contract.AnalysisPromptRepository {
	return f.prompts
}
func (f *fakeUnitOfWork) PipelineEventRepository() contract.PipelineEventRepository { return nil }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type analysisFixture struct {
	gen      *scriptedGenerator
	provider *fakeProvider
	docs     *fakeDocumentRepo
	turns    *fakeTurnRepo
	prompts  *fakePromptRepo
	cache    *gocache.Cache
	service  IAnalysisService
}

func newAnalysisFixture(replies ...*genai.Result) *analysisFixture {
	gen := &scriptedGenerator{replies: replies}
	provider := &fakeProvider{vector: []float32{1, 0, 0}}
	docs := &fakeDocumentRepo{}
	uow := &fakeUnitOfWork{
		sessions: &fakeSessionRepo{byToken: map[string]*entity.AnalysisSession{}},
		turns:    &fakeTurnRepo{},
		prompts:  &fakePromptRepo{byKey: map[string]*entity.AnalysisPrompt{}},
		docs:     docs,
	}
	cache := gocache.New(time.Minute, time.Minute)
	log := noopLogger{}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	recorder := telemetry.NewRecorder(pubSub, "PIPELINE_STAGE_EVENTS", nil, telemetry.NewRingSink(16))

	svc := NewAnalysisService(
		fakeFactory{uow: uow},
		extractor.NewExtractor(gen),
		provider,
		retrieval.NewRetriever(docs, log),
		synthesis.NewSynthesizer(gen),
		recorder,
		cache,
		config.PipelineConfig{SimilarityThreshold: 0.5, RetrievalTopK: 5},
		log,
	)

	return &analysisFixture{
		gen:      gen,
		provider: provider,
		docs:     docs,
		turns:    uow.turns,
		prompts:  uow.prompts,
		cache:    cache,
		service:  svc,
	}
}

func validImageBase64() string {
	return base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff})
}

func TestAnalyzeRejectsUnsupportedMimeType(t *testing.T) {
	f := newAnalysisFixture()

	_, err := f.service.Analyze(context.Background(), &dto.AnalyzeRequest{
		ImageBase64: validImageBase64(),
		MimeType:    "image/gif",
	})
	if !errors.Is(err, &apperrors.ValidationError{}) {
		t.Fatalf("got %v, want validation error", err)
	}
	if len(f.gen.requests) != 0 || f.provider.calls != 0 || f.docs.searchCalls != 0 {
		t.Fatal("rejected request must not reach any external service")
	}
}

func TestAnalyzeRejectsInvalidImageData(t *testing.T) {
	f := newAnalysisFixture()

	_, err := f.service.Analyze(context.Background(), &dto.AnalyzeRequest{
		ImageBase64: "not base64 at all!!!",
		MimeType:    "image/png",
	})
	if !errors.Is(err, &apperrors.ValidationError{}) {
		t.Fatalf("got %v, want validation error", err)
	}
	if len(f.gen.requests) != 0 || f.provider.calls != 0 {
		t.Fatal("rejected request must not reach any external service")
	}
}

func TestAnalyzeRequiresGenerativeClients(t *testing.T) {
	f := newAnalysisFixture()
	svc := NewAnalysisService(
		fakeFactory{uow: &fakeUnitOfWork{}},
		nil,
		nil,
		retrieval.NewRetriever(f.docs, noopLogger{}),
		nil,
		telemetry.NewRecorder(gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}), "PIPELINE_STAGE_EVENTS", nil),
		f.cache,
		config.PipelineConfig{},
		noopLogger{},
	)

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{
		ImageBase64: validImageBase64(),
		MimeType:    "image/jpeg",
	})
	if !errors.Is(err, &apperrors.ConfigurationError{}) {
		t.Fatalf("got %v, want configuration error", err)
	}
}

func TestAnalyzeAppliesCategoryOverride(t *testing.T) {
	f := newAnalysisFixture(
		&genai.Result{Text: `{"primary_category": "printer", "urgency_level": "low"}`},
		&genai.Result{Text: "Check the cable first."},
	)

	resp, err := f.service.Analyze(context.Background(), &dto.AnalyzeRequest{
		ImageBase64: validImageBase64(),
		MimeType:    "image/jpeg",
		Category:    "router",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ExtractedContext.PrimaryCategory != "router" {
		t.Fatalf("got category %q, want the requested override", resp.ExtractedContext.PrimaryCategory)
	}
	if resp.Response != "Check the cable first." {
		t.Fatalf("got response %q", resp.Response)
	}
	if resp.SessionToken == "" {
		t.Fatal("a session token must be issued when the caller omits one")
	}
}

func TestAnalyzeThreadsSessionHistory(t *testing.T) {
	f := newAnalysisFixture(
		&genai.Result{Text: `{"primary_category": "printer"}`},
		&genai.Result{Text: "Check the rear tray."},
		&genai.Result{Text: `{"primary_category": "printer"}`},
		&genai.Result{Text: "Replace the roller."},
	)
	ctx := context.Background()

	first, err := f.service.Analyze(ctx, &dto.AnalyzeRequest{
		ImageBase64:  validImageBase64(),
		MimeType:     "image/jpeg",
		UserText:     "printer jammed",
		SessionToken: "support-1",
	})
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.SessionToken != "support-1" {
		t.Fatalf("got token %q", first.SessionToken)
	}

	second, err := f.service.Analyze(ctx, &dto.AnalyzeRequest{
		ImageBase64:  validImageBase64(),
		MimeType:     "image/jpeg",
		UserText:     "still jammed",
		SessionToken: "support-1",
	})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.Response != "Replace the roller." {
		t.Fatalf("got response %q", second.Response)
	}

	if len(f.turns.turns) != 4 {
		t.Fatalf("got %d stored turns, want 4", len(f.turns.turns))
	}
	wantRoles := []string{
		constant.ChatMessageRoleUser, constant.ChatMessageRoleModel,
		constant.ChatMessageRoleUser, constant.ChatMessageRoleModel,
	}
	wantTexts := []string{"printer jammed", "Check the rear tray.", "still jammed", "Replace the roller."}
	for i, turn := range f.turns.turns {
		if turn.Position != i {
			t.Fatalf("turn %d stored at position %d", i, turn.Position)
		}
		if turn.Role != wantRoles[i] {
			t.Fatalf("turn %d has role %q, want %q", i, turn.Role, wantRoles[i])
		}
		if turn.Text != wantTexts[i] {
			t.Fatalf("turn %d has text %q, want %q", i, turn.Text, wantTexts[i])
		}
	}

	// Generator calls: extraction, synthesis, extraction, synthesis. The
	// second synthesis call must be seeded with the first call's turns.
	if len(f.gen.requests) != 4 {
		t.Fatalf("got %d generator calls, want 4", len(f.gen.requests))
	}
	seeded := f.gen.requests[3]
	if len(seeded) != 3 {
		t.Fatalf("second synthesis got %d contents, want 2 history turns plus the prompt", len(seeded))
	}
	if seeded[0].Role != genai.RoleUser || seeded[0].Parts[0].Text != "printer jammed" {
		t.Fatalf("history turn 0 is %q/%q", seeded[0].Role, seeded[0].Parts[0].Text)
	}
	if seeded[1].Role != genai.RoleModel || seeded[1].Parts[0].Text != "Check the rear tray." {
		t.Fatalf("history turn 1 is %q/%q", seeded[1].Role, seeded[1].Parts[0].Text)
	}
}

func TestAnalyzeInvalidatesSessionCache(t *testing.T) {
	f := newAnalysisFixture(
		&genai.Result{Text: `{"primary_category": "printer"}`},
		&genai.Result{Text: "Clean the nozzle."},
	)
	f.cache.Set("support-2", &dto.ShowSessionResponse{Token: "support-2"}, gocache.DefaultExpiration)

	_, err := f.service.Analyze(context.Background(), &dto.AnalyzeRequest{
		ImageBase64:  validImageBase64(),
		MimeType:     "image/jpeg",
		SessionToken: "support-2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.cache.Get("support-2"); ok {
		t.Fatal("cached session must be invalidated after new turns are stored")
	}
}

func TestAnalyzeUsesPromptRetrievalConfig(t *testing.T) {
	f := newAnalysisFixture(
		&genai.Result{Text: `{"primary_category": "printer"}`},
		&genai.Result{Text: "Inspect the fuser."},
	)
	f.prompts.byKey["deep"] = &entity.AnalysisPrompt{
		Key:                 "deep",
		SimilarityThreshold: 0.7,
		TopK:                8,
		IsActive:            true,
	}

	_, err := f.service.Analyze(context.Background(), &dto.AnalyzeRequest{
		ImageBase64: validImageBase64(),
		MimeType:    "image/jpeg",
		PromptKey:   "deep",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.docs.searchCalls != 1 {
		t.Fatalf("got %d vector searches, want 1", f.docs.searchCalls)
	}
	if f.docs.gotThreshold != 0.7 {
		t.Fatalf("got threshold %v, want the prompt row's 0.7", f.docs.gotThreshold)
	}
	if f.docs.gotLimit != 16 {
		t.Fatalf("got limit %d, want twice the prompt row's top-k", f.docs.gotLimit)
	}
}
