package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/client"
	"github.com/yourorg/buildbid/internal/model"
	"github.com/yourorg/buildbid/internal/storage"
)

// FloorPlanStore is the persistence surface for generated floor plans.
type FloorPlanStore interface {
	Create(ctx context.Context, plan *model.FloorPlan) error
	GetByID(ctx context.Context, id string) (*model.FloorPlan, error)
	ListByUser(ctx context.Context, userID string) ([]model.FloorPlan, error)
}

// ImageGenerator produces an image from a textual prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*client.GeneratedImage, error)
}

// FloorPlanService handles AI floor plan generation and persistence
type FloorPlanService struct {
	plans     FloorPlanStore
	generator ImageGenerator
	store     storage.Storage
	logger    *zap.Logger
}

// NewFloorPlanService creates a new floor plan service
func NewFloorPlanService(plans FloorPlanStore, generator ImageGenerator, store storage.Storage, logger *zap.Logger) *FloorPlanService {
	return &FloorPlanService{
		plans:     plans,
		generator: generator,
		store:     store,
		logger:    logger,
	}
}

// Generate builds the drafting prompt, requests an image, stores it, and
// records the plan
func (s *FloorPlanService) Generate(ctx context.Context, userID string, req *model.FloorPlanRequest) (*model.FloorPlan, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	rooms := req.Rooms
	if rooms <= 0 {
		rooms = 3
	}
	sqft := req.Sqft
	if sqft <= 0 {
		sqft = 2000
	}
	style := req.Style
	if style == "" {
		style = "modern"
	}

	prompt := buildFloorPlanPrompt(req.Prompt, rooms, sqft, style)

	image, err := s.generator.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	planID := uuid.NewString()
	path := fmt.Sprintf("floor-plans/%s/%s%s", userID, planID, extensionFor(image.MimeType))

	stored, err := s.store.Store(ctx, path, image.MimeType, image.Data)
	if err != nil {
		return nil, err
	}

	plan := &model.FloorPlan{
		ID:          planID,
		UserID:      userID,
		Rooms:       rooms,
		Sqft:        sqft,
		Style:       style,
		ImageURL:    stored.URL,
		StoragePath: stored.Path,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Prompt != "" {
		plan.Prompt = &req.Prompt
	}

	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("generated floor plan",
		zap.String("id", plan.ID),
		zap.String("user_id", userID),
		zap.Int("sqft", sqft))

	return plan, nil
}

// ListByUser retrieves a user's generated plans, newest first
func (s *FloorPlanService) ListByUser(ctx context.Context, userID string) ([]model.FloorPlan, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	return s.plans.ListByUser(ctx, userID)
}

// Get retrieves one of the caller's plans
func (s *FloorPlanService) Get(ctx context.Context, userID, planID string) (*model.FloorPlan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNotFound
	}
	if plan.UserID != userID {
		return nil, ErrForbidden
	}
	return plan, nil
}

// buildFloorPlanPrompt assembles the drafting instructions sent to the
// image provider
func buildFloorPlanPrompt(extra string, rooms, sqft int, style string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Create a professional architectural floor plan in technical drawing style.

SPECIFICATIONS:
- House size: %d square feet
- Bedrooms: %d
- Style: %s
`, sqft, rooms, style)
	if extra != "" {
		fmt.Fprintf(&b, "- Additional requirements: %s\n", extra)
	}
	b.WriteString(`
DRAWING REQUIREMENTS:
- Use clean black lines on white background
- Draw walls as double lines (8-12 inches thick)
- Show all doors with proper swing arcs
- Include windows as breaks in walls with sill indicators
- Label each room clearly with dimensions in feet and inches
- Include furniture layout (beds, sofas, tables, kitchen appliances)
- Show kitchen counters, bathroom fixtures, and closets
- Add compass rose indicating North direction
- Include scale bar (1/4" = 1'-0")

LAYOUT STANDARDS:
- Main entrance with foyer/entry area
- Open-concept living/dining/kitchen if modern style
- Master bedroom with en-suite bathroom
- Secondary bedrooms with adequate closet space
- Proper hallway widths (36" minimum)
- Standard door widths (30"-36")
- Realistic room proportions and flow

Style: Clean architectural drafting, professional, black and white technical drawing.`)
	return b.String()
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
