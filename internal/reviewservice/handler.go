package reviewservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/asistecare/siteapi/internal/common"
)

func NewReviewService(db *sql.DB, mb common.MessageProducer, c *common.Cache, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		m:      newReviewModel(db),
		mb:     mb,
		c:      c,
		logger: logger,
	}
}

type CreateReviewRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview stores a public review submission in the pending state. An
// admin has to approve it before it appears on the site. The notification
// event is best effort: a publish failure is logged and swallowed so the
// write itself never fails because of it.
func (s *ReviewService) CreateReview(ctx context.Context, req *CreateReviewRequest) (*Review, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	validateEmail(v, req.Email)
	validateRating(v, req.Rating)
	validateComment(v, req.Comment)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	review := &Review{
		Name:     req.Name,
		Email:    req.Email,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Approved: false,
	}

	if err := s.m.insert(ctx, review); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, review)

	return review, nil
}

func (s *ReviewService) publishCreated(ctx context.Context, review *Review) {
	data, err := json.Marshal(review)
	if err != nil {
		s.logger.Error("could not marshal review event", slog.String("error", err.Error()))
		return
	}

	if err := s.mb.Publish(ctx, data, common.ReviewCreatedKey, common.LeadExchange); err != nil {
		s.logger.Error("could not publish review event", slog.Int("review_id", review.ID), slog.String("error", err.Error()))
	}
}

// GetApprovedReviews returns the public review list, cached until the next
// moderation action.
func (s *ReviewService) GetApprovedReviews(ctx context.Context) ([]PublicReview, error) {
	key := common.CacheKeyApprovedReviews()
	if cached, ok := s.c.Get(key); ok {
		return cached.([]PublicReview), nil
	}

	reviews, err := s.m.getApproved(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, reviews)

	return reviews, nil
}

// GetAllReviews returns every review, pending ones included. Admin surface
// only.
func (s *ReviewService) GetAllReviews(ctx context.Context) ([]Review, error) {
	return s.m.getAll(ctx)
}

func (s *ReviewService) ApproveReview(ctx context.Context, id int) (*Review, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	review, err := s.m.approve(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Flush()

	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.delete(ctx, id); err != nil {
		return err
	}

	s.c.Flush()

	return nil
}
