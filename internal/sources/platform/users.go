package platform

import (
	"context"
	"fmt"

	"github.com/playgate/playgate/internal/domain"
	"github.com/playgate/playgate/internal/endpoint"
	"github.com/playgate/playgate/internal/logger"
)

// UserByID fetches a single user and enriches the record with an avatar
// headshot URL. There is exactly one primary source for users, so this is
// a plain lookup with tolerated enrichment, not a strategy chain.
func (s *Service) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	base, err := s.resolver.Resolve(ctx, endpoint.OpUsersAPI)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := s.client.GetJSON(ctx, fmt.Sprintf("%s/v1/users/%d", base, id), &raw); err != nil {
		s.logger.Warn("user lookup failed",
			logger.Int64("id", id),
			logger.Error(err))
		return nil, nil
	}

	user, ok := MapUser(raw)
	if !ok {
		s.logger.Warn("user payload carries no id",
			logger.Int64("id", id))
		return nil, nil
	}

	if user.Avatar == nil {
		if avatar := s.userAvatar(ctx, id); avatar != "" {
			user.Avatar = &avatar
		}
	}
	return &user, nil
}

// userAvatar fetches the avatar headshot URL. Best effort, like gameIcon.
func (s *Service) userAvatar(ctx context.Context, userID int64) string {
	base, err := s.resolver.Resolve(ctx, endpoint.OpThumbnailsAPI)
	if err != nil {
		s.logger.Debug("thumbnail endpoint unresolved", logger.Error(err))
		return ""
	}

	var payload struct {
		Data []struct {
			ImageURL string `json:"imageUrl"`
		} `json:"data"`
	}
	avatarURL := fmt.Sprintf("%s/v1/users/avatar-headshot?userIds=%d&size=150x150&format=Png", base, userID)
	if err := s.client.GetJSON(ctx, avatarURL, &payload); err != nil {
		s.logger.Debug("avatar enrichment failed",
			logger.Int64("id", userID),
			logger.Error(err))
		return ""
	}
	if len(payload.Data) == 0 {
		return ""
	}
	return payload.Data[0].ImageURL
}
