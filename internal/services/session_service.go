package services

import (
	"context"
	"errors"
	"log"
	"time"

	"controle_frete/internal/redis"
	"controle_frete/pkg/portal"
)

var ErrUnauthorized = errors.New("não autenticado")

// PortalVerifier is satisfied by portal.Client.
type PortalVerifier interface {
	VerifySession(ctx context.Context, sessionToken string) (*portal.Session, error)
}

type SessionService interface {
	Verify(ctx context.Context, token string) (*portal.Session, error)
}

// sessionService validates opaque session tokens against the portal, caching
// positive results in Redis so the portal is not hit on every API call.
type sessionService struct {
	portal PortalVerifier
	cache  *redis.Client
	ttl    time.Duration
}

func NewSessionService(portalClient PortalVerifier, cache *redis.Client, ttl time.Duration) SessionService {
	return &sessionService{portal: portalClient, cache: cache, ttl: ttl}
}

func (s *sessionService) Verify(ctx context.Context, token string) (*portal.Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	if s.cache != nil {
		if cached, err := s.cache.GetSession(ctx, token); err == nil {
			return &portal.Session{Username: cached.Username}, nil
		}
	}

	session, err := s.portal.VerifySession(ctx, token)
	if err != nil {
		if errors.Is(err, portal.ErrSessionInvalid) {
			if s.cache != nil {
				s.cache.DeleteSession(ctx, token)
			}
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if s.cache != nil {
		data := &redis.SessionData{Username: session.Username, VerifiedAt: time.Now()}
		if err := s.cache.SetSession(ctx, token, data, s.ttl); err != nil {
			log.Printf("Warning: failed to cache session: %v", err)
		}
	}

	return session, nil
}
