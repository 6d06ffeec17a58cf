package apikeys

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/redis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MissingMessage = "API key is missing."
	InvalidMessage = "API key is not valid."
)

type keyStore interface {
	FindByKey(ctx context.Context, key string) (*models.APIKey, error)
	Create(ctx context.Context, key *models.APIKey) error
}

// VerifierParams wires the verifier.
type VerifierParams struct {
	Store    keyStore
	Cache    redis.APIKeyCache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

// Verifier checks shared API keys, remembering positive lookups in Redis when
// a cache is configured. Negative results are never cached.
type Verifier struct {
	store keyStore
	cache redis.APIKeyCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewVerifier validates params and returns a verifier.
func NewVerifier(params VerifierParams) (*Verifier, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("api key store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	cache := params.Cache
	if params.CacheTTL <= 0 {
		cache = nil
	}
	return &Verifier{store: params.Store, cache: cache, ttl: params.CacheTTL, logg: logg}, nil
}

// Verify returns nil when key exists. A blank key is a validation error and an
// unknown key is forbidden.
func (v *Verifier) Verify(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, MissingMessage)
	}

	if v.cache != nil {
		ok, err := v.cache.IsAPIKeyRemembered(ctx, key)
		if err != nil {
			v.logg.Warn(v.logg.WithField(ctx, "error", err.Error()), "apikey.cache_read_failed")
		} else if ok {
			return nil
		}
	}

	if _, err := v.store.FindByKey(ctx, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeForbidden, InvalidMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup api key")
	}

	if v.cache != nil {
		if err := v.cache.RememberAPIKey(ctx, key, v.ttl); err != nil {
			v.logg.Warn(v.logg.WithField(ctx, "error", err.Error()), "apikey.cache_write_failed")
		}
	}
	return nil
}

// Issue generates and stores a fresh key.
func (v *Verifier) Issue(ctx context.Context) (*models.APIKey, error) {
	row := &models.APIKey{
		Key:  strings.ReplaceAll(uuid.NewString(), "-", ""),
		UUID: uuid.NewString(),
	}
	if err := v.store.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store api key")
	}
	return row, nil
}
