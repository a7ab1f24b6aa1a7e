package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitlane/nutrition-api/internal/core/domain"
)

// recordTTL is a garbage-collection bound only. It deliberately exceeds
// domain.CodeTTL: code validity is decided lazily from IssuedAt at verify
// time, so an expired-but-present record can still be reported as expired
// rather than missing.
const recordTTL = 24 * time.Hour

// VerificationRepository stores verification records in Redis, one key per
// canonical phone. SET overwrites wholesale, which gives the at-most-one
// live record per phone invariant for free.
type VerificationRepository struct {
	client *redis.Client
}

func NewVerificationRepository(client *redis.Client) *VerificationRepository {
	return &VerificationRepository{client: client}
}

func (r *VerificationRepository) Put(ctx context.Context, rec *domain.VerificationRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal verification record: %w", err)
	}
	if err := r.client.Set(ctx, r.key(rec.Phone), payload, recordTTL).Err(); err != nil {
		return fmt.Errorf("store verification record: %w", err)
	}
	return nil
}

func (r *VerificationRepository) Get(ctx context.Context, phone string) (*domain.VerificationRecord, error) {
	payload, err := r.client.Get(ctx, r.key(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("load verification record: %w", err)
	}

	var rec domain.VerificationRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode verification record: %w", err)
	}
	return &rec, nil
}

func (r *VerificationRepository) Delete(ctx context.Context, phone string) error {
	if err := r.client.Del(ctx, r.key(phone)).Err(); err != nil {
		return fmt.Errorf("delete verification record: %w", err)
	}
	return nil
}

func (r *VerificationRepository) key(phone string) string {
	return "verify:" + phone
}
