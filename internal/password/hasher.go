package password

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Hasher wraps bcrypt behind a weighted semaphore. Hashing is
// intentionally expensive, and without a bound a burst of
// registrations or logins would pin every CPU and starve unrelated
// requests. The semaphore caps how many hash/compare operations run
// at once; waiters respect request cancellation.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

func NewHasher(cost int, concurrency int64) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("hash concurrency must be positive")
	}

	return &Hasher{cost: cost, sem: semaphore.NewWeighted(concurrency)}, nil
}

func (h *Hasher) Hash(ctx context.Context, plain string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare reports whether plain matches the stored hash.
func (h *Hasher) Compare(ctx context.Context, hash string, plain string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil, nil
}

// DummyCompare burns one bcrypt verification against a fixed hash. The
// login path calls it when no account matches the email so that the
// missing-account and wrong-password failures cost the same.
func (h *Hasher) DummyCompare(ctx context.Context) {
	// bcrypt hash of an unguessable throwaway value.
	const dummyHash = "$2a$12$K0ByB.6YI2/OYrB4fQOYLe6Tv0datUVf6VZ/2Jzwm879BW5K1cHey"
	_, _ = h.Compare(ctx, dummyHash, "")
}
