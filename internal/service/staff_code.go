package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fitchain/gymhub/pkg/crypto"
)

const (
	adminCodePrefix   = "ADM"
	trainerCodePrefix = "TR"
	staffCodeDigits   = 4
	staffCodeAttempts = 10
)

// generateStaffCode produces prefix + 4 random digits, retrying on collision.
// The retry cap bounds termination under high collision rates; callers get
// ErrCodeGenerationExhausted instead of looping forever.
func generateStaffCode(
	ctx context.Context,
	prefix string,
	lookup func(ctx context.Context, code string) error,
) (string, error) {
	for i := 0; i < staffCodeAttempts; i++ {
		digits, err := crypto.RandomDigits(staffCodeDigits)
		if err != nil {
			return "", fmt.Errorf("generate staff code: %w", err)
		}
		code := prefix + digits

		err = lookup(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("check staff code: %w", err)
		}
		// code taken, try again
	}
	return "", ErrCodeGenerationExhausted
}
