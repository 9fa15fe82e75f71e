package postgresql

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

func TestTranslateProfileError(t *testing.T) {
	emailErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.ErrorIs(t, translateProfileError(emailErr), user.ErrEmailTaken)

	usernameErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	assert.ErrorIs(t, translateProfileError(usernameErr), user.ErrUsernameTaken)

	wrapped := fmt.Errorf("failed to update user profile: %w", emailErr)
	assert.ErrorIs(t, translateProfileError(wrapped), user.ErrEmailTaken)

	assert.Nil(t, translateProfileError(assert.AnError))
	assert.Nil(t, translateProfileError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}))
}
