// internal/utils/utils_test.go
package utils

import (
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		limit    string
		expected PaginationParams
	}{
		{"defaults", "", "", PaginationParams{Page: 0, Limit: 24}},
		{"negative page", "-3", "24", PaginationParams{Page: 0, Limit: 24}},
		{"garbage", "abc", "xyz", PaginationParams{Page: 0, Limit: 24}},
		{"zero limit", "1", "0", PaginationParams{Page: 1, Limit: 24}},
		{"small limit", "2", "5", PaginationParams{Page: 2, Limit: 12}},
		{"negative limit", "0", "-5", PaginationParams{Page: 0, Limit: 12}},
		{"large limit", "0", "500", PaginationParams{Page: 0, Limit: 48}},
		{"in range", " 4 ", " 30 ", PaginationParams{Page: 4, Limit: 30}},
		{"page past int range", "99999999999999999999", "24", PaginationParams{Page: MaxBrowsePage, Limit: 24}},
		{"page below int range", "-99999999999999999999", "24", PaginationParams{Page: 0, Limit: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePagination(tt.page, tt.limit))
		})
	}
}

func TestNormalizeParams(t *testing.T) {
	assert.Equal(t, PaginationParams{Page: 0, Limit: 24}, NormalizeParams(PaginationParams{Page: -1}))
	assert.Equal(t, PaginationParams{Page: 3, Limit: 48}, NormalizeParams(PaginationParams{Page: 3, Limit: 100}))
	assert.Equal(t, 72, PaginationParams{Page: 3, Limit: 24}.Offset())
	assert.Equal(t, PaginationParams{Page: MaxBrowsePage, Limit: 48}, NormalizeParams(PaginationParams{Page: math.MaxInt, Limit: 48}))
}

func TestHugePageOffsetDoesNotOverflow(t *testing.T) {
	for _, raw := range []string{"384307168202282326", "9223372036854775807", "99999999999999999999"} {
		for _, limit := range []string{"12", "24", "48", "1000"} {
			p := NormalizePagination(raw, limit)
			assert.Equal(t, MaxBrowsePage, p.Page, "page=%s limit=%s", raw, limit)
			assert.Positive(t, p.Offset(), "page=%s limit=%s", raw, limit)
		}
	}

	p := NormalizePagination("384307168202282326", "24")
	assert.Equal(t, MaxBrowsePage*24, p.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 24))
	assert.Equal(t, 0, TotalPages(10, 0))
	assert.Equal(t, 1, TotalPages(1, 24))
	assert.Equal(t, 1, TotalPages(24, 24))
	assert.Equal(t, 2, TotalPages(25, 24))
	assert.Equal(t, 5, TotalPages(49, 12))
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, SplitCSV(""))
	assert.Nil(t, SplitCSV(" , ,"))
	assert.Equal(t, []string{"a", "b"}, SplitCSV(" a,,b , "))
}

func TestSetPaginationHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetPaginationHeaders(c, 49, PaginationParams{Page: 1, Limit: 12})

	assert.Equal(t, "49", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "1", w.Header().Get("X-Page"))
	assert.Equal(t, "12", w.Header().Get("X-Per-Page"))
	assert.Equal(t, "5", w.Header().Get("X-Total-Pages"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("secret123"))
	assert.False(t, IsValidPassword("short1"))
	assert.False(t, IsValidPassword("lettersonly"))
	assert.False(t, IsValidPassword("12345678"))
}

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	Name     string `validate:"notblank"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&signupForm{Email: "a@b.co", Password: "secret123", Name: "Ada"}))

	err := ValidateStruct(&signupForm{Email: "nope", Password: "weak", Name: "  "})
	require.Error(t, err)

	validationErrors := GetValidationErrors(err)
	require.Len(t, validationErrors, 3)
	assert.Equal(t, ValidationError{Field: "email", Tag: "email", Message: "Invalid email format"}, validationErrors[0])
	assert.Equal(t, "password", validationErrors[1].Tag)
	assert.Equal(t, "Name is required", validationErrors[2].Message)

	assert.Empty(t, GetValidationErrors(assert.AnError))
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("utils-test-secret")
	userID := uuid.New()

	token, err := GenerateJWT(userID, "ada@example.com", "seller", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, "bazarco", claims.Issuer)
}

func TestValidateJWTRejects(t *testing.T) {
	SetJWTSecret("utils-test-secret")

	expired, err := GenerateJWT(uuid.New(), "a@b.co", "buyer", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateJWT(expired)
	assert.Error(t, err)

	SetJWTSecret("another-secret")
	other, err := GenerateJWT(uuid.New(), "a@b.co", "buyer", time.Hour)
	require.NoError(t, err)
	SetJWTSecret("utils-test-secret")
	_, err = ValidateJWT(other)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ValidateJWT(unsigned)
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestResetTokenHashing(t *testing.T) {
	token, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	other, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	assert.Equal(t, HashString(token), HashString(token))
	assert.NotEqual(t, token, HashString(token))
	assert.Len(t, HashString(token), 64)
}
