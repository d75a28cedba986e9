package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkandpages/blog-service/pkg/utils"
)

const accessTokenTTL = time.Hour * 24

// authService implements the single-writer identity policy: the only
// privileged principal is the configured writer email, not any authenticated
// session.
type authService struct {
	logger *zap.Logger
}

func newAuthService(logger *zap.Logger) Auth {
	return &authService{
		logger: logger,
	}
}

func (s *authService) SignIn(email string, password string) (string, error) {
	if !s.IsWriter(email) {
		return "", ErrInvalidCredentials
	}

	wantHash := os.Getenv("WRITER_PASSWORD_HASH")
	gotHash := hashPassword(password)
	if wantHash == "" || subtle.ConstantTimeCompare([]byte(gotHash), []byte(wantHash)) != 1 {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"email": strings.ToLower(strings.TrimSpace(email)),
		"jti": uuid.New().String(),
	}
	token, err := utils.GenerateJWT(claims, []byte(os.Getenv("JWT_SECRET")), accessTokenTTL)
	if err != nil {
		s.logger.Sugar().Errorf("failed to sign access token: %s", err.Error())
		return "", ErrInternal
	}

	return token, nil
}

func (s *authService) IsWriter(email string) bool {
	writer := strings.ToLower(strings.TrimSpace(os.Getenv("WRITER_EMAIL")))
	if writer == "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(email)) == writer
}

func hashPassword(password string) string {
	h := sha512.Sum512([]byte(password))
	return hex.EncodeToString(h[:])
}
