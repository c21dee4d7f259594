package auth

import (
	"context"
	"sync"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase autoridad de sesiones: verifica credenciales de administrador y emite/valida tokens.
type AuthUseCase struct {
	adminRepo repository.AdminRepository
	sessions  *SessionStore
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(adminRepo repository.AdminRepository, sessions *SessionStore) *AuthUseCase {
	return &AuthUseCase{adminRepo: adminRepo, sessions: sessions}
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// dummySecretHash hash usado cuando el administrador no existe, para que ambos fallos cuesten
// una comparación bcrypt.
func dummySecretHash() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tienda-api-dummy-secret"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// HashSecret genera el hash bcrypt de un secreto de administrador (aprovisionamiento).
func HashSecret(secret string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate devuelve true si adminID existe y secret coincide con su hash.
// Un id inexistente y un secreto incorrecto son indistinguibles para el llamador.
func (uc *AuthUseCase) Authenticate(ctx context.Context, adminID, secret string) (bool, error) {
	if adminID == "" || secret == "" {
		return false, nil
	}
	admin, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return false, domain.Storage(err)
	}
	hash := dummySecretHash()
	if admin != nil {
		hash = []byte(admin.SecretHash)
	}
	// Siempre se compara contra algún hash para no revelar si el id existe.
	match := bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
	return admin != nil && match, nil
}

// IssueSession emite un token de sesión para el administrador.
func (uc *AuthUseCase) IssueSession(adminID string) string {
	return uc.sessions.Issue(adminID)
}

// ValidateSession devuelve el administrador de un token vigente.
func (uc *AuthUseCase) ValidateSession(token string) (string, bool) {
	return uc.sessions.Validate(token)
}

// Logout revoca el token.
func (uc *AuthUseCase) Logout(token string) bool {
	return uc.sessions.Revoke(token)
}

// Login verifica credenciales y emite un token. Devuelve ErrUnauthorized si no coinciden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	ok, err := uc.Authenticate(ctx, in.ID, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIncorrectLogin
	}
	return &dto.LoginResponse{Token: uc.IssueSession(in.ID)}, nil
}

// ErrIncorrectLogin credenciales inválidas; errors.Is(err, domain.ErrUnauthorized) es true.
var ErrIncorrectLogin error = incorrectLogin{}

type incorrectLogin struct{}

func (incorrectLogin) Error() string        { return dto.MsgIncorrectLogin }
func (incorrectLogin) Is(target error) bool { return target == domain.ErrUnauthorized }
