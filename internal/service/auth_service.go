package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/vantagesuite/vantage/internal/domain"
	"github.com/vantagesuite/vantage/internal/repository"
	"github.com/vantagesuite/vantage/pkg/hash"
	"github.com/vantagesuite/vantage/pkg/token"
)

// Custom errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenNotFound      = errors.New("token not found")
)

// AuthService owns credential checks, token minting on login and token
// validation for dependent services.
type AuthService struct {
	principalRepo repository.PrincipalRepository
	roleRepo      repository.RoleRepository
	tokenRepo     repository.TokenRepository
	tokenService  *TokenService
}

type LoginRequest struct {
	Email      string `json:"email" form:"email" validate:"required,email"`
	Password   string `json:"password" form:"password" validate:"required,min=8"`
	DeviceName string `json:"device_name" form:"device_name" validate:"omitempty,max=255"`
	RedirectTo string `json:"redirect_to" form:"redirect_to" validate:"omitempty,url"`
}

type LoginResult struct {
	Token string            `json:"token"`
	User  *domain.Principal `json:"user"`
}

func NewAuthService(
	principalRepo repository.PrincipalRepository,
	roleRepo repository.RoleRepository,
	tokenRepo repository.TokenRepository,
	tokenService *TokenService,
) *AuthService {
	return &AuthService{
		principalRepo: principalRepo,
		roleRepo:      roleRepo,
		tokenRepo:     tokenRepo,
		tokenService:  tokenService,
	}
}

// Login authenticates the credentials and mints a token scoped to the
// principal's effective permissions. Unknown email and wrong password collapse
// into the same ErrInvalidCredentials so callers cannot tell which check
// failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, deviceName string) (*LoginResult, error) {
	principal, err := s.principalRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("[AUTH_SERVICE] Login lookup failed for %s: %v", req.Email, err)
		return nil, ErrInvalidCredentials
	}

	valid, err := hash.Verify(req.Password, principal.PasswordHash)
	if err != nil {
		log.Printf("[AUTH_SERVICE] Password verify error for %s: %v", req.Email, err)
		return nil, ErrInvalidCredentials
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if err := s.loadGrants(ctx, principal); err != nil {
		return nil, err
	}

	plain, _, err := s.tokenService.Mint(ctx, principal.ID, deviceName, principal.Permissions)
	if err != nil {
		return nil, err
	}

	// Last-login bookkeeping must not fail the login
	if err := s.principalRepo.UpdateLastLogin(ctx, principal.ID); err != nil {
		log.Printf("[AUTH_SERVICE] Failed to update last login for %s: %v", principal.ID, err)
	}

	return &LoginResult{Token: plain, User: principal}, nil
}

// MintForPrincipal issues a fresh token for an already-authenticated session,
// used by the redirect bridge.
func (s *AuthService) MintForPrincipal(ctx context.Context, summary *domain.PrincipalSummary, deviceName string) (string, error) {
	principal, err := s.principalRepo.GetByID(ctx, summary.ID)
	if err != nil {
		return "", err
	}

	if err := s.loadGrants(ctx, principal); err != nil {
		return "", err
	}

	plain, _, err := s.tokenService.Mint(ctx, principal.ID, deviceName, principal.Permissions)
	if err != nil {
		return "", err
	}

	return plain, nil
}

// ValidateToken answers the validation endpoint contract: whether the
// presented bearer token is currently valid and, if so, who owns it.
// Validation itself never mutates validity; only the last-used timestamp is
// touched.
func (s *AuthService) ValidateToken(ctx context.Context, plain string) (*domain.ValidationResult, error) {
	if err := token.ValidFormat(plain); err != nil {
		return &domain.ValidationResult{Valid: false}, nil
	}

	stored, err := s.tokenRepo.GetByHash(ctx, token.Hash(plain))
	if err != nil {
		return &domain.ValidationResult{Valid: false}, nil
	}

	if !stored.Valid(time.Now()) {
		return &domain.ValidationResult{Valid: false}, nil
	}

	principal, err := s.principalRepo.GetByID(ctx, stored.PrincipalID)
	if err != nil {
		return nil, err
	}
	if err := s.loadGrants(ctx, principal); err != nil {
		return nil, err
	}

	if err := s.tokenRepo.TouchLastUsed(ctx, stored.ID); err != nil {
		log.Printf("[AUTH_SERVICE] Failed to touch token %s: %v", stored.ID, err)
	}

	return &domain.ValidationResult{Valid: true, User: principal.Summary()}, nil
}

// PurgeExpiredTokens hard-deletes tokens past their expiry. Revoked tokens are
// kept until they expire so the audit trail survives.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx, time.Now())
}

// Logout revokes the presented token. A token the store does not know is
// reported as ErrTokenNotFound.
func (s *AuthService) Logout(ctx context.Context, plain string) error {
	if err := s.tokenService.Revoke(ctx, plain); err != nil {
		return ErrTokenNotFound
	}
	return nil
}

// loadGrants resolves the principal's effective grants: role-derived
// permissions through the role repository plus direct grants, deduplicated.
func (s *AuthService) loadGrants(ctx context.Context, principal *domain.Principal) error {
	roles, err := s.principalRepo.GetRoleNames(ctx, principal.ID)
	if err != nil {
		return err
	}

	rolePermissions, err := s.roleRepo.GetPermissionsForRoles(ctx, roles)
	if err != nil {
		return err
	}

	directPermissions, err := s.principalRepo.GetDirectPermissionNames(ctx, principal.ID)
	if err != nil {
		return err
	}

	principal.Roles = roles
	principal.Permissions = mergePermissionNames(rolePermissions, directPermissions)
	return nil
}

func mergePermissionNames(sets ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, set := range sets {
		for _, name := range set {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	return merged
}
