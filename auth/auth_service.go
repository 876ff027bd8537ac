package auth

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/quickqueue/member-auth/members"
	"github.com/quickqueue/member-auth/session"
	"github.com/quickqueue/member-auth/token"
)

const (
	bearerPrefix = "Bearer "

	// Sentinel value stored under a blacklisted access token.
	invalidatedMarker = "invalidated"
)

// SignupRequest carries the fields required to register a new member.
type SignupRequest struct {
	Email       string
	Password    string
	Name        string
	Gender      members.Gender
	Birth       time.Time
	PhoneNumber string
}

// Service orchestrates signup, login, and logout. It owns the business
// invariants and the error taxonomy; storage, hashing, and signing are
// injected collaborators.
type Service struct {
	members  members.Repo
	sessions session.Store
	issuer   *token.Issuer
	hasher   members.PasswordHasher

	nowTime             func() time.Time   // nowTime function (injectable for testing)
	passwordPolicy      func(string) error // optional signup password check
	blockWithdrawnLogin bool
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithPasswordPolicy enforces a password check at signup, e.g.
// members.ValidatePasswordStrength.
func WithPasswordPolicy(policy func(string) error) ServiceOption {
	return func(s *Service) {
		s.passwordPolicy = policy
	}
}

// WithWithdrawnLoginBlocked makes login fail for withdrawn members. Off
// by default: a withdrawn member with a correct password can still log
// in, matching the historic contract.
func WithWithdrawnLoginBlocked(blocked bool) ServiceOption {
	return func(s *Service) {
		s.blockWithdrawnLogin = blocked
	}
}

// NewService initializes a new Service with required dependencies.
// Optional configuration can be provided via options.
func NewService(
	memberRepo members.Repo,
	sessionStore session.Store,
	issuer *token.Issuer,
	hasher members.PasswordHasher,
	options ...ServiceOption,
) (*Service, error) {
	if memberRepo == nil {
		return nil, errors.New("[NewService] member repo is required")
	}
	if sessionStore == nil {
		return nil, errors.New("[NewService] session store is required")
	}
	if issuer == nil {
		return nil, errors.New("[NewService] token issuer is required")
	}
	if hasher == nil {
		return nil, errors.New("[NewService] password hasher is required")
	}

	service := &Service{
		members:  memberRepo,
		sessions: sessionStore,
		issuer:   issuer,
		hasher:   hasher,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Signup registers a new member. An email that belongs to an active
// member fails with ErrDuplicateEmail; one that belongs to a withdrawn
// member fails with ErrWithdrawnEmail and can never be registered again.
// No tokens are issued at signup.
func (s *Service) Signup(req SignupRequest) error {
	existing, err := s.members.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, members.ErrNotFound) {
		return errors.Wrap(err, "[Service.Signup] members.GetByEmail")
	}
	if existing != nil {
		if existing.Withdrawn() {
			return emailError(ErrWithdrawnEmail, req.Email)
		}
		return emailError(ErrDuplicateEmail, req.Email)
	}

	if s.passwordPolicy != nil {
		if err := s.passwordPolicy(req.Password); err != nil {
			return err
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return errors.Wrap(err, "[Service.Signup] hasher.Hash")
	}

	member := &members.Member{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Gender:       req.Gender,
		Birth:        req.Birth,
		PhoneNumber:  req.PhoneNumber,
		JoinedAt:     s.nowTime(),
	}
	if err := s.members.Save(member); err != nil {
		return errors.Wrap(err, "[Service.Signup] members.Save")
	}
	return nil
}

// Login authenticates credentials and mints a token pair. The refresh
// token is stored under the member's email with the refresh expiry as
// TTL, overwriting any prior session: one live refresh token per member.
func (s *Service) Login(ctx context.Context, email, password string) (*token.Pair, error) {
	member, err := s.members.GetByEmail(email)
	if errors.Is(err, members.ErrNotFound) {
		return nil, emailError(ErrAccountNotFound, email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] members.GetByEmail")
	}

	if s.blockWithdrawnLogin && member.Withdrawn() {
		return nil, emailError(ErrWithdrawnEmail, email)
	}

	if !s.hasher.Matches(password, member.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuer.IssuePair(member.Email)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] issuer.IssuePair")
	}

	if err := s.sessions.Set(ctx, member.Email, pair.RefreshToken, s.issuer.RefreshExpiry()); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] sessions.Set")
	}

	return pair, nil
}

// Logout ends the member's live session. The presented access token is
// blacklisted for exactly its remaining lifetime so the entry disappears
// no later than the token would have expired on its own, then the stored
// refresh token is cleared. Without a live session it fails with
// ErrAccountNotFound.
func (s *Service) Logout(ctx context.Context, email, rawAccessToken string) error {
	accessToken := strings.TrimPrefix(rawAccessToken, bearerPrefix)

	stored, err := s.sessions.Get(ctx, email)
	if err != nil {
		return errors.Wrap(err, "[Service.Logout] sessions.Get")
	}
	if stored == "" {
		return emailError(ErrAccountNotFound, email)
	}

	remaining, err := s.issuer.RemainingLifetime(accessToken)
	if err != nil {
		return errors.Wrap(err, "[Service.Logout] issuer.RemainingLifetime")
	}

	if err := s.sessions.Set(ctx, accessToken, invalidatedMarker, remaining); err != nil {
		return errors.Wrap(err, "[Service.Logout] sessions.Set")
	}
	if err := s.sessions.Delete(ctx, email); err != nil {
		return errors.Wrap(err, "[Service.Logout] sessions.Delete")
	}
	return nil
}

// Withdraw soft-deletes a member. The withdrawal date is set once, the
// live session (if any) is cleared, and the email is permanently barred
// from re-registration.
func (s *Service) Withdraw(ctx context.Context, email string) error {
	member, err := s.members.GetByEmail(email)
	if errors.Is(err, members.ErrNotFound) {
		return emailError(ErrAccountNotFound, email)
	}
	if err != nil {
		return errors.Wrap(err, "[Service.Withdraw] members.GetByEmail")
	}
	if member.Withdrawn() {
		return emailError(ErrWithdrawnEmail, email)
	}

	now := s.nowTime()
	member.WithdrawalDate = &now
	if err := s.members.Save(member); err != nil {
		return errors.Wrap(err, "[Service.Withdraw] members.Save")
	}
	if err := s.sessions.Delete(ctx, email); err != nil {
		return errors.Wrap(err, "[Service.Withdraw] sessions.Delete")
	}
	return nil
}

// Authenticate verifies a presented access token for the request layer:
// the token must decode cleanly and must not be blacklisted. It returns
// the identity the token was bound to.
func (s *Service) Authenticate(ctx context.Context, rawAccessToken string) (string, error) {
	accessToken := strings.TrimPrefix(rawAccessToken, bearerPrefix)

	claims, err := s.issuer.Decode(accessToken)
	if err != nil {
		return "", err
	}

	marker, err := s.sessions.Get(ctx, accessToken)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Authenticate] sessions.Get")
	}
	if marker != "" {
		return "", ErrTokenInvalidated
	}

	return claims.Subject, nil
}
