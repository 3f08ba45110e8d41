package user

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	meetingRepo "talentsync/database/repository/meeting"
	slotRepo "talentsync/database/repository/slot"
	userRepo "talentsync/database/repository/user"
	"talentsync/models"
	"talentsync/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

const (
	directoryCacheKey = "directory:candidates"
	directoryCacheTTL = 30 * time.Second
)

// Recoverable outcomes.
var (
	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials means the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound means the account does not exist.
	ErrNotFound = errors.New("user not found")
)

// AccountService handles registration, login and the recruiter-facing
// candidate directory.
type AccountService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Revoke(ctx context.Context, userID string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListCandidates(ctx context.Context) ([]models.CandidateSummary, error)
	CandidateDetail(ctx context.Context, recruiterID, candidateID string) (*models.User, string, []models.Meeting, error)
}

// DefaultAccountService implements AccountService.
type DefaultAccountService struct {
	Repo     userRepo.UserRepository
	Meetings meetingRepo.MeetingRepository
	Slots    slotRepo.SlotRepository
}

// Register creates a recruiter or candidate account and issues a token.
func (s *DefaultAccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if account.Role == models.RoleCandidate {
		account.Status = models.CandidateStatusAvailable
	}

	if err := s.Repo.Create(ctx, account); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueToken(ctx, account)
}

// Login authenticates an account and issues a token.
func (s *DefaultAccountService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	account, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, account)
}

func (s *DefaultAccountService) issueToken(ctx context.Context, account *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(account.ID, account.Email, account.Role, tokenTTL)
	if err != nil {
		return nil, err
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, account.ID, tokenHash); err != nil {
		return nil, err
	}

	// Prime the auth cache so the middleware can verify without a DB trip.
	cacheKey := utils.AuthCachePrefix + account.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to prime auth cache",
			zap.String("userID", account.ID), zap.Error(err))
	}

	account.TokenHash = ""
	return &models.AuthResponse{Token: token, User: *account}, nil
}

// Revoke invalidates the account's current token.
func (s *DefaultAccountService) Revoke(ctx context.Context, userID string) error {
	if err := s.Repo.SetTokenHash(ctx, userID, ""); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	cacheKey := utils.AuthCachePrefix + userID
	if err := utils.GetAuthCacheClient().Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to clear auth cache",
			zap.String("userID", userID), zap.Error(err))
	}
	return nil
}

// GetByID retrieves an account.
func (s *DefaultAccountService) GetByID(ctx context.Context, id string) (*models.User, error) {
	account, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// ListCandidates returns the directory rows recruiters browse. The listing
// is advisory, so it is served from a short-lived cache; booking decisions
// always go back to the slot store.
func (s *DefaultAccountService) ListCandidates(ctx context.Context) ([]models.CandidateSummary, error) {
	cache := utils.GetCacheClient()
	if raw, err := cache.Get(ctx, directoryCacheKey).Result(); err == nil {
		var cached []models.CandidateSummary
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return cached, nil
		}
	}

	candidates, err := s.Repo.ListByRole(ctx, models.RoleCandidate)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.CandidateSummary, 0, len(candidates))
	for _, c := range candidates {
		status := c.Status
		if status == "" {
			status = models.CandidateStatusAvailable
		}
		summaries = append(summaries, models.CandidateSummary{
			ID:                 c.ID,
			Name:               c.Name,
			Email:              c.Email,
			AvailabilityStatus: status,
			CreatedAt:          c.CreatedAt,
		})
	}

	if raw, err := json.Marshal(summaries); err == nil {
		if err := cache.Set(ctx, directoryCacheKey, raw, directoryCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache candidate directory", zap.Error(err))
		}
	}
	return summaries, nil
}

// CandidateDetail returns one candidate with a derived availability status
// and the meeting history between this recruiter and the candidate. The
// status is advisory; the slot store remains authoritative.
func (s *DefaultAccountService) CandidateDetail(ctx context.Context, recruiterID, candidateID string) (*models.User, string, []models.Meeting, error) {
	candidate, err := s.Repo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, "", nil, ErrNotFound
		}
		return nil, "", nil, err
	}
	if candidate.Role != models.RoleCandidate {
		return nil, "", nil, ErrNotFound
	}

	meetings, err := s.Meetings.ListByPair(ctx, recruiterID, candidateID)
	if err != nil {
		return nil, "", nil, err
	}

	status := "unknown"
	if len(meetings) > 0 {
		switch meetings[0].Status {
		case models.MeetingStatusScheduled:
			status = "scheduled"
		case models.MeetingStatusCompleted:
			status = "interviewed"
		}
	} else {
		slots, err := s.Slots.ListByCandidate(ctx, candidateID, models.SlotStatusAvailable)
		if err != nil {
			return nil, "", nil, err
		}
		status = "unavailable"
		now := time.Now()
		for _, slot := range slots {
			if slot.Interval.Start.After(now) {
				status = "available"
				break
			}
		}
	}
	return candidate, status, meetings, nil
}
