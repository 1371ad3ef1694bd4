package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/classboard/classboard/internal/app/models"
	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/config"
	"github.com/classboard/classboard/internal/pkg/apperrors"
	pkgauth "github.com/classboard/classboard/internal/pkg/auth"
	"github.com/classboard/classboard/internal/pkg/logger"
)

const githubUserEndpoint = "https://api.github.com/user"

// AuthService defines the interface for GitHub OAuth sign-in and profile access
type AuthService interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*dto.TokenResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
}

// githubProfile is the slice of GitHub's user payload we keep
type githubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   UserStore
	jwtService *pkgauth.JWTService
	oauth      *oauth2.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, jwtService *pkgauth.JWTService, cfg *config.GitHubConfig) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user"},
			Endpoint:     github.Endpoint,
		},
	}
}

// LoginURL builds the GitHub authorize URL for the given anti-forgery state
func (s *authServiceImpl) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code, fetches the GitHub
// profile, upserts the local account and issues a session token. Accounts
// are keyed by the GitHub numeric id, so a renamed GitHub user keeps their
// classes and answers.
func (s *authServiceImpl) HandleCallback(ctx context.Context, code string) (*dto.TokenResponse, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		logger.Warn().Err(err).Msg("OAuth code exchange failed")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "authorization code exchange failed")
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	user := &models.User{
		ID:        strconv.FormatInt(profile.ID, 10),
		Name:      name,
		AvatarURL: profile.AvatarURL,
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("error saving user: %w", err)
	}

	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	logger.Info().Str("userId", user.ID).Msg("User signed in")
	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// GetProfile retrieves the stored profile of the authenticated user
func (s *authServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}, nil
}

// fetchProfile retrieves the user's profile from the GitHub API with the
// exchanged token.
func (s *authServiceImpl) fetchProfile(ctx context.Context, token *oauth2.Token) (*githubProfile, error) {
	client := s.oauth.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubUserEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building profile request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials,
			fmt.Sprintf("profile request returned status %d", resp.StatusCode))
	}

	var profile githubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("error decoding profile: %w", err)
	}

	return &profile, nil
}
