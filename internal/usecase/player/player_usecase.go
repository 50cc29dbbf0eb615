package player

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/saradorri/pokerledger/internal/domain"
	"github.com/saradorri/pokerledger/internal/infrastructure/auth"
	"github.com/saradorri/pokerledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PlayerUseCase implements domain.PlayerUseCase
type PlayerUseCase struct {
	uowFactory  domain.UnitOfWorkFactory
	lockManager domain.LockManager
	jwtService  auth.JWTService
	logger      *logger.Logger
}

// NewPlayerUseCase creates a new player use case
func NewPlayerUseCase(
	uowFactory domain.UnitOfWorkFactory,
	lockManager domain.LockManager,
	jwtService auth.JWTService,
	logger *logger.Logger,
) domain.PlayerUseCase {
	return &PlayerUseCase{
		uowFactory:  uowFactory,
		lockManager: lockManager,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Create registers a new player with an email/password credential
func (uc *PlayerUseCase) Create(ctx context.Context, name, email, password string, initialBankroll domain.Money) (*domain.Player, error) {
	if password == "" {
		return nil, domain.NewValidationError("password", "password is required")
	}

	uow := uc.uowFactory.New()
	if err := uow.Begin(); err != nil {
		return nil, err
	}

	existing, err := uow.Players().FindByEmail(email)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}
	if existing != nil {
		return nil, uc.rollback(uow, domain.NewConflictError("A player with this email already exists"))
	}

	player, err := domain.NewPlayer(name, email, initialBankroll)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}
	player.SetPasswordHash(hashPassword(password))

	if err := uow.Players().Save(player); err != nil {
		return nil, uc.rollback(uow, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	uc.logger.Info("Player created", zap.String("playerID", player.ID().String()))
	return player, nil
}

// CreateFromExternalAccount registers a player sourced from an upstream
// account. Such players authenticate upstream and carry no local password.
func (uc *PlayerUseCase) CreateFromExternalAccount(ctx context.Context, name, email, externalID string, initialBankroll domain.Money) (*domain.Player, error) {
	uow := uc.uowFactory.New()
	if err := uow.Begin(); err != nil {
		return nil, err
	}

	existing, err := uow.Players().FindByExternalID(externalID)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}
	if existing != nil {
		return nil, uc.rollback(uow, domain.NewConflictError("A player is already linked to this account"))
	}

	player, err := domain.NewPlayerFromExternalAccount(name, email, externalID, initialBankroll)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uow.Players().Save(player); err != nil {
		return nil, uc.rollback(uow, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	uc.logger.Info("Player created from external account",
		zap.String("playerID", player.ID().String()),
		zap.String("externalID", externalID))
	return player, nil
}

// Authenticate verifies credentials and issues a JWT token
func (uc *PlayerUseCase) Authenticate(ctx context.Context, email, password string) (string, *domain.Player, error) {
	uow := uc.uowFactory.New()
	player, err := uow.Players().FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if player == nil || player.PasswordHash() == "" || player.PasswordHash() != hashPassword(password) {
		return "", nil, domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized, nil)
	}

	token, err := uc.jwtService.GenerateToken(player.ID().String(), player.Name())
	if err != nil {
		return "", nil, domain.NewInternalError("Failed to generate token", err)
	}
	return token, player, nil
}

// GetByID returns a player by id
func (uc *PlayerUseCase) GetByID(ctx context.Context, id domain.PlayerID) (*domain.Player, error) {
	uow := uc.uowFactory.New()
	return uc.getPlayer(uow, id)
}

// UpdateName changes the player's display name
func (uc *PlayerUseCase) UpdateName(ctx context.Context, id domain.PlayerID, name string) (*domain.Player, error) {
	return uc.update(ctx, id, func(p *domain.Player) error {
		return p.UpdateName(name)
	})
}

// UpdateEmail changes the player's email address
func (uc *PlayerUseCase) UpdateEmail(ctx context.Context, id domain.PlayerID, email string) (*domain.Player, error) {
	return uc.update(ctx, id, func(p *domain.Player) error {
		return p.UpdateEmail(email)
	})
}

// LinkExternalAccount attaches an upstream account to the player. A player
// can be linked at most once.
func (uc *PlayerUseCase) LinkExternalAccount(ctx context.Context, id domain.PlayerID, externalID string) (*domain.Player, error) {
	return uc.update(ctx, id, func(p *domain.Player) error {
		return p.LinkExternalAccount(externalID)
	})
}

// AdjustBankroll applies a signed correction to the player's bankroll,
// covering deposits and withdrawals made outside any session.
func (uc *PlayerUseCase) AdjustBankroll(ctx context.Context, id domain.PlayerID, amount domain.Money) (*domain.Player, error) {
	return uc.update(ctx, id, func(p *domain.Player) error {
		return p.AdjustBankroll(amount)
	})
}

// Delete removes a player. Players with an active session cannot be deleted.
func (uc *PlayerUseCase) Delete(ctx context.Context, id domain.PlayerID) error {
	if err := uc.lockManager.Lock(ctx, id); err != nil {
		return domain.NewInternalError("Failed to acquire player lock", err)
	}
	defer uc.lockManager.Unlock(id)

	uow := uc.uowFactory.New()
	if err := uow.Begin(); err != nil {
		return err
	}

	if _, err := uc.getPlayer(uow, id); err != nil {
		return uc.rollback(uow, err)
	}

	active, err := uow.Sessions().FindActiveByPlayerID(id)
	if err != nil {
		return uc.rollback(uow, err)
	}
	if active != nil {
		return uc.rollback(uow, domain.NewBusinessError(domain.ErrCodeActiveSessionExists, "Player has an active session"))
	}

	if err := uow.Players().Delete(id); err != nil {
		return uc.rollback(uow, err)
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	uc.logger.Info("Player deleted", zap.String("playerID", id.String()))
	return nil
}

func (uc *PlayerUseCase) update(ctx context.Context, id domain.PlayerID, mutate func(*domain.Player) error) (*domain.Player, error) {
	if err := uc.lockManager.Lock(ctx, id); err != nil {
		return nil, domain.NewInternalError("Failed to acquire player lock", err)
	}
	defer uc.lockManager.Unlock(id)

	uow := uc.uowFactory.New()
	if err := uow.Begin(); err != nil {
		return nil, err
	}

	player, err := uc.getPlayer(uow, id)
	if err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := mutate(player); err != nil {
		return nil, uc.rollback(uow, err)
	}

	if err := uow.Players().Save(player); err != nil {
		return nil, uc.rollback(uow, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return player, nil
}

func (uc *PlayerUseCase) getPlayer(uow domain.UnitOfWork, id domain.PlayerID) (*domain.Player, error) {
	player, err := uow.Players().FindByID(id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, domain.NewAppError(domain.ErrCodePlayerNotFound, "Player not found", http.StatusNotFound, nil)
	}
	return player, nil
}

func (uc *PlayerUseCase) rollback(uow domain.UnitOfWork, err error) error {
	if rbErr := uow.Rollback(); rbErr != nil {
		uc.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
	}
	return err
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
