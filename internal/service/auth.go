package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"AllWell/internal/cache"
	"AllWell/internal/model"
	"AllWell/internal/model/dto"
	"AllWell/pkg/errors"
	"AllWell/pkg/logger"
	"AllWell/pkg/token"
	"AllWell/storage/database"
	"AllWell/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{}
	})
	return authService
}

type AuthService struct{}

// Login 工牌号 + PIN 登录
//
// 工牌不存在和 PIN 错误返回同一个错误码，不泄露工牌是否有效。
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if !utils.ValidateBadgeCode(req.BadgeCode) || !utils.ValidatePIN(req.PIN) {
		return nil, errors.BadgeInvalid
	}

	var staff model.StaffUser
	err := database.DB().WithContext(ctx).
		Where("badge_code = ?", req.BadgeCode).
		First(&staff).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.BadgeInvalid
		}
		return nil, fmt.Errorf("failed to query staff user: %w", err)
	}

	if !utils.VerifyPIN(req.BadgeCode, req.PIN, staff.PINHash) {
		return nil, errors.BadgeInvalid
	}

	if !staff.Active {
		return nil, errors.StaffDeactivated
	}

	userIDStr := strconv.FormatInt(staff.PublicID, 10)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := cache.SetRefreshToken(ctx, userIDStr, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	now := time.Now()
	if err := database.DB().WithContext(ctx).
		Model(&staff).
		Update("last_login_at", now).Error; err != nil {
		logger.Logger.Warn("Failed to update last login time",
			zap.Int64("staff_id", staff.PublicID),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Staff logged in",
		zap.Int64("staff_id", staff.PublicID),
		zap.String("badge_code", staff.BadgeCode),
	)

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		Staff: dto.StaffSnapshot{
			ID:       userIDStr,
			Name:     staff.Name,
			Initials: staff.Initials,
			Role:     string(staff.Role),
		},
	}, nil
}

// RefreshToken 刷新令牌，旧 refresh token 作废（轮换）
func (s *AuthService) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	userID, err := token.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, errors.Unauthorized
	}

	if !cache.ValidateRefreshTokenExists(ctx, userID, req.RefreshToken) {
		return nil, errors.Unauthorized
	}

	// 确认员工仍然有效
	if _, err := Round().staffByPublicID(ctx, userID); err != nil {
		return nil, err
	}

	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := cache.SetRefreshToken(ctx, userID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// Logout 登出，删除 refresh token
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return cache.DeleteRefreshToken(ctx, userID)
}

// CurrentStaff 当前登录员工概览
func (s *AuthService) CurrentStaff(ctx context.Context, userID string) (*dto.StaffSnapshot, error) {
	staff, err := Round().staffByPublicID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.StaffSnapshot{
		ID:       strconv.FormatInt(staff.PublicID, 10),
		Name:     staff.Name,
		Initials: staff.Initials,
		Role:     string(staff.Role),
	}, nil
}
