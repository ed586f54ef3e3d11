package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"codequest_backend/pkg/logger"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

// UserService 处理用户资料相关的业务逻辑
type UserService struct {
	UserRepo      *repository.UserRepository
	XPRepo        *repository.XPRepository
	Storage       *StorageService
	MaxAvatarSize int64
}

// NewUserService 创建一个新的用户服务实例
func NewUserService(userRepo *repository.UserRepository, xpRepo *repository.XPRepository, storage *StorageService, maxAvatarMB int64) *UserService {
	if maxAvatarMB <= 0 {
		maxAvatarMB = 2
	}
	return &UserService{
		UserRepo:      userRepo,
		XPRepo:        xpRepo,
		Storage:       storage,
		MaxAvatarSize: maxAvatarMB << 20,
	}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

// XPHistory 最近的经验流水，最新的在前
func (s *UserService) XPHistory(ctx context.Context, userID string, limit int) ([]model.XPAward, error) {
	awards, err := s.XPRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if awards == nil {
		awards = []model.XPAward{}
	}
	return awards, nil
}

// UpdateAvatar 上传头像并更新用户资料；调用方负责校验 MIME 类型
func (s *UserService) UpdateAvatar(ctx context.Context, userID, filename string, reader io.Reader, size int64, contentType string) (*model.User, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty file", util.ErrValidation)
	}
	if size > s.MaxAvatarSize {
		return nil, fmt.Errorf("%w: avatar exceeds %d bytes", util.ErrValidation, s.MaxAvatarSize)
	}
	if !util.HasAllowedExtension(filename, util.AllowedImageExtensions) {
		return nil, fmt.Errorf("%w: unsupported image extension", util.ErrValidation)
	}
	if !util.IsImage(contentType) {
		return nil, fmt.Errorf("%w: file is not an image", util.ErrValidation)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	objectName := fmt.Sprintf("avatars/%s/%s%s", user.ID, model.GenerateUUID(), ext)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateProfileImage(ctx, user.ID, url); err != nil {
		return nil, err
	}

	// 替换后清理旧头像，失败不影响本次更新
	if previous := user.ProfileImageURL; previous != "" && previous != url {
		if err := s.Storage.DeleteByURL(ctx, previous); err != nil {
			logger.Log.Warn("failed to delete previous avatar", zap.String("userId", user.ID), zap.Error(err))
		}
	}
	user.ProfileImageURL = url
	user.UpdatedAt = time.Now()
	return user, nil
}
