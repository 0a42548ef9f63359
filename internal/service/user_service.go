package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"user-profile-service/internal/core/cache"
	"user-profile-service/internal/domain"
	"user-profile-service/internal/feature/user"
	"user-profile-service/pkg/utils"
)

type Options struct {
	MaxLoginAttempts int
	BlockDuration    time.Duration
	ProfileTTL       time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxLoginAttempts <= 0 {
		o.MaxLoginAttempts = 5
	}
	if o.BlockDuration <= 0 {
		o.BlockDuration = 2 * time.Hour
	}
	if o.ProfileTTL <= 0 {
		o.ProfileTTL = 5 * time.Minute
	}
	return o
}

type UserService struct {
	repo  domain.UserRepository
	cache *cache.Cache // 可为 nil
	log   *zap.Logger
	opts  Options
	now   func() time.Time
}

func NewUserService(repo domain.UserRepository, c *cache.Cache, l *zap.Logger, opts Options) *UserService {
	if l == nil {
		l = zap.NewNop()
	}
	return &UserService{repo: repo, cache: c, log: l, opts: opts.withDefaults(), now: time.Now}
}

func profileKey(id string) string { return "user:profile:" + id }

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, profileKey(id)); err != nil {
		s.log.Warn("profile cache invalidate failed", zap.String("user_id", id), zap.Error(err))
	}
}

// Register 新用户固定为 member，未验证，附带一次性验证令牌
func (s *UserService) Register(ctx context.Context, in user.RegisterRequest) (*domain.User, error) {
	u := &domain.User{
		Name:         in.Name,
		EmpID:        in.EmpID,
		Email:        in.Email,
		Gender:       in.Gender,
		Role:         domain.RoleMember,
		Verification: utils.NewToken(),
	}
	u.SetPassword(in.Password)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login 失败次数超过上限后封禁一段时间；封禁过期后的首次登录先清零计数
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.repo.FindByEmailWithSecrets(ctx, email)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if u.IsBlocked(now) {
		return nil, domain.ErrUserBlocked
	}
	if u.LoginAttempts > s.opts.MaxLoginAttempts {
		u.LoginAttempts = 0
		if err := s.repo.SaveLoginState(ctx, u); err != nil {
			return nil, err
		}
	}

	ok, err := u.ComparePassword(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		u.LoginAttempts++
		blocked := u.LoginAttempts > s.opts.MaxLoginAttempts
		if blocked {
			u.BlockExpires = now.Add(s.opts.BlockDuration)
		}
		if err := s.repo.SaveLoginState(ctx, u); err != nil {
			return nil, err
		}
		if blocked {
			s.log.Warn("user blocked", zap.String("user_id", u.ID), zap.Time("until", u.BlockExpires))
			return nil, domain.ErrUserBlocked
		}
		return nil, domain.ErrWrongPassword
	}

	if u.LoginAttempts > 0 {
		u.LoginAttempts = 0
		if err := s.repo.SaveLoginState(ctx, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// Profile 默认投影，走缓存
func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	if s.cache == nil {
		return s.repo.FindByID(ctx, id)
	}
	u, err := cache.GetOrLoadJSON(s.cache, ctx, profileKey(id), s.opts.ProfileTTL, func(ctx context.Context) (*domain.User, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile 非管理员只能改自己
func (s *UserService) UpdateProfile(ctx context.Context, actorID, actorRole string, in user.UpdateProfileRequest) (*domain.User, error) {
	if in.ID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	u, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	u.Firstname = in.Firstname
	u.City = in.City
	u.Country = in.Country
	pc := in.PostalCode
	u.PostalCode = &pc
	if in.Lastname != nil {
		u.Lastname = *in.Lastname
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.AboutMe != nil {
		u.AboutMe = *in.AboutMe
	}
	if in.URLTwitter != nil {
		u.URLTwitter = *in.URLTwitter
	}
	if in.URLGitHub != nil {
		u.URLGitHub = *in.URLGitHub
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidate(ctx, u.ID)
	return u, nil
}

// ChangePassword 先校验旧密码；未提交新密码时不做修改，返回 false
func (s *UserService) ChangePassword(ctx context.Context, id string, in user.ChangePasswordRequest) (bool, error) {
	u, err := s.repo.FindByIDWithSecrets(ctx, id)
	if err != nil {
		return false, err
	}
	var old string
	if in.OldPassword != nil {
		old = *in.OldPassword
	}
	ok, err := u.ComparePassword(old)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, domain.ErrWrongPassword
	}
	if in.NewPassword == nil {
		return false, nil
	}
	u.SetPassword(*in.NewPassword)
	if err := s.repo.Update(ctx, u); err != nil {
		return false, err
	}
	s.log.Info("password changed", zap.String("user_id", u.ID))
	return true, nil
}

func (s *UserService) Verify(ctx context.Context, token string) (*domain.User, error) {
	u, err := s.repo.FindUnverifiedByToken(ctx, token)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrNotFoundOrVerified
	}
	if err != nil {
		return nil, err
	}
	u.Verified = true
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidate(ctx, u.ID)
	return u, nil
}

func (s *UserService) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.User], error) {
	return s.repo.List(ctx, q)
}

// Ban 软删
func (s *UserService) Ban(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Info("user banned", zap.String("user_id", id))
	return nil
}
