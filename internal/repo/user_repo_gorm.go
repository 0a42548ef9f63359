package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"user-profile-service/internal/domain"
	"user-profile-service/pkg/utils"
)

var userWrites = prometheus.NewCounterVec(
	prometheus.CounterOpts{Namespace: "user_profile", Name: "user_writes_total", Help: "Count of user record writes"},
	[]string{"op", "result"},
)

func init() { prometheus.MustRegister(userWrites) }

// prepareResult 区分校验失败与哈希失败
func prepareResult(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "invalid"
	}
	return "hash_error"
}

// 更新时不随实体整体覆盖的列
var updateOmit = []string{"id", "created_at", "deleted_at", "login_attempts", "block_expires"}

type UserRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db, now: time.Now} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	if u.BlockExpires.IsZero() {
		u.BlockExpires = r.now()
	}
	if err := domain.PrepareWrite(u, true); err != nil {
		userWrites.WithLabelValues("create", prepareResult(err)).Inc()
		return err
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		userWrites.WithLabelValues("create", "error").Inc()
		if isDupKey(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	userWrites.WithLabelValues("create", "ok").Inc()
	return nil
}

// FindByID 默认投影：不含密码/登录计数/封禁时间
func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx).Omit(domain.SecretColumns...), "id = ?", id)
}

func (r *UserRepo) FindByIDWithSecrets(ctx context.Context, id string) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *UserRepo) FindByEmailWithSecrets(ctx context.Context, email string) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx), "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepo) FindUnverifiedByToken(ctx context.Context, token string) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx).Omit(domain.SecretColumns...),
		"verification = ? AND verified = ?", token, false)
}

func (r *UserRepo) first(tx *gorm.DB, cond string, args ...any) (*domain.User, error) {
	var u domain.User
	err := tx.Where(cond, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context, in domain.ListQuery) (*domain.Page[domain.User], error) {
	q, col, desc := in.Normalize()

	tx := r.db.WithContext(ctx).Model(&domain.User{})
	if q.WithDeleted {
		tx = tx.Unscoped()
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR name LIKE ? OR firstname LIKE ? OR lastname LIKE ?", like, like, like, like)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}
	var users []domain.User
	err := tx.Omit(domain.SecretColumns...).
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(q.Limit).Offset(q.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return domain.NewPage(users, total, q.Page, q.Limit), nil
}

// Update 整体覆盖可写字段（后写覆盖先写）；密码仅在被修改时写入
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	omit := append([]string(nil), updateOmit...)
	if !u.PasswordModified() {
		omit = append(omit, "password")
	}
	if err := domain.PrepareWrite(u, false); err != nil {
		userWrites.WithLabelValues("update", prepareResult(err)).Inc()
		return err
	}
	res := r.db.WithContext(ctx).Model(u).Select("*").Omit(omit...).Updates(u)
	if res.Error != nil {
		userWrites.WithLabelValues("update", "error").Inc()
		if isDupKey(res.Error) {
			return domain.ErrEmailTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	userWrites.WithLabelValues("update", "ok").Inc()
	return nil
}

// SaveLoginState 只写登录失败计数与封禁时间
func (r *UserRepo) SaveLoginState(ctx context.Context, u *domain.User) error {
	res := r.db.WithContext(ctx).Model(u).Select("login_attempts", "block_expires").Updates(u)
	if res.Error != nil {
		userWrites.WithLabelValues("login_state", "error").Inc()
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	userWrites.WithLabelValues("login_state", "ok").Inc()
	return nil
}

func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 各驱动文案不同，不依赖 TranslateError
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
