package adapters

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"user_backend/internal/feature/users/domain/entity"
	domainrepo "user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/shared/domainerr"
	"user_backend/internal/shared/repository"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のエラーコードです。
const pgUniqueViolation = "23505"

var sortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

// userGorm はUserRepositoryのGORM実装です。本番ではPostgreSQL、テストではSQLiteで動作します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ domainrepo.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Insert はユーザーを追加します。メールアドレスが重複した場合は ConflictError を返します。
func (r *userGorm) Insert(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(UserModelFromEntity(u)).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerr.NewConflict("User with email %s already exists", u.Email())
		}
		return err
	}
	return nil
}

// FindByID はIDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerr.NewNotFound("UserModel not found using ID %s", id)
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindAll は作成日時の昇順ですべてのユーザーを返します。
func (r *userGorm) FindAll(ctx context.Context) ([]*entity.User, error) {
	var models []UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

// Update は名前・メールアドレス・パスワードを更新します。createdAt は変更しません。
// 存在確認と更新は1つの条件付きUPDATEで行い、対象行がなければ NotFoundError を返します。
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]any{
			"name":     u.Name(),
			"email":    u.Email(),
			"password": u.Password(),
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domainerr.NewConflict("User with email %s already exists", u.Email())
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerr.NewNotFound("UserModel not found using ID %s", u.ID())
	}
	return nil
}

// Delete はユーザーを削除します。対象行がなければ NotFoundError を返します。
func (r *userGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerr.NewNotFound("UserModel not found using ID %s", id)
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerr.NewNotFound("Could not found user with email %s", email)
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// EmailExists は同じメールアドレスのユーザーが存在すれば ConflictError を返します。
func (r *userGorm) EmailExists(ctx context.Context, email string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainerr.NewConflict("User with email %s already exists", email)
	}
	return nil
}

// Search は名前の部分一致（大文字小文字を区別しない）で絞り込み、件数を数えてからページを取得します。
func (r *userGorm) Search(ctx context.Context, params repository.SearchParams) (repository.SearchResult[*entity.User], error) {
	q := r.db.WithContext(ctx).Model(&UserModel{})
	if params.Filter != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(params.Filter))+"%")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return repository.SearchResult[*entity.User]{}, err
	}

	column, desc := sortColumn(params)
	var models []UserModel
	err := q.Session(&gorm.Session{}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&models).Error
	if err != nil {
		return repository.SearchResult[*entity.User]{}, err
	}

	return repository.NewSearchResult(toEntities(models), int(total), params), nil
}

// sortColumn はソート指定をカラム名に変換します。同じ値の行は id 順に並べます。
// 未指定または許可されていないフィールドは createdAt の降順、方向未指定は降順です。
func sortColumn(params repository.SearchParams) (string, bool) {
	field, dir := params.Sort, params.SortDir
	if !slices.Contains(domainrepo.SortableFields, field) {
		field, dir = domainrepo.DefaultSortField, ""
	}
	if dir == "" {
		dir = domainrepo.DefaultSortDir
	}
	return sortColumns[field], dir == repository.SortDesc
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func toEntities(models []UserModel) []*entity.User {
	out := make([]*entity.User, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out
}
