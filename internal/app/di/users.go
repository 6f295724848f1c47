package di

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user_backend/internal/feature/users/adapters"
	"user_backend/internal/feature/users/domain/repository"
	"user_backend/internal/feature/users/transport/handler"
	"user_backend/internal/feature/users/usecase"
)

// NewUserRepository はUserRepositoryを生成します。db が nil ならインメモリ実装です。
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	if db == nil {
		return adapters.NewUserInMemory()
	}
	return adapters.NewUserGorm(db)
}

// NewUserHandler はユースケースを組み立ててUserHandlerを生成します。
func NewUserHandler(
	users repository.UserRepository,
	hasher usecase.HashProvider,
	tokens handler.TokenGenerator,
	revoker handler.TokenRevoker,
	log *zap.Logger,
) *handler.UserHandler {
	return handler.NewUserHandler(handler.Usecases{
		SignUp:         usecase.NewSignUp(users, hasher),
		SignIn:         usecase.NewSignIn(users, hasher),
		ListUsers:      usecase.NewListUsers(users),
		GetUser:        usecase.NewGetUser(users),
		UpdateUser:     usecase.NewUpdateUser(users),
		UpdatePassword: usecase.NewUpdatePassword(users, hasher),
		DeleteUser:     usecase.NewDeleteUser(users),
	}, tokens, revoker, log)
}
