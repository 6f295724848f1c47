// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SignUpRequest は POST /users のリクエストボディです。
// 形式の詳細な検証はドメインのルールで行います。
type SignUpRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest は POST /users/auth のリクエストボディです。
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest は PUT /users/:id のリクエストボディです。
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UpdatePasswordRequest は PATCH /users/password/:id のリクエストボディです。
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,max=100"`
}

// ListUsersQuery は GET /users のクエリパラメータです。
// page と perPage は省略時にハンドラーで既定値が補われます。
type ListUsersQuery struct {
	Page    int    `form:"page" binding:"omitempty,min=1,max=1000000"`
	PerPage int    `form:"perPage" binding:"omitempty,min=1,max=100"`
	Sort    string `form:"sort"`
	SortDir string `form:"sortDir" binding:"omitempty,oneof=asc desc"`
	Filter  string `form:"filter"`
}
