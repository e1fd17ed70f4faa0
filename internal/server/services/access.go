package services

import (
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// AdminUserID is the only account allowed to create, edit and delete posts.
// It is the first account ever registered.
const AdminUserID int64 = 1

// IsAdmin reports whether u is the admin account. Anonymous is never admin.
func IsAdmin(u *models.User) bool {
	return u != nil && u.ID == AdminUserID
}

// Authorize checks that u may perform privileged actions. Anonymous callers
// get common.ErrorUnauthorized, everyone but the admin common.ErrorForbidden.
func Authorize(u *models.User) error {
	if u == nil {
		return common.ErrorUnauthorized
	}
	if !IsAdmin(u) {
		return common.ErrorForbidden
	}
	return nil
}
