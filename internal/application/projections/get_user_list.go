package projections

import (
	"context"
	"time"

	accountStore "gymdesk/internal/adapters/storage/account"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/domain/account"
)

// UserListAccountStore defines the store interface needed by this projection.
type UserListAccountStore interface {
	List(ctx context.Context, filter accountStore.ListFilter) ([]account.Account, error)
	Count(ctx context.Context, filter accountStore.ListFilter) (int, error)
}

// GetUserListDeps holds dependencies for QueryGetUserList.
type GetUserListDeps struct {
	AccountStore UserListAccountStore
}

// UserSortColumns are the sort keys the admin user list accepts.
var UserSortColumns = []string{"created_at", "email", "name", "role"}

// UserFilterKeys are the exact-match filters the admin user list accepts.
var UserFilterKeys = []string{"role", "status"}

// UserRow is the admin view of an account. It never carries the password hash.
type UserRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Banned    bool      `json:"banned"`
	BanReason string    `json:"ban_reason,omitempty"`
	Locked    bool      `json:"locked"`
}

// UserListResult carries one page of users with pagination metadata.
type UserListResult struct {
	Users []UserRow         `json:"users"`
	Page  listutil.PageInfo `json:"page"`
}

// NewUserRow projects an account for admin screens.
func NewUserRow(a account.Account, now time.Time) UserRow {
	return UserRow{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name(),
		Role:      a.Role,
		Phone:     a.Phone,
		CreatedAt: a.CreatedAt,
		Banned:    a.IsBanned(),
		BanReason: a.BanReason,
		Locked:    a.IsLocked(now),
	}
}

// QueryGetUserList returns one page of accounts for the admin user table.
// PRE: params were produced by listutil.ParseListParams with UserSortColumns and UserFilterKeys
// POST: Page is clamped to the last page when it exceeds the total
func QueryGetUserList(ctx context.Context, params listutil.ListParams, now time.Time, deps GetUserListDeps) (UserListResult, error) {
	filter := accountStore.ListFilter{
		Role:   params.Filters["role"],
		Search: params.Search,
		Sort:   params.Sort,
		Desc:   params.Dir == "desc",
	}
	switch params.Filters["status"] {
	case "banned":
		banned := true
		filter.Banned = &banned
	case "active":
		banned := false
		filter.Banned = &banned
	}

	total, err := deps.AccountStore.Count(ctx, filter)
	if err != nil {
		return UserListResult{}, err
	}
	page := listutil.NewPageInfo(params.Page, params.PerPage, total)
	filter.Limit = page.PerPage
	filter.Offset = page.Offset()

	accounts, err := deps.AccountStore.List(ctx, filter)
	if err != nil {
		return UserListResult{}, err
	}
	rows := make([]UserRow, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, NewUserRow(a, now))
	}
	return UserListResult{Users: rows, Page: page}, nil
}
