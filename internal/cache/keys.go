package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileByUserKeyPrefix = "profile:user:%d"
	ProfilesListKey        = "profiles:all"
	GithubReposKeyPrefix   = "github:repos:%s"
	UserKeyPrefix          = "user:%d"
)

const (
	ProfileTTL     = 5 * time.Minute
	ProfilesTTL    = 1 * time.Minute
	GithubReposTTL = 10 * time.Minute
	UserTTL        = 5 * time.Minute
)

func ProfileByUserKey(userID uint) string {
	return fmt.Sprintf(ProfileByUserKeyPrefix, userID)
}

func GithubReposKey(username string) string {
	return fmt.Sprintf(GithubReposKeyPrefix, username)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if rdb := GetClient(); rdb != nil && len(keys) > 0 {
		rdb.Del(ctx, keys...)
	}
}

// InvalidateProfile drops every cached view containing the user's profile.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileByUserKey(userID), ProfilesListKey)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
