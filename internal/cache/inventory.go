package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	SubmissionKeyPrefix  = "submission:%d"
	ApprovedListPrefix   = "submissions:approved:%s"
	ApprovedListAllKinds = "submissions:approved:*"
)

const (
	UserTTL         = 5 * time.Minute
	SubmissionTTL   = 10 * time.Minute
	ApprovedListTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SubmissionKey(id uint) string {
	return fmt.Sprintf(SubmissionKeyPrefix, id)
}

// ApprovedListKey builds the cache key for the public approved listing.
// kind is the kind filter, or "all" when unfiltered; limit/offset keep
// paginated pages from colliding.
func ApprovedListKey(kind string, limit, offset int) string {
	if kind == "" {
		kind = "all"
	}
	return fmt.Sprintf(ApprovedListPrefix, fmt.Sprintf("%s:%d:%d", kind, limit, offset))
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSubmission(ctx context.Context, id uint) {
	Invalidate(ctx, SubmissionKey(id))
}

// InvalidateApprovedLists drops every cached page of the public listing.
// SCAN is used instead of KEYS to avoid blocking Redis.
func InvalidateApprovedLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, ApprovedListAllKinds, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
