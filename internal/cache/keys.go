package cache

import (
	"fmt"
	"strconv"
	"time"
)

// Query entities and their stale times.
const (
	EntityComments             = "comments"
	EntityPopularSummaries     = "popularSummaries"
	EntityRecommendedSummaries = "recommendedSummaries"
	EntitySearchSummaries      = "searchSummaries"
	EntityTagSummaries         = "tagSummaries"
	EntitySummary              = "summary"
	EntityPopularTags          = "popularTags"
	EntityUserInfo             = "userInfo"
	EntityUserSummaries        = "userSummaries"
	EntityUserInterests        = "userInterests"
)

const (
	CommentsStaleTime  = 30 * time.Second
	SummariesStaleTime = 5 * time.Minute
	UserStaleTime      = time.Minute
)

func CommentsKey(summaryID int64) Key {
	return NewKey(EntityComments, summaryID)
}

func toString(v any) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return p
	case int:
		return strconv.Itoa(p)
	case int64:
		return strconv.FormatInt(p, 10)
	default:
		return fmt.Sprint(p)
	}
}
