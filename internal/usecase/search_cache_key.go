package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type jobSearchCacheKeyInput struct {
	Title    string `json:"title"`
	Position string `json:"position"`
	Field    string `json:"field"`
	Sort     string `json:"sort"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func JobsSearchCacheKey(params JobSearchParams) string {
	in := jobSearchCacheKeyInput{
		Title:    normalizeSearchValue(params.Title),
		Position: normalizeSearchValue(params.Position),
		Field:    normalizeSearchValue(params.Field),
		Sort:     normalizeSearchValue(params.Sort),
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:search:" + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	if strings.HasPrefix(searchKey, "jobs:search:") {
		return "jobs:lock:" + strings.TrimPrefix(searchKey, "jobs:search:")
	}
	return "jobs:lock:" + searchKey
}
