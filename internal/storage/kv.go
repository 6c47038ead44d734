package storage

import (
	"context"
	"strings"
)

// KVStore is the local persistence adapter: plain string key-value storage
// namespaced by fixed per-entity prefixes and a per-user suffix. RemoveMany
// is N independent deletes with no atomicity across keys; a process killed
// mid-clear can leave some per-user keys present and others gone.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	RemoveMany(ctx context.Context, keys []string) error
	Close() error
}

// Session-scoped keys, shared by all users of the device.
const (
	KeyUser            = "rise_user"
	KeyToken           = "rise_token"
	KeyRemoteToken     = "rise_remote_token"
	KeyCredentials     = "rise_credentials"
	KeyRememberedLogin = "rise_remembered_login"
	KeyLocalUsers      = "rise_local_users"
)

// Per-user key prefixes. The suffix is always the lowercased email.
const (
	PrefixGoals         = "goals"
	PrefixNotes         = "notes"
	PrefixTasks         = "tasks"
	PrefixHabits        = "habits"
	PrefixQuestionnaire = "questionnaire"
	PrefixProgress      = "dailyProgress"
	PrefixCurrentDay    = "currentDay"
	PrefixOnboarding    = "onboarding_complete"
)

func UserKey(prefix, email string) string {
	return prefix + "_" + strings.ToLower(email)
}

// PerUserKeys lists every per-user key, in the order logout clears them.
func PerUserKeys(email string) []string {
	prefixes := []string{
		PrefixGoals, PrefixNotes, PrefixTasks, PrefixHabits,
		PrefixQuestionnaire, PrefixProgress, PrefixCurrentDay, PrefixOnboarding,
	}
	keys := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		keys = append(keys, UserKey(p, email))
	}
	return keys
}
