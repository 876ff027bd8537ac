package config

import "strconv"

type SessionConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type Session struct{}

var _ SessionConfig = Session{}

// GetRedisAddr returns the redis address, or "" to fall back to the
// in-memory session store.
func (Session) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}

func (Session) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Session) GetRedisDB() int {
	db, err := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	if err != nil {
		return 0
	}
	return db
}
